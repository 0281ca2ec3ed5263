package driver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xdao.co/didcheqd/did"
	"xdao.co/didcheqd/internal/testkit"
	"xdao.co/didcheqd/model"
	"xdao.co/didcheqd/resolver"
)

const msid = "devnet:zF7rhDBfUt9d1gJPjx7s1J"

func newDriver(t *testing.T, opts Options) *Driver {
	t.Helper()
	return New(testkit.NewResolver(t, testkit.SampleLedger(t)), opts)
}

func TestResolveRepresentation_Document(t *testing.T) {
	d := newDriver(t, Options{})
	out, err := d.ResolveRepresentation(context.Background(), msid, "")
	require.NoError(t, err)

	assert.Equal(t, model.MediaTypeDIDLDJSON, out.Metadata.ContentType)
	require.NotNil(t, out.DocumentMetadata.Deactivated)
	assert.True(t, *out.DocumentMetadata.Deactivated)
	require.NotNil(t, out.Document)
	assert.Equal(t, "v2", out.Document.VersionID)
	assert.Empty(t, out.Document.LinkedResourceMetadata)

	var doc model.Document
	require.NoError(t, json.Unmarshal(out.Content, &doc))
	assert.Equal(t, testkit.SampleDID, doc.ID)
	assert.Equal(t, []string{model.ContextDIDv1}, doc.Context)
	require.Len(t, doc.VerificationMethod, 1)
	assert.Equal(t, "z6MkkVbyHJLLjdjU5B62DaJ4mkdMdqf9vCRVcvhzrF2spJDd", doc.VerificationMethod[0].PublicKeyMultibase)
}

func TestResolveRepresentation_AcceptPassesThrough(t *testing.T) {
	d := newDriver(t, Options{})
	out, err := d.ResolveRepresentation(context.Background(), msid, model.MediaTypeDIDJSON)
	require.NoError(t, err)
	assert.Equal(t, model.MediaTypeDIDJSON, out.Metadata.ContentType)
}

func TestResolveDocument_NoMetadata(t *testing.T) {
	d := newDriver(t, Options{})
	out, err := d.ResolveRepresentation(context.Background(), "devnet:bare", "")
	require.NoError(t, err)
	assert.Nil(t, out.DocumentMetadata.Deactivated)
}

func TestResolveDocument_Version(t *testing.T) {
	d := newDriver(t, Options{})
	out, err := d.ResolveDocument(context.Background(), testkit.SampleDID+"/versions/v1", "")
	require.NoError(t, err)
	assert.Equal(t, "v1", out.Document.VersionID)
	assert.Equal(t, "v2", out.Document.NextVersionID)
	assert.False(t, *out.DocumentMetadata.Deactivated)
}

func TestResolveRepresentation_Resource(t *testing.T) {
	d := newDriver(t, Options{})
	ctx := context.Background()

	for _, id := range []string{
		msid + "/resources/" + testkit.SampleResourceV1,
		msid + "?resourceId=" + testkit.SampleResourceV1,
		msid + "?resourceName=EmployeeSchema&resourceType=JsonSchema2020&resourceVersionTime=2023-02-01T00:00:00Z",
	} {
		out, err := d.ResolveRepresentation(ctx, id, "")
		require.NoError(t, err, id)
		assert.Equal(t, `{"title":"Employee","version":"1.0"}`, string(out.Content), id)
		assert.Equal(t, "application/json", out.Metadata.ContentType)
		assert.Nil(t, out.DocumentMetadata.Deactivated)
		require.NotNil(t, out.Resource)
		assert.Equal(t, did.ResourceURI(testkit.SampleDID, testkit.SampleResourceV1), out.Resource.URI)
		assert.Equal(t, testkit.SampleResourceV2, out.Resource.NextVersionID)
	}

	latest, err := d.ResolveRepresentation(ctx, msid+"?resourceName=EmployeeSchema&resourceType=JsonSchema2020", "")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Employee","version":"2.0"}`, string(latest.Content))
}

func TestResolveRepresentation_VersionPathIsResourceRoute(t *testing.T) {
	d := newDriver(t, Options{})
	_, err := d.ResolveRepresentation(context.Background(), msid+"/versions/v1", "")
	require.Error(t, err)
	assert.True(t, did.IsKind(err, did.KindInvalidDidURL), "got %v", err)
}

func TestResolveDocument_LinkedResources(t *testing.T) {
	d := newDriver(t, Options{LinkedResources: true})
	out, err := d.ResolveRepresentation(context.Background(), msid, "")
	require.NoError(t, err)
	require.Len(t, out.Document.LinkedResourceMetadata, 2)
	first := out.Document.LinkedResourceMetadata[0]
	assert.Equal(t, did.ResourceURI(testkit.SampleDID, testkit.SampleResourceV1), first.URI)
	assert.Equal(t, "EmployeeSchema", first.Name)
	assert.Equal(t, "2023-01-11T08:00:00Z", first.Created)
}

func TestResolveDocument_Canonical(t *testing.T) {
	d := newDriver(t, Options{Canonical: true})
	out, err := d.ResolveRepresentation(context.Background(), msid, "")
	require.NoError(t, err)

	const want = `{"@context":["https://www.w3.org/ns/did/v1"],` +
		`"authentication":["did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J#key-1"],` +
		`"controller":["did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J"],` +
		`"id":"did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J",` +
		`"verificationMethod":[{"controller":"did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J",` +
		`"id":"did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J#key-1",` +
		`"publicKeyMultibase":"z6MkkVbyHJLLjdjU5B62DaJ4mkdMdqf9vCRVcvhzrF2spJDd",` +
		`"type":"Ed25519VerificationKey2020"}]}`
	assert.Equal(t, want, string(out.Content))
}

func TestErrorsAreInternal(t *testing.T) {
	d := newDriver(t, Options{})
	ctx := context.Background()

	cases := []struct {
		input string
		kind  did.Kind
	}{
		{"devnet:missing", did.KindNonSuccessResponse},
		{"unknownnet:abc", did.KindNetworkNotSupported},
		{msid + "/resources/a/b", did.KindMalformedPath},
		{msid + "?resourceName=EmployeeSchema", did.KindInvalidDidURL},
		{msid + "?resourceName=EmployeeSchema&resourceType=JsonSchema2020&resourceVersionTime=2020-01-01T00:00:00Z", did.KindResourceNotFound},
	}
	for _, tc := range cases {
		_, err := d.ResolveRepresentation(ctx, tc.input, "")
		var re *model.ResolutionError
		require.True(t, errors.As(err, &re), "%s: %v", tc.input, err)
		assert.Equal(t, model.ErrInternal, re.Code, tc.input)
		assert.True(t, did.IsKind(err, tc.kind), "%s: got %v", tc.input, err)
	}

	_, err := d.ResolveRepresentation(ctx, "devnet:missing", "")
	assert.True(t, resolver.IsNotFound(err))
	assert.Equal(t, model.ErrNotFound, model.Classify(err))
}

func TestDereference(t *testing.T) {
	d := newDriver(t, Options{})
	ctx := context.Background()

	out, err := d.Dereference(ctx, testkit.SampleDID, "")
	require.NoError(t, err)
	assert.NotNil(t, out.Document)

	out, err = d.Dereference(ctx, testkit.SampleDID+"/resources/"+testkit.SampleResourceV2, "")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Employee","version":"2.0"}`, string(out.Content))

	_, err = d.Dereference(ctx, "did:key:z6Mk", "")
	assert.True(t, did.IsKind(err, did.KindMethodMismatch), "got %v", err)
}

func TestResourceMetadata(t *testing.T) {
	d := newDriver(t, Options{})
	ctx := context.Background()

	meta, err := d.ResourceMetadata(ctx, testkit.SampleDID+"/resources/"+testkit.SampleResourceV1)
	require.NoError(t, err)
	assert.Equal(t, did.ResourceURI(testkit.SampleDID, testkit.SampleResourceV1), meta.URI)
	assert.Equal(t, "1.0", meta.Version)
	assert.Equal(t, testkit.SampleResourceV2, meta.NextVersionID)

	meta, err = d.ResourceMetadata(ctx, testkit.SampleDID+"?resourceName=EmployeeSchema&resourceType=JsonSchema2020")
	require.NoError(t, err)
	assert.Equal(t, testkit.SampleResourceV2, meta.ID)

	_, err = d.ResourceMetadata(ctx, testkit.SampleDID)
	var re *model.ResolutionError
	require.True(t, errors.As(err, &re), "got %v", err)
	assert.True(t, did.IsKind(err, did.KindInvalidDidURL), "got %v", err)
}
