package ledger

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/timestamppb"

	"xdao.co/didcheqd/cheqdpb"
	"xdao.co/didcheqd/cidutil"
)

const (
	fixtureDID        = "did:cheqd:testnet:zF7rhDBfUt9d1gJPjx7s1J"
	fixtureCollection = "zF7rhDBfUt9d1gJPjx7s1J"
)

func serve(t *testing.T, l *Ledger) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer(cheqdpb.ServerOption())
	l.Register(srv)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })
	return cc
}

func TestLoadFixture(t *testing.T) {
	l, err := LoadFixture("testdata/devnet.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{fixtureDID}, l.DIDs())

	ctx := context.Background()
	resp, err := l.DidDoc(ctx, &cheqdpb.QueryDidDocRequest{ID: fixtureDID})
	require.NoError(t, err)
	assert.Equal(t, "e5615fc2-6f13-42b1-989c-49576a574cef", resp.Value.Metadata.VersionID)
	assert.Equal(t, "1b3b0084-9b4d-50e8-fccf-50193e35fd6c", resp.Value.Metadata.PreviousVersionID)
	require.Len(t, resp.Value.DidDoc.Service, 1)
	assert.Equal(t, fixtureDID, resp.Value.DidDoc.VerificationMethod[0].Controller)

	first, err := l.DidDocVersion(ctx, &cheqdpb.QueryDidDocVersionRequest{ID: fixtureDID, Version: "1b3b0084-9b4d-50e8-fccf-50193e35fd6c"})
	require.NoError(t, err)
	assert.Equal(t, "e5615fc2-6f13-42b1-989c-49576a574cef", first.Value.Metadata.NextVersionID)
	assert.Empty(t, first.Value.DidDoc.Service)

	list, err := l.CollectionResources(ctx, &cheqdpb.QueryCollectionResourcesRequest{CollectionID: fixtureCollection})
	require.NoError(t, err)
	require.Len(t, list.Resources, 2)
	assert.Equal(t, "3ccde6ba-6ba5-56f2-9f4f-8825561a9860", list.Resources[0].NextVersionID)
	assert.Equal(t, "9fbb1b86-91f8-4942-97b9-725b7714131c", list.Resources[1].PreviousVersionID)
	assert.Equal(t, cidutil.SHA256Hex([]byte(`{"title":"Employee","version":"1.0"}`)), list.Resources[0].Checksum)
}

func TestDecodeFixture_Rejects(t *testing.T) {
	_, err := DecodeFixture(`bogus = 1`)
	assert.Error(t, err)

	_, err = DecodeFixture(`
[[resources]]
collection = "c"
id = "r"
data = "x"
`)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = DecodeFixture(`
[[documents]]
version_id = "v1"
`)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestPutResource_Duplicate(t *testing.T) {
	l := New()
	meta := func() *cheqdpb.ResourceMetadata {
		return &cheqdpb.ResourceMetadata{CollectionID: "c", ID: "r", Created: timestamppb.Now()}
	}
	require.NoError(t, l.PutResource(meta(), []byte("a")))
	assert.ErrorIs(t, l.PutResource(meta(), []byte("b")), ErrInvalid)
}

func TestLedger_OverGRPC(t *testing.T) {
	l, err := LoadFixture("testdata/devnet.toml")
	require.NoError(t, err)
	cc := serve(t, l)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dids := cheqdpb.NewDidQueryClient(cc)
	doc, err := dids.DidDoc(ctx, &cheqdpb.QueryDidDocRequest{ID: fixtureDID})
	require.NoError(t, err)
	assert.Equal(t, fixtureDID, doc.Value.DidDoc.ID)

	_, err = dids.DidDoc(ctx, &cheqdpb.QueryDidDocRequest{ID: "did:cheqd:testnet:missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	resources := cheqdpb.NewResourceQueryClient(cc)
	res, err := resources.Resource(ctx, &cheqdpb.QueryResourceRequest{CollectionID: fixtureCollection, ID: "9fbb1b86-91f8-4942-97b9-725b7714131c"})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Employee","version":"1.0"}`, string(res.Resource.Resource.Data))
	assert.Equal(t, "application/json", res.Resource.Metadata.MediaType)
	assert.True(t, res.Resource.Metadata.Created.AsTime().Equal(time.Date(2023, 1, 11, 8, 0, 0, 0, time.UTC)))

	meta, err := resources.ResourceMetadata(ctx, &cheqdpb.QueryResourceRequest{CollectionID: fixtureCollection, ID: "3ccde6ba-6ba5-56f2-9f4f-8825561a9860"})
	require.NoError(t, err)
	assert.Equal(t, "2.0", meta.Resource.Version)

	page, err := resources.CollectionResources(ctx, &cheqdpb.QueryCollectionResourcesRequest{
		CollectionID: fixtureCollection,
		Pagination:   &cheqdpb.PageRequest{Offset: 1, Limit: 5, CountTotal: true},
	})
	require.NoError(t, err)
	require.Len(t, page.Resources, 1)
	require.NotNil(t, page.Pagination)
	assert.Equal(t, uint64(2), page.Pagination.Total)

	_, err = resources.Resource(ctx, &cheqdpb.QueryResourceRequest{CollectionID: fixtureCollection, ID: "nope"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}
