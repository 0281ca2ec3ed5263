// Package driver exposes did:cheqd resolution as a DID method resolver:
// a method-specific id goes in, serialized content plus metadata come out.
package driver

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"xdao.co/didcheqd/did"
	"xdao.co/didcheqd/model"
	"xdao.co/didcheqd/resolver"
)

// Options tune the representation produced for documents.
type Options struct {
	// LinkedResources lists the DID's resource collection in the document
	// metadata. Costs one extra RPC per resolution.
	LinkedResources bool

	// Canonical emits RFC 8785 (JCS) canonical JSON.
	Canonical bool
}

// DocumentMetadata is the method-level document metadata. Deactivated is
// nil when the ledger returned no metadata.
type DocumentMetadata struct {
	Deactivated *bool
}

type ResolutionMetadata struct {
	ContentType string
}

// Output is one resolved representation.
type Output struct {
	Content          []byte
	DocumentMetadata DocumentMetadata
	Metadata         ResolutionMetadata

	// Document is set when a DID Document was resolved.
	Document *model.DocumentMetadata

	// Resource is set when a resource was dereferenced.
	Resource *model.ResourceMetadata
}

type Driver struct {
	r    *resolver.Resolver
	opts Options
}

func New(r *resolver.Resolver, opts Options) *Driver {
	return &Driver{r: r, opts: opts}
}

// ResolveRepresentation resolves a method-specific id. Ids containing '/' or
// '?' are dereferenced as resources, everything else as a DID Document.
func (d *Driver) ResolveRepresentation(ctx context.Context, methodSpecificID, accept string) (*Output, error) {
	if did.IsResourceReference(methodSpecificID) {
		return d.ResolveResource(ctx, did.Prefix+methodSpecificID)
	}
	return d.ResolveDocument(ctx, did.Prefix+methodSpecificID, accept)
}

// Dereference accepts a full DID or DID URL and routes it like
// ResolveRepresentation.
func (d *Driver) Dereference(ctx context.Context, input, accept string) (*Output, error) {
	msid, ok := strings.CutPrefix(input, did.Prefix)
	if !ok {
		_, err := did.Parse(input)
		if err == nil {
			err = did.NewError(did.KindMethodMismatch, "not a did:cheqd identifier: "+input)
		}
		return nil, model.Internal("cheqd resolver error", err)
	}
	return d.ResolveRepresentation(ctx, msid, accept)
}

// ResolveDocument resolves a DID (optionally version-qualified) to its JSON-LD
// document. accept defaults to application/did+ld+json.
func (d *Driver) ResolveDocument(ctx context.Context, didString, accept string) (*Output, error) {
	p, err := did.Parse(didString)
	if err != nil {
		return nil, model.Internal("cheqd resolver error", err)
	}
	res, err := d.r.ResolveDocument(ctx, p)
	if err != nil {
		return nil, model.Internal("cheqd resolver error", err)
	}

	var linked []model.ResourceMetadata
	if d.opts.LinkedResources {
		records, err := d.r.CollectionResources(ctx, p)
		if err != nil {
			return nil, model.Internal("cheqd resolver error", err)
		}
		for _, rec := range records {
			linked = append(linked, model.FromResourceRecord(did.ResourceURI(p.DID, rec.ID), rec))
		}
	}

	content, err := d.encode(model.FromDidDoc(res.Doc))
	if err != nil {
		return nil, model.Internal("failed to serialize DID document", err)
	}

	if accept == "" {
		accept = model.MediaTypeDIDLDJSON
	}
	meta := model.FromDidDocMetadata(res.Metadata, linked)
	out := &Output{
		Content:  content,
		Metadata: ResolutionMetadata{ContentType: accept},
		Document: &meta,
	}
	if res.Metadata != nil {
		deactivated := res.Metadata.Deactivated
		out.DocumentMetadata.Deactivated = &deactivated
	}
	return out, nil
}

// ResolveResource dereferences a DID URL to resource bytes.
func (d *Driver) ResolveResource(ctx context.Context, didURL string) (*Output, error) {
	p, err := did.Parse(didURL)
	if err != nil {
		return nil, model.Internal("cheqd resolver error", err)
	}
	res, err := d.r.ResolveResource(ctx, p)
	if err != nil {
		return nil, model.Internal("cheqd resolver error", err)
	}
	meta := model.FromResourceRecord(did.ResourceURI(p.DID, res.Record.ID), res.Record)
	return &Output{
		Content:  res.Data,
		Metadata: ResolutionMetadata{ContentType: res.MediaType},
		Resource: &meta,
	}, nil
}

// ResourceMetadata dereferences a full resource DID URL to its metadata
// only; the payload is not fetched.
func (d *Driver) ResourceMetadata(ctx context.Context, didURL string) (*model.ResourceMetadata, error) {
	p, err := did.Parse(didURL)
	if err != nil {
		return nil, model.Internal("cheqd resolver error", err)
	}
	rec, err := d.r.ResolveResourceMetadata(ctx, p)
	if err != nil {
		return nil, model.Internal("cheqd resolver error", err)
	}
	meta := model.FromResourceRecord(did.ResourceURI(p.DID, rec.ID), rec)
	return &meta, nil
}

func (d *Driver) encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if !d.opts.Canonical {
		return b, nil
	}
	return jsoncanonicalizer.Transform(b)
}
