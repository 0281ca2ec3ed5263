package resolver

import (
	"context"

	"xdao.co/didcheqd/cheqdpb"
	"xdao.co/didcheqd/did"
)

// Document is a DID Document as stored on the ledger. Metadata is nil when
// the node returned none.
type Document struct {
	Doc      *cheqdpb.DidDoc
	Metadata *cheqdpb.DidDocMetadata
}

// ResolveDocument fetches the document named by p, or the specific version
// when p carries one.
func (r *Resolver) ResolveDocument(ctx context.Context, p *did.Parsed) (*Document, error) {
	conn, err := r.Conn(ctx, p.Namespace)
	if err != nil {
		return nil, err
	}

	var value *cheqdpb.DidDocWithMetadata
	if p.HasVersion {
		err = r.call(p.Namespace, cheqdpb.DidDocVersionMethod, func() error {
			resp, err := conn.DID.DidDocVersion(ctx, &cheqdpb.QueryDidDocVersionRequest{ID: p.DID, Version: p.Version})
			if err == nil {
				value = resp.Value
			}
			return err
		})
	} else {
		err = r.call(p.Namespace, cheqdpb.DidDocMethod, func() error {
			resp, err := conn.DID.DidDoc(ctx, &cheqdpb.QueryDidDocRequest{ID: p.DID})
			if err == nil {
				value = resp.Value
			}
			return err
		})
	}
	if err != nil {
		return nil, err
	}

	if value == nil {
		return nil, did.NewError(did.KindInvalidResponse, "DID Document response missing value: "+p.DID)
	}
	if value.DidDoc == nil {
		return nil, did.NewError(did.KindInvalidResponse, "DID Document response missing document: "+p.DID)
	}
	return &Document{Doc: value.DidDoc, Metadata: value.Metadata}, nil
}
