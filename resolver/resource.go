package resolver

import (
	"context"
	"fmt"
	"time"

	"xdao.co/didcheqd/cheqdpb"
	"xdao.co/didcheqd/cidutil"
	"xdao.co/didcheqd/did"
)

// Resource is a dereferenced resource payload. MediaType is empty when the
// ledger did not record one.
type Resource struct {
	Data      []byte
	MediaType string
	Record    ResourceRecord
}

// ResolveResource dereferences a DID URL to a resource, either by exact id
// or by the latest name+type revision created before the requested time.
func (r *Resolver) ResolveResource(ctx context.Context, p *did.Parsed) (*Resource, error) {
	sel, err := p.Selector(r.clock.Now())
	if err != nil {
		return nil, err
	}
	conn, err := r.Conn(ctx, p.Namespace)
	if err != nil {
		return nil, err
	}

	switch s := sel.(type) {
	case did.SelectorExactID:
		return r.fetchResource(ctx, conn, p.Namespace, p.ID, s.ID)
	case did.SelectorNameTypeTime:
		records, err := r.listCollection(ctx, conn, p.Namespace, p.ID)
		if err != nil {
			return nil, err
		}
		rec, ok := SelectRevision(records, s.Name, s.Type, s.Before)
		if !ok {
			return nil, revisionNotFound(p, s)
		}
		r.log.Debug().
			Str("network", p.Namespace).
			Str("collection", p.ID).
			Str("resource", rec.ID).
			Time("created", rec.Created).
			Msg("selected resource revision")
		return r.fetchResource(ctx, conn, p.Namespace, p.ID, rec.ID)
	default:
		return nil, did.NewError(did.KindInvalidDidURL, fmt.Sprintf("unsupported selector %T", sel))
	}
}

// ResolveResourceMetadata selects a resource like ResolveResource but returns
// only its ledger record, without transferring the payload.
func (r *Resolver) ResolveResourceMetadata(ctx context.Context, p *did.Parsed) (ResourceRecord, error) {
	sel, err := p.Selector(r.clock.Now())
	if err != nil {
		return ResourceRecord{}, err
	}
	conn, err := r.Conn(ctx, p.Namespace)
	if err != nil {
		return ResourceRecord{}, err
	}

	switch s := sel.(type) {
	case did.SelectorExactID:
		var resp *cheqdpb.QueryResourceMetadataResponse
		err := r.call(p.Namespace, cheqdpb.ResourceMetadataMethod, func() error {
			var err error
			resp, err = conn.Resources.ResourceMetadata(ctx, &cheqdpb.QueryResourceRequest{CollectionID: p.ID, ID: s.ID})
			return err
		})
		if err != nil {
			return ResourceRecord{}, err
		}
		if resp.Resource == nil {
			return ResourceRecord{}, did.NewError(did.KindInvalidResponse, "resource metadata response missing value: collection "+p.ID+", resource "+s.ID)
		}
		return recordFrom(resp.Resource), nil
	case did.SelectorNameTypeTime:
		records, err := r.listCollection(ctx, conn, p.Namespace, p.ID)
		if err != nil {
			return ResourceRecord{}, err
		}
		rec, ok := SelectRevision(records, s.Name, s.Type, s.Before)
		if !ok {
			return ResourceRecord{}, revisionNotFound(p, s)
		}
		return rec, nil
	default:
		return ResourceRecord{}, did.NewError(did.KindInvalidDidURL, fmt.Sprintf("unsupported selector %T", sel))
	}
}

// CollectionResources lists the metadata of every resource in p's collection.
func (r *Resolver) CollectionResources(ctx context.Context, p *did.Parsed) ([]ResourceRecord, error) {
	conn, err := r.Conn(ctx, p.Namespace)
	if err != nil {
		return nil, err
	}
	return r.listCollection(ctx, conn, p.Namespace, p.ID)
}

func (r *Resolver) listCollection(ctx context.Context, conn *Conn, namespace, collection string) ([]ResourceRecord, error) {
	var resp *cheqdpb.QueryCollectionResourcesResponse
	err := r.call(namespace, cheqdpb.CollectionResourcesMethod, func() error {
		var err error
		resp, err = conn.Resources.CollectionResources(ctx, &cheqdpb.QueryCollectionResourcesRequest{CollectionID: collection})
		return err
	})
	if err != nil {
		return nil, err
	}

	records := make([]ResourceRecord, 0, len(resp.Resources))
	for i, m := range resp.Resources {
		if m == nil {
			return nil, did.NewError(did.KindInvalidResponse, fmt.Sprintf("collection %s: entry %d is empty", collection, i))
		}
		if m.Created == nil {
			return nil, did.NewError(did.KindInvalidResponse, fmt.Sprintf("collection %s: resource %s has no creation time", collection, m.ID))
		}
		records = append(records, recordFrom(m))
	}
	return records, nil
}

func (r *Resolver) fetchResource(ctx context.Context, conn *Conn, namespace, collection, id string) (*Resource, error) {
	var resp *cheqdpb.QueryResourceResponse
	err := r.call(namespace, cheqdpb.ResourceMethod, func() error {
		var err error
		resp, err = conn.Resources.Resource(ctx, &cheqdpb.QueryResourceRequest{CollectionID: collection, ID: id})
		return err
	})
	if err != nil {
		return nil, err
	}

	where := "collection " + collection + ", resource " + id
	switch {
	case resp.Resource == nil:
		return nil, did.NewError(did.KindInvalidResponse, "resource response missing value: "+where)
	case resp.Resource.Resource == nil:
		return nil, did.NewError(did.KindInvalidResponse, "resource response missing payload: "+where)
	case resp.Resource.Metadata == nil:
		return nil, did.NewError(did.KindInvalidResponse, "resource response missing metadata: "+where)
	}

	data := resp.Resource.Resource.Data
	rec := recordFrom(resp.Resource.Metadata)
	if r.verifyChecksums {
		if checked, ok := cidutil.MatchChecksum(data, rec.Checksum); checked && !ok {
			return nil, did.NewError(did.KindChecksumMismatch, fmt.Sprintf("%s: payload digest %s, ledger checksum %s",
				where, cidutil.SHA256Hex(data), rec.Checksum))
		}
	}
	return &Resource{Data: data, MediaType: rec.MediaType, Record: rec}, nil
}

func revisionNotFound(p *did.Parsed, s did.SelectorNameTypeTime) error {
	return did.NewError(did.KindResourceNotFound, fmt.Sprintf(
		"network: %s, collection: %s, name: %s, type: %s, time: %s",
		p.Namespace, p.ID, s.Name, s.Type, s.Before.Format(time.RFC3339Nano)))
}

func recordFrom(m *cheqdpb.ResourceMetadata) ResourceRecord {
	rec := ResourceRecord{
		ID:                m.ID,
		CollectionID:      m.CollectionID,
		Name:              m.Name,
		Type:              m.ResourceType,
		Version:           m.Version,
		MediaType:         m.MediaType,
		Checksum:          m.Checksum,
		PreviousVersionID: m.PreviousVersionID,
		NextVersionID:     m.NextVersionID,
	}
	if m.Created != nil {
		rec.Created = m.Created.AsTime()
	}
	return rec
}
