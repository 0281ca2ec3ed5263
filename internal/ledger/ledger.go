// Package ledger is an in-memory cheqd ledger serving the DID and resource
// query services. It backs the dev node and the gRPC tests.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/didcheqd/cheqdpb"
	"xdao.co/didcheqd/cidutil"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid entry")
)

type docVersion struct {
	doc  *cheqdpb.DidDoc
	meta *cheqdpb.DidDocMetadata
}

type resourceEntry struct {
	meta *cheqdpb.ResourceMetadata
	data []byte
}

// Ledger holds DID document versions and resource collections. Stored
// messages must not be modified by callers after insertion.
type Ledger struct {
	mu          sync.RWMutex
	docs        map[string][]docVersion
	collections map[string][]resourceEntry
}

var (
	_ cheqdpb.DidQueryServer      = (*Ledger)(nil)
	_ cheqdpb.ResourceQueryServer = (*Ledger)(nil)
)

func New() *Ledger {
	return &Ledger{
		docs:        make(map[string][]docVersion),
		collections: make(map[string][]resourceEntry),
	}
}

// Register exposes both query services on s. The server must be created with
// cheqdpb.ServerOption().
func (l *Ledger) Register(s grpc.ServiceRegistrar) {
	cheqdpb.RegisterDidQueryServer(s, l)
	cheqdpb.RegisterResourceQueryServer(s, l)
}

// PutDocument appends a document version. The newest version is the one
// returned by DidDoc. Version links are filled in when left blank.
func (l *Ledger) PutDocument(doc *cheqdpb.DidDoc, meta *cheqdpb.DidDocMetadata) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("%w: document without id", ErrInvalid)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	versions := l.docs[doc.ID]
	if meta != nil && len(versions) > 0 {
		prev := versions[len(versions)-1].meta
		if prev != nil {
			if meta.PreviousVersionID == "" {
				meta.PreviousVersionID = prev.VersionID
			}
			if prev.NextVersionID == "" {
				prev.NextVersionID = meta.VersionID
			}
		}
	}
	l.docs[doc.ID] = append(versions, docVersion{doc: doc, meta: meta})
	return nil
}

// PutResource adds a resource to meta.CollectionID. A blank checksum is
// computed from data; previous/next version links between entries sharing
// name and type are filled in when left blank.
func (l *Ledger) PutResource(meta *cheqdpb.ResourceMetadata, data []byte) error {
	switch {
	case meta == nil:
		return fmt.Errorf("%w: missing metadata", ErrInvalid)
	case meta.CollectionID == "" || meta.ID == "":
		return fmt.Errorf("%w: resource needs collection and id", ErrInvalid)
	case meta.Created == nil:
		return fmt.Errorf("%w: resource %s has no creation time", ErrInvalid, meta.ID)
	}
	if meta.Checksum == "" {
		meta.Checksum = cidutil.SHA256Hex(data)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.collections[meta.CollectionID]
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].meta.ID == meta.ID {
			return fmt.Errorf("%w: duplicate resource %s", ErrInvalid, meta.ID)
		}
	}
	for i := len(entries) - 1; i >= 0; i-- {
		prev := entries[i].meta
		if prev.Name != meta.Name || prev.ResourceType != meta.ResourceType {
			continue
		}
		if meta.PreviousVersionID == "" {
			meta.PreviousVersionID = prev.ID
		}
		if prev.NextVersionID == "" {
			prev.NextVersionID = meta.ID
		}
		break
	}
	l.collections[meta.CollectionID] = append(entries, resourceEntry{meta: meta, data: data})
	return nil
}

func (l *Ledger) DidDoc(ctx context.Context, in *cheqdpb.QueryDidDocRequest) (*cheqdpb.QueryDidDocResponse, error) {
	_ = ctx
	l.mu.RLock()
	defer l.mu.RUnlock()

	versions := l.docs[in.ID]
	if len(versions) == 0 {
		return nil, mapErr(fmt.Errorf("%w: DID %s", ErrNotFound, in.ID))
	}
	v := versions[len(versions)-1]
	return &cheqdpb.QueryDidDocResponse{Value: &cheqdpb.DidDocWithMetadata{DidDoc: v.doc, Metadata: v.meta}}, nil
}

func (l *Ledger) DidDocVersion(ctx context.Context, in *cheqdpb.QueryDidDocVersionRequest) (*cheqdpb.QueryDidDocVersionResponse, error) {
	_ = ctx
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, v := range l.docs[in.ID] {
		if v.meta != nil && v.meta.VersionID == in.Version {
			return &cheqdpb.QueryDidDocVersionResponse{Value: &cheqdpb.DidDocWithMetadata{DidDoc: v.doc, Metadata: v.meta}}, nil
		}
	}
	return nil, mapErr(fmt.Errorf("%w: DID %s version %s", ErrNotFound, in.ID, in.Version))
}

func (l *Ledger) Resource(ctx context.Context, in *cheqdpb.QueryResourceRequest) (*cheqdpb.QueryResourceResponse, error) {
	_ = ctx
	e, err := l.lookup(in.CollectionID, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &cheqdpb.QueryResourceResponse{Resource: &cheqdpb.ResourceWithMetadata{
		Resource: &cheqdpb.Resource{Data: e.data},
		Metadata: e.meta,
	}}, nil
}

func (l *Ledger) ResourceMetadata(ctx context.Context, in *cheqdpb.QueryResourceRequest) (*cheqdpb.QueryResourceMetadataResponse, error) {
	_ = ctx
	e, err := l.lookup(in.CollectionID, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &cheqdpb.QueryResourceMetadataResponse{Resource: e.meta}, nil
}

// CollectionResources lists a collection in insertion order. Offset and
// limit pagination is honoured; page keys are not.
func (l *Ledger) CollectionResources(ctx context.Context, in *cheqdpb.QueryCollectionResourcesRequest) (*cheqdpb.QueryCollectionResourcesResponse, error) {
	_ = ctx
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := l.collections[in.CollectionID]
	start, end := uint64(0), uint64(len(entries))
	if p := in.Pagination; p != nil {
		if len(p.Key) > 0 {
			return nil, status.Error(codes.InvalidArgument, "key based pagination is not supported")
		}
		start = min(p.Offset, end)
		if p.Limit > 0 {
			end = min(start+p.Limit, end)
		}
	}

	resp := &cheqdpb.QueryCollectionResourcesResponse{}
	for _, e := range entries[start:end] {
		resp.Resources = append(resp.Resources, e.meta)
	}
	if in.Pagination != nil && in.Pagination.CountTotal {
		resp.Pagination = &cheqdpb.PageResponse{Total: uint64(len(entries))}
	}
	return resp, nil
}

// DIDs returns the stored DIDs, sorted.
func (l *Ledger) DIDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.docs))
	for id := range l.docs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (l *Ledger) lookup(collection, id string) (resourceEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.collections[collection] {
		if e.meta.ID == id {
			return e, nil
		}
	}
	return resourceEntry{}, fmt.Errorf("%w: resource %s in collection %s", ErrNotFound, id, collection)
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrInvalid):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
