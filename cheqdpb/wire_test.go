package cheqdpb

import (
	"context"
	"reflect"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestDidDocResponse_RoundTrip(t *testing.T) {
	created := time.Date(2023, 5, 1, 10, 0, 0, 123456789, time.UTC)
	in := &QueryDidDocResponse{Value: &DidDocWithMetadata{
		DidDoc: &DidDoc{
			Context:    []string{"https://www.w3.org/ns/did/v1"},
			ID:         "did:cheqd:testnet:abc",
			Controller: []string{"did:cheqd:testnet:abc"},
			VerificationMethod: []*VerificationMethod{{
				ID:                     "did:cheqd:testnet:abc#key-1",
				VerificationMethodType: "Ed25519VerificationKey2020",
				Controller:             "did:cheqd:testnet:abc",
				VerificationMaterial:   "z6Mk",
			}},
			Authentication: []string{"did:cheqd:testnet:abc#key-1"},
			Service: []*Service{{
				ID:              "did:cheqd:testnet:abc#svc",
				ServiceType:     "LinkedDomains",
				ServiceEndpoint: []string{"https://example.com"},
				Priority:        -1,
			}},
		},
		Metadata: &DidDocMetadata{
			Created:     timestamppb.New(created),
			Deactivated: true,
			VersionID:   "v1",
		},
	}}

	b, err := Codec.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := new(QueryDidDocResponse)
	if err := Codec.Unmarshal(b, out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in.Value.DidDoc, out.Value.DidDoc) {
		t.Fatalf("DidDoc mismatch:\nwant %+v\ngot  %+v", in.Value.DidDoc, out.Value.DidDoc)
	}
	m := out.Value.Metadata
	if m == nil {
		t.Fatalf("metadata dropped")
	}
	if !m.Created.AsTime().Equal(created) {
		t.Fatalf("created = %v, want %v", m.Created.AsTime(), created)
	}
	if !m.Deactivated || m.VersionID != "v1" || m.Updated != nil {
		t.Fatalf("metadata mismatch: %+v", m)
	}
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "col")
	b = protowire.AppendTag(b, 42, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)
	b = protowire.AppendTag(b, 43, protowire.BytesType)
	b = protowire.AppendString(b, "future")
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "id")

	var req QueryResourceRequest
	if err := req.UnmarshalWire(b); err != nil {
		t.Fatalf("UnmarshalWire: %v", err)
	}
	if want := (QueryResourceRequest{CollectionID: "col", ID: "id"}); req != want {
		t.Fatalf("got %+v, want %+v", req, want)
	}
}

func TestUnmarshal_RejectsMalformed(t *testing.T) {
	var wrongType []byte
	wrongType = protowire.AppendTag(wrongType, 1, protowire.VarintType)
	wrongType = protowire.AppendVarint(wrongType, 1)
	var doc QueryDidDocRequest
	if err := doc.UnmarshalWire(wrongType); err == nil {
		t.Fatalf("expected error for wrong wire type")
	}

	b, err := (&QueryResourceRequest{CollectionID: "collection", ID: "id"}).MarshalWire()
	if err != nil {
		t.Fatalf("MarshalWire: %v", err)
	}
	var req QueryResourceRequest
	if err := req.UnmarshalWire(b[:len(b)-1]); err == nil {
		t.Fatalf("expected error for truncated input")
	}
}

func TestCodec_RejectsForeignTypes(t *testing.T) {
	if _, err := Codec.Marshal("not a message"); err == nil {
		t.Fatalf("expected Marshal error")
	}
	if err := Codec.Unmarshal(nil, new(int)); err == nil {
		t.Fatalf("expected Unmarshal error")
	}
	if Codec.Name() != "proto" {
		t.Fatalf("codec name %q", Codec.Name())
	}
}

func TestEmptyPresentMessageIsKept(t *testing.T) {
	b, err := (&QueryResourceResponse{Resource: &ResourceWithMetadata{}}).MarshalWire()
	if err != nil {
		t.Fatalf("MarshalWire: %v", err)
	}
	var out QueryResourceResponse
	if err := out.UnmarshalWire(b); err != nil {
		t.Fatalf("UnmarshalWire: %v", err)
	}
	if out.Resource == nil || out.Resource.Resource != nil || out.Resource.Metadata != nil {
		t.Fatalf("got %+v", out.Resource)
	}
}

type didServer struct {
	UnimplementedDidQueryServer
}

func (didServer) DidDoc(_ context.Context, in *QueryDidDocRequest) (*QueryDidDocResponse, error) {
	return &QueryDidDocResponse{Value: &DidDocWithMetadata{DidDoc: &DidDoc{ID: in.ID}}}, nil
}

func TestServiceDesc_Handler(t *testing.T) {
	handler := DidQuery_ServiceDesc.Methods[0].Handler
	dec := func(v any) error {
		v.(*QueryDidDocRequest).ID = "did:cheqd:testnet:abc"
		return nil
	}

	resp, err := handler(didServer{}, context.Background(), dec, nil)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if got := resp.(*QueryDidDocResponse).Value.DidDoc.ID; got != "did:cheqd:testnet:abc" {
		t.Fatalf("id %q", got)
	}

	var seen string
	intercept := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return next(ctx, req)
	}
	if _, err := handler(didServer{}, context.Background(), dec, intercept); err != nil {
		t.Fatalf("intercepted handler: %v", err)
	}
	if seen != DidDocMethod {
		t.Fatalf("interceptor saw %q, want %q", seen, DidDocMethod)
	}
}
