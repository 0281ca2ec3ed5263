package cheqdpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	didServiceName      = "cheqd.did.v2.Query"
	resourceServiceName = "cheqd.resource.v2.Query"

	DidDocMethod              = "/" + didServiceName + "/DidDoc"
	DidDocVersionMethod       = "/" + didServiceName + "/DidDocVersion"
	ResourceMethod            = "/" + resourceServiceName + "/Resource"
	ResourceMetadataMethod    = "/" + resourceServiceName + "/ResourceMetadata"
	CollectionResourcesMethod = "/" + resourceServiceName + "/CollectionResources"
)

// DidQueryClient is the client API for cheqd.did.v2.Query.
type DidQueryClient interface {
	DidDoc(ctx context.Context, in *QueryDidDocRequest, opts ...grpc.CallOption) (*QueryDidDocResponse, error)
	DidDocVersion(ctx context.Context, in *QueryDidDocVersionRequest, opts ...grpc.CallOption) (*QueryDidDocVersionResponse, error)
}

type didQueryClient struct{ cc grpc.ClientConnInterface }

// NewDidQueryClient returns a client for cheqd.did.v2.Query over cc.
func NewDidQueryClient(cc grpc.ClientConnInterface) DidQueryClient { return &didQueryClient{cc: cc} }

func (c *didQueryClient) DidDoc(ctx context.Context, in *QueryDidDocRequest, opts ...grpc.CallOption) (*QueryDidDocResponse, error) {
	out := new(QueryDidDocResponse)
	if err := c.cc.Invoke(ctx, DidDocMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *didQueryClient) DidDocVersion(ctx context.Context, in *QueryDidDocVersionRequest, opts ...grpc.CallOption) (*QueryDidDocVersionResponse, error) {
	out := new(QueryDidDocVersionResponse)
	if err := c.cc.Invoke(ctx, DidDocVersionMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// ResourceQueryClient is the client API for cheqd.resource.v2.Query.
type ResourceQueryClient interface {
	Resource(ctx context.Context, in *QueryResourceRequest, opts ...grpc.CallOption) (*QueryResourceResponse, error)
	ResourceMetadata(ctx context.Context, in *QueryResourceRequest, opts ...grpc.CallOption) (*QueryResourceMetadataResponse, error)
	CollectionResources(ctx context.Context, in *QueryCollectionResourcesRequest, opts ...grpc.CallOption) (*QueryCollectionResourcesResponse, error)
}

type resourceQueryClient struct{ cc grpc.ClientConnInterface }

// NewResourceQueryClient returns a client for cheqd.resource.v2.Query over cc.
func NewResourceQueryClient(cc grpc.ClientConnInterface) ResourceQueryClient {
	return &resourceQueryClient{cc: cc}
}

func (c *resourceQueryClient) Resource(ctx context.Context, in *QueryResourceRequest, opts ...grpc.CallOption) (*QueryResourceResponse, error) {
	out := new(QueryResourceResponse)
	if err := c.cc.Invoke(ctx, ResourceMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *resourceQueryClient) ResourceMetadata(ctx context.Context, in *QueryResourceRequest, opts ...grpc.CallOption) (*QueryResourceMetadataResponse, error) {
	out := new(QueryResourceMetadataResponse)
	if err := c.cc.Invoke(ctx, ResourceMetadataMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *resourceQueryClient) CollectionResources(ctx context.Context, in *QueryCollectionResourcesRequest, opts ...grpc.CallOption) (*QueryCollectionResourcesResponse, error) {
	out := new(QueryCollectionResourcesResponse)
	if err := c.cc.Invoke(ctx, CollectionResourcesMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// DidQueryServer is the server API for cheqd.did.v2.Query.
type DidQueryServer interface {
	DidDoc(context.Context, *QueryDidDocRequest) (*QueryDidDocResponse, error)
	DidDocVersion(context.Context, *QueryDidDocVersionRequest) (*QueryDidDocVersionResponse, error)
}

// ResourceQueryServer is the server API for cheqd.resource.v2.Query.
type ResourceQueryServer interface {
	Resource(context.Context, *QueryResourceRequest) (*QueryResourceResponse, error)
	ResourceMetadata(context.Context, *QueryResourceRequest) (*QueryResourceMetadataResponse, error)
	CollectionResources(context.Context, *QueryCollectionResourcesRequest) (*QueryCollectionResourcesResponse, error)
}

// UnimplementedDidQueryServer can be embedded to have forward compatible implementations.
type UnimplementedDidQueryServer struct{}

func (UnimplementedDidQueryServer) DidDoc(context.Context, *QueryDidDocRequest) (*QueryDidDocResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DidDoc not implemented")
}
func (UnimplementedDidQueryServer) DidDocVersion(context.Context, *QueryDidDocVersionRequest) (*QueryDidDocVersionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DidDocVersion not implemented")
}

// UnimplementedResourceQueryServer can be embedded to have forward compatible implementations.
type UnimplementedResourceQueryServer struct{}

func (UnimplementedResourceQueryServer) Resource(context.Context, *QueryResourceRequest) (*QueryResourceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Resource not implemented")
}
func (UnimplementedResourceQueryServer) ResourceMetadata(context.Context, *QueryResourceRequest) (*QueryResourceMetadataResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResourceMetadata not implemented")
}
func (UnimplementedResourceQueryServer) CollectionResources(context.Context, *QueryCollectionResourcesRequest) (*QueryCollectionResourcesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CollectionResources not implemented")
}

// RegisterDidQueryServer registers the DID query service. The server must be
// created with ServerOption.
func RegisterDidQueryServer(s grpc.ServiceRegistrar, srv DidQueryServer) {
	s.RegisterService(&DidQuery_ServiceDesc, srv)
}

// RegisterResourceQueryServer registers the resource query service. The
// server must be created with ServerOption.
func RegisterResourceQueryServer(s grpc.ServiceRegistrar, srv ResourceQueryServer) {
	s.RegisterService(&ResourceQuery_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method into a grpc.MethodDesc handler.
func unaryHandler[Req any, PReq interface {
	*Req
	Message
}, Resp any](fullMethod string, call func(srv any, ctx context.Context, in PReq) (Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DidQuery_ServiceDesc is the grpc.ServiceDesc for cheqd.did.v2.Query.
var DidQuery_ServiceDesc = grpc.ServiceDesc{
	ServiceName: didServiceName,
	HandlerType: (*DidQueryServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "DidDoc",
			Handler: unaryHandler(DidDocMethod, func(srv any, ctx context.Context, in *QueryDidDocRequest) (*QueryDidDocResponse, error) {
				return srv.(DidQueryServer).DidDoc(ctx, in)
			}),
		},
		{
			MethodName: "DidDocVersion",
			Handler: unaryHandler(DidDocVersionMethod, func(srv any, ctx context.Context, in *QueryDidDocVersionRequest) (*QueryDidDocVersionResponse, error) {
				return srv.(DidQueryServer).DidDocVersion(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cheqd/did/v2/query.proto",
}

// ResourceQuery_ServiceDesc is the grpc.ServiceDesc for cheqd.resource.v2.Query.
var ResourceQuery_ServiceDesc = grpc.ServiceDesc{
	ServiceName: resourceServiceName,
	HandlerType: (*ResourceQueryServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Resource",
			Handler: unaryHandler(ResourceMethod, func(srv any, ctx context.Context, in *QueryResourceRequest) (*QueryResourceResponse, error) {
				return srv.(ResourceQueryServer).Resource(ctx, in)
			}),
		},
		{
			MethodName: "ResourceMetadata",
			Handler: unaryHandler(ResourceMetadataMethod, func(srv any, ctx context.Context, in *QueryResourceRequest) (*QueryResourceMetadataResponse, error) {
				return srv.(ResourceQueryServer).ResourceMetadata(ctx, in)
			}),
		},
		{
			MethodName: "CollectionResources",
			Handler: unaryHandler(CollectionResourcesMethod, func(srv any, ctx context.Context, in *QueryCollectionResourcesRequest) (*QueryCollectionResourcesResponse, error) {
				return srv.(ResourceQueryServer).CollectionResources(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cheqd/resource/v2/query.proto",
}
