package resolver

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"xdao.co/didcheqd/cheqdpb"
	"xdao.co/didcheqd/network"
)

// Conn is an established connection to one network's node.
// Handles for the same network are interchangeable.
type Conn struct {
	DID       cheqdpb.DidQueryClient
	Resources cheqdpb.ResourceQueryClient

	closeFn func() error
}

// NewConn assembles a Conn from query clients. closeFn may be nil.
func NewConn(did cheqdpb.DidQueryClient, resources cheqdpb.ResourceQueryClient, closeFn func() error) *Conn {
	return &Conn{DID: did, Resources: resources, closeFn: closeFn}
}

// Close releases the underlying transport.
func (c *Conn) Close() error {
	if c == nil || c.closeFn == nil {
		return nil
	}
	return c.closeFn()
}

// Connector establishes connections to a network endpoint.
type Connector interface {
	Connect(ctx context.Context, namespace string, endpoint network.Endpoint) (*Conn, error)
}

// DefaultDialTimeout bounds connection establishment when
// GRPCConnector.DialTimeout is zero.
const DefaultDialTimeout = 10 * time.Second

// GRPCConnector dials cheqd nodes over gRPC. Connect returns only once the
// channel is ready, so an unreachable node fails at connect time.
type GRPCConnector struct {
	// DialTimeout bounds how long Connect waits for the channel to become
	// ready. Zero means DefaultDialTimeout.
	DialTimeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int

	// Interceptors are installed as chained unary client interceptors.
	Interceptors []grpc.UnaryClientInterceptor

	// DialOptions are appended after the options derived from the fields above.
	DialOptions []grpc.DialOption
}

func (g GRPCConnector) Connect(ctx context.Context, namespace string, endpoint network.Endpoint) (*Conn, error) {
	creds := insecure.NewCredentials()
	if endpoint.TLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts := []grpc.DialOption{grpc.WithTransportCredentials(creds)}
	if g.MaxMsgBytes > 0 {
		opts = append(opts, grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(g.MaxMsgBytes),
			grpc.MaxCallSendMsgSize(g.MaxMsgBytes),
		))
	}
	if len(g.Interceptors) > 0 {
		opts = append(opts, grpc.WithChainUnaryInterceptor(g.Interceptors...))
	}
	opts = append(opts, g.DialOptions...)

	cc, err := grpc.NewClient(endpoint.Target, opts...)
	if err != nil {
		return nil, err
	}
	timeout := g.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	if err := waitReady(ctx, cc, timeout); err != nil {
		_ = cc.Close()
		return nil, fmt.Errorf("%s (%s): %w", namespace, endpoint.Target, err)
	}
	return NewConn(cheqdpb.NewDidQueryClient(cc), cheqdpb.NewResourceQueryClient(cc), cc.Close), nil
}

func waitReady(ctx context.Context, cc *grpc.ClientConn, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cc.Connect()
	for {
		state := cc.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.TransientFailure:
			return fmt.Errorf("connection failed (state %s)", state)
		case connectivity.Shutdown:
			return fmt.Errorf("connection shut down")
		}
		if !cc.WaitForStateChange(ctx, state) {
			return fmt.Errorf("not ready after %s (last state %s): %w", timeout, state, ctx.Err())
		}
	}
}
