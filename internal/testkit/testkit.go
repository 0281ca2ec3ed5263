// Package testkit wires a resolver to an in-process ledger for tests.
package testkit

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"xdao.co/didcheqd/cheqdpb"
	"xdao.co/didcheqd/internal/ledger"
	"xdao.co/didcheqd/network"
	"xdao.co/didcheqd/resolver"
)

// Namespace is the network served by the in-process ledger.
const Namespace = "devnet"

// Sample DID and resources of testdata/devnet.toml, re-namespaced to devnet.
const (
	SampleDID        = "did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J"
	SampleCollection = "zF7rhDBfUt9d1gJPjx7s1J"
	SampleResourceV1 = "9fbb1b86-91f8-4942-97b9-725b7714131c"
	SampleResourceV2 = "3ccde6ba-6ba5-56f2-9f4f-8825561a9860"
)

// Config returns the default networks plus devnet.
func Config() network.Config {
	cfg := network.Default()
	cfg.Networks = append(cfg.Networks, network.NetworkConfiguration{Namespace: Namespace, Endpoint: "http://devnet.invalid:9090"})
	return cfg
}

// Connector returns a connector that reaches l over bufconn regardless of
// the configured endpoint. The server stops when the test ends.
func Connector(t testing.TB, l *ledger.Ledger) resolver.Connector {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer(cheqdpb.ServerOption())
	l.Register(srv)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	return resolver.GRPCConnector{
		DialOptions: []grpc.DialOption{
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		},
	}
}

// Serve exposes l on a loopback TCP port and returns its http:// endpoint.
func Serve(t testing.TB, l *ledger.Ledger) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := grpc.NewServer(cheqdpb.ServerOption())
	l.Register(srv)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)
	return "http://" + lis.Addr().String()
}

// NewResolver returns a resolver whose devnet is backed by l.
func NewResolver(t testing.TB, l *ledger.Ledger, opts ...resolver.Option) *resolver.Resolver {
	t.Helper()
	conn := Connector(t, l)
	r := resolver.New(Config(), append([]resolver.Option{resolver.WithConnector(passthrough{conn})}, opts...)...)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// SampleLedger holds the sample DID with two versions and two revisions of
// one schema resource.
func SampleLedger(t testing.TB) *ledger.Ledger {
	t.Helper()
	l, err := ledger.DecodeFixture(sampleFixture)
	if err != nil {
		t.Fatalf("sample fixture: %v", err)
	}
	return l
}

// passthrough redirects every dial to the bufconn listener.
type passthrough struct{ next resolver.Connector }

func (p passthrough) Connect(ctx context.Context, namespace string, _ network.Endpoint) (*resolver.Conn, error) {
	return p.next.Connect(ctx, namespace, network.Endpoint{Target: "passthrough:///bufnet"})
}

const sampleFixture = `
[[documents]]
context = ["https://www.w3.org/ns/did/v1"]
id = "did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J"
controller = ["did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J"]
authentication = ["did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J#key-1"]
version_id = "v1"
created = 2023-01-10T08:00:00Z

  [[documents.verification_method]]
  id = "did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J#key-1"
  type = "Ed25519VerificationKey2020"
  material = "z6MkkVbyHJLLjdjU5B62DaJ4mkdMdqf9vCRVcvhzrF2spJDd"

[[documents]]
context = ["https://www.w3.org/ns/did/v1"]
id = "did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J"
controller = ["did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J"]
authentication = ["did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J#key-1"]
version_id = "v2"
created = 2023-01-10T08:00:00Z
updated = 2023-02-01T12:30:00Z
deactivated = true

  [[documents.verification_method]]
  id = "did:cheqd:devnet:zF7rhDBfUt9d1gJPjx7s1J#key-1"
  type = "Ed25519VerificationKey2020"
  material = "z6MkkVbyHJLLjdjU5B62DaJ4mkdMdqf9vCRVcvhzrF2spJDd"

[[documents]]
id = "did:cheqd:devnet:bare"
no_metadata = true

[[resources]]
collection = "zF7rhDBfUt9d1gJPjx7s1J"
id = "9fbb1b86-91f8-4942-97b9-725b7714131c"
name = "EmployeeSchema"
type = "JsonSchema2020"
version = "1.0"
media_type = "application/json"
created = 2023-01-11T08:00:00Z
data = '{"title":"Employee","version":"1.0"}'

[[resources]]
collection = "zF7rhDBfUt9d1gJPjx7s1J"
id = "3ccde6ba-6ba5-56f2-9f4f-8825561a9860"
name = "EmployeeSchema"
type = "JsonSchema2020"
version = "2.0"
media_type = "application/json"
created = 2023-03-01T08:00:00Z
data = '{"title":"Employee","version":"2.0"}'
`
