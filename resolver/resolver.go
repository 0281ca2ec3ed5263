// Package resolver resolves did:cheqd DIDs and DID URLs against cheqd nodes.
//
// A Resolver owns one lazily-established connection per configured network
// and maps each parsed request onto one or two query RPCs. It performs no
// caching of results and no retries: any RPC failure is returned as is.
package resolver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/didcheqd/did"
	"xdao.co/didcheqd/network"
)

// Observer receives connection and RPC outcomes, e.g. for metrics.
type Observer interface {
	ObserveConnect(namespace string, err error)
	ObserveRPC(namespace, method string, err error, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveConnect(string, error)                    {}
func (nopObserver) ObserveRPC(string, string, error, time.Duration) {}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConnector replaces the default GRPCConnector.
func WithConnector(c Connector) Option {
	return func(r *Resolver) { r.connector = c }
}

// WithClock sets the clock used when a DID URL has no resourceVersionTime.
func WithClock(c clock.Clock) Option {
	return func(r *Resolver) { r.clock = c }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// WithObserver installs a connection/RPC observer.
func WithObserver(o Observer) Option {
	return func(r *Resolver) { r.observer = o }
}

// WithChecksumVerification toggles checking fetched resource bytes against
// the ledger checksum. Enabled by default.
func WithChecksumVerification(enabled bool) Option {
	return func(r *Resolver) { r.verifyChecksums = enabled }
}

// Resolver is safe for concurrent use.
type Resolver struct {
	networks        network.Config
	connector       Connector
	clock           clock.Clock
	log             zerolog.Logger
	observer        Observer
	verifyChecksums bool

	mu    sync.Mutex
	conns map[string]*Conn
}

// New assembles a resolver for the given networks. network.Default() can be
// used when mainnet and testnet are sufficient.
func New(cfg network.Config, opts ...Option) *Resolver {
	r := &Resolver{
		networks:        cfg,
		connector:       GRPCConnector{},
		clock:           clock.New(),
		log:             zerolog.Nop(),
		observer:        nopObserver{},
		verifyChecksums: true,
		conns:           make(map[string]*Conn),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Networks returns the configuration the resolver was built with.
func (r *Resolver) Networks() network.Config { return r.networks }

// Conn returns the cached connection for namespace, establishing it on first use.
//
// The cache lock is held while connecting, so first connections to distinct
// namespaces are serialized. Cardinality equals the configured network count.
func (r *Resolver) Conn(ctx context.Context, namespace string) (*Conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.conns[namespace]; ok {
		return c, nil
	}

	cfg, ok := r.networks.Lookup(namespace)
	if !ok {
		return nil, did.NewError(did.KindNetworkNotSupported, "network not supported: "+namespace)
	}
	endpoint, err := network.ParseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, did.WrapError(did.KindBadConfiguration, "failed to parse gRPC url for "+namespace, err)
	}

	r.log.Debug().Str("network", namespace).Str("target", endpoint.Target).Bool("tls", endpoint.TLS).Msg("connecting")
	c, err := r.connector.Connect(ctx, namespace, endpoint)
	r.observer.ObserveConnect(namespace, err)
	if err != nil {
		r.log.Warn().Err(err).Str("network", namespace).Msg("connect failed")
		return nil, did.WrapError(did.KindTransportError, "failed to connect to "+namespace, err)
	}
	r.conns[namespace] = c
	return c, nil
}

// Close closes every cached connection. The resolver reconnects lazily if
// used afterwards.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for ns, c := range r.conns {
		err = multierr.Append(err, c.Close())
		delete(r.conns, ns)
	}
	return err
}

// call runs one RPC and reports it to the observer. A failed RPC becomes a
// NonSuccessResponse error.
func (r *Resolver) call(namespace, method string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.observer.ObserveRPC(namespace, method, err, time.Since(start))
	if err != nil {
		r.log.Debug().Err(err).Str("network", namespace).Str("rpc", method).Msg("rpc failed")
		return did.WrapError(did.KindNonSuccessResponse, method+" on "+namespace+" failed", err)
	}
	return nil
}

// IsNotFound reports whether err is a NonSuccessResponse caused by the node
// answering NotFound.
func IsNotFound(err error) bool {
	var e *did.Error
	if !errors.As(err, &e) || e.Kind != did.KindNonSuccessResponse {
		return false
	}
	return status.Code(e.Cause) == codes.NotFound
}
