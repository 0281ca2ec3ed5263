package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "didcheqd"

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	resolverRPCs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "resolver",
			Name:      "rpcs_total",
			Help:      "Ledger query RPCs issued by the resolver.",
		},
		[]string{"network", "rpc", "success"},
	)
	resolverRPCDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "resolver",
			Name:      "rpc_duration_seconds",
			Help:      "Ledger query RPC duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"network", "rpc", "success"},
	)
	resolverConnects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "resolver",
			Name:      "connects_total",
			Help:      "Connection attempts per network.",
		},
		[]string{"network", "success"},
	)
	grpcClientHandled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "grpc_client",
			Name:      "handled_total",
			Help:      "Unary gRPC calls completed, by status code.",
		},
		[]string{"method", "code"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests, httpDuration,
			resolverRPCs, resolverRPCDuration, resolverConnects,
			grpcClientHandled,
		)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordRPC(network, rpc string, success bool, duration time.Duration) {
	RegisterMetrics()
	successLabel := strconv.FormatBool(success)
	resolverRPCs.WithLabelValues(network, rpc, successLabel).Inc()
	resolverRPCDuration.WithLabelValues(network, rpc, successLabel).Observe(duration.Seconds())
}

func RecordConnect(network string, success bool) {
	RegisterMetrics()
	resolverConnects.WithLabelValues(network, strconv.FormatBool(success)).Inc()
}

func RecordGRPCClient(method, code string) {
	RegisterMetrics()
	grpcClientHandled.WithLabelValues(method, code).Inc()
}

// ResolverObserver feeds resolver events into the metrics above.
type ResolverObserver struct{}

func (ResolverObserver) ObserveConnect(network string, err error) {
	RecordConnect(network, err == nil)
}

func (ResolverObserver) ObserveRPC(network, rpc string, err error, elapsed time.Duration) {
	RecordRPC(network, rpc, err == nil, elapsed)
}
