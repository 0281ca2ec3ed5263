// Package network describes the cheqd networks a resolver may query.
package network

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

const (
	MainnetNamespace = "mainnet"
	MainnetEndpoint  = "https://grpc.cheqd.net:443"
	TestnetNamespace = "testnet"
	TestnetEndpoint  = "https://grpc.cheqd.network:443"
)

// NetworkConfiguration maps a DID namespace to the gRPC endpoint of a node
// serving that network.
type NetworkConfiguration struct {
	Namespace string `toml:"namespace"`
	Endpoint  string `toml:"endpoint"`
}

// Mainnet returns the default configuration for cheqd mainnet.
func Mainnet() NetworkConfiguration {
	return NetworkConfiguration{Namespace: MainnetNamespace, Endpoint: MainnetEndpoint}
}

// Testnet returns the default configuration for cheqd testnet.
func Testnet() NetworkConfiguration {
	return NetworkConfiguration{Namespace: TestnetNamespace, Endpoint: TestnetEndpoint}
}

// Config is the set of networks a resolver can reach.
type Config struct {
	Networks []NetworkConfiguration
}

// Default returns the zero-configuration mainnet + testnet set.
func Default() Config {
	return Config{Networks: []NetworkConfiguration{Mainnet(), Testnet()}}
}

// Validate checks that every network has a namespace and endpoint and that
// namespaces are unique. Endpoint syntax is checked lazily at connect time.
func (c Config) Validate() error {
	if len(c.Networks) == 0 {
		return errors.New("network: at least one network is required")
	}
	seen := make(map[string]struct{}, len(c.Networks))
	for _, n := range c.Networks {
		if n.Namespace == "" {
			return errors.New("network: namespace is required")
		}
		if n.Endpoint == "" {
			return fmt.Errorf("network: endpoint is required for %q", n.Namespace)
		}
		if _, ok := seen[n.Namespace]; ok {
			return fmt.Errorf("network: duplicate namespace %q", n.Namespace)
		}
		seen[n.Namespace] = struct{}{}
	}
	return nil
}

// Lookup returns the configuration for namespace.
func (c Config) Lookup(namespace string) (NetworkConfiguration, bool) {
	for _, n := range c.Networks {
		if n.Namespace == namespace {
			return n, true
		}
	}
	return NetworkConfiguration{}, false
}

// Namespaces lists configured namespaces in configuration order.
func (c Config) Namespaces() []string {
	out := make([]string, 0, len(c.Networks))
	for _, n := range c.Networks {
		out = append(out, n.Namespace)
	}
	return out
}

// Merge returns c with other's networks added; entries in other replace
// entries of c that share a namespace.
func (c Config) Merge(other Config) Config {
	out := Config{Networks: make([]NetworkConfiguration, 0, len(c.Networks)+len(other.Networks))}
	replaced := make(map[string]NetworkConfiguration, len(other.Networks))
	for _, n := range other.Networks {
		replaced[n.Namespace] = n
	}
	for _, n := range c.Networks {
		if r, ok := replaced[n.Namespace]; ok {
			out.Networks = append(out.Networks, r)
			delete(replaced, n.Namespace)
			continue
		}
		out.Networks = append(out.Networks, n)
	}
	for _, n := range other.Networks {
		if _, ok := replaced[n.Namespace]; ok {
			out.Networks = append(out.Networks, n)
		}
	}
	return out
}

// Endpoint is a parsed gRPC dial target.
type Endpoint struct {
	// Target is the host:port passed to the gRPC client.
	Target string
	// TLS reports whether transport security is required (https scheme).
	TLS bool
}

// ParseEndpoint parses an endpoint URI of the form http(s)://host[:port].
// A missing port defaults to 443 for https and 80 for http.
func ParseEndpoint(uri string) (Endpoint, error) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return Endpoint{}, err
	}
	var tls bool
	var port string
	switch u.Scheme {
	case "https":
		tls, port = true, "443"
	case "http":
		port = "80"
	default:
		return Endpoint{}, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return Endpoint{}, fmt.Errorf("endpoint %q has no host", uri)
	}
	if p := u.Port(); p != "" {
		port = p
	}
	if u.Path != "" && u.Path != "/" {
		return Endpoint{}, fmt.Errorf("endpoint %q must not carry a path", uri)
	}
	return Endpoint{Target: net.JoinHostPort(host, port), TLS: tls}, nil
}
