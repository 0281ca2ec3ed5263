package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"xdao.co/didcheqd/internal/observability"
	"xdao.co/didcheqd/network"
	"xdao.co/didcheqd/resolver"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks failures caused by bad invocation; they exit with 2.
type usageError struct{ error }

func run(args []string, out io.Writer, errOut io.Writer) int {
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		var ue usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}

type globalOptions struct {
	configPath  string
	networks    []string
	logLevel    string
	dialTimeout time.Duration
	maxMsgBytes int
	timeout     time.Duration
	noChecksum  bool

	logger zerolog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	g := &globalOptions{logger: zerolog.Nop()}
	cmd := &cobra.Command{
		Use:   "didcheqd [sub-command]",
		Short: "Resolve did:cheqd DIDs and DID URLs",
		Long: `didcheqd resolves did:cheqd DID Documents and dereferences ledger-hosted
  resources by querying cheqd nodes over gRPC. mainnet and testnet are
  configured out of the box; other networks come from --config or --network.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if g.logLevel == "" {
				return nil
			}
			logger, err := observability.InitLogger("didcheqd", g.logLevel)
			if err != nil {
				return usageError{err}
			}
			g.logger = logger
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{err}
	})

	f := cmd.PersistentFlags()
	f.StringVar(&g.configPath, "config", "", "TOML file with [[networks]] tables")
	f.StringArrayVar(&g.networks, "network", nil, `extra network as namespace=endpoint, e.g. "devnet=http://127.0.0.1:9090" (repeatable)`)
	f.StringVar(&g.logLevel, "log-level", "", "log to stderr at this level (debug, info, warn, error)")
	f.DurationVar(&g.dialTimeout, "dial-timeout", 0, "wait at most this long for a node connection to become ready (0 = 10s)")
	f.IntVar(&g.maxMsgBytes, "max-msg-bytes", 0, "maximum gRPC message size (0 = gRPC default)")
	f.DurationVar(&g.timeout, "timeout", 30*time.Second, "overall timeout per command")
	f.BoolVar(&g.noChecksum, "no-checksum", false, "skip verifying resource payloads against ledger checksums")

	cmd.AddCommand(
		newResolveCmd(g),
		newDereferenceCmd(g),
		newResourcesCmd(g),
		newParseCmd(),
		newNetworksCmd(g),
		newServeCmd(g),
	)
	return cmd
}

// loadNetworks builds the network set: defaults or --config, then --network
// overrides.
func (g *globalOptions) loadNetworks() (network.Config, error) {
	cfg := network.Default()
	if g.configPath != "" {
		loaded, err := network.LoadFile(g.configPath)
		if err != nil {
			return network.Config{}, err
		}
		cfg = loaded
	}

	for _, arg := range g.networks {
		ns, endpoint, ok := strings.Cut(arg, "=")
		ns, endpoint = strings.TrimSpace(ns), strings.TrimSpace(endpoint)
		if !ok || ns == "" || endpoint == "" {
			return network.Config{}, usageError{fmt.Errorf("--network %q: expected namespace=endpoint", arg)}
		}
		if _, err := network.ParseEndpoint(endpoint); err != nil {
			return network.Config{}, usageError{fmt.Errorf("--network %q: %w", arg, err)}
		}
		// Later flags win over earlier ones and over the file.
		cfg = cfg.Merge(network.Config{Networks: []network.NetworkConfiguration{{Namespace: ns, Endpoint: endpoint}}})
	}
	if err := cfg.Validate(); err != nil {
		return network.Config{}, err
	}
	return cfg, nil
}

func (g *globalOptions) newResolver() (*resolver.Resolver, network.Config, error) {
	cfg, err := g.loadNetworks()
	if err != nil {
		return nil, network.Config{}, err
	}
	r := resolver.New(cfg,
		resolver.WithConnector(resolver.GRPCConnector{
			DialTimeout:  g.dialTimeout,
			MaxMsgBytes:  g.maxMsgBytes,
			Interceptors: []grpc.UnaryClientInterceptor{observability.UnaryClientMetrics()},
		}),
		resolver.WithLogger(g.logger),
		resolver.WithObserver(observability.ResolverObserver{}),
		resolver.WithChecksumVerification(!g.noChecksum),
	)
	return r, cfg, nil
}
