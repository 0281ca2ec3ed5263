// Command cheqd-devnode serves the cheqd DID and resource query services from
// a TOML fixture, standing in for a ledger node during local development.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"xdao.co/didcheqd/cheqdpb"
	"xdao.co/didcheqd/internal/ledger"
	"xdao.co/didcheqd/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil))
}

// run serves until ctx is done. ready, when non-nil, receives the bound
// address once the listener is up.
func run(ctx context.Context, args []string, out, errOut io.Writer, ready chan<- string) int {
	fs := flag.NewFlagSet("cheqd-devnode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	listen := fs.String("listen", "127.0.0.1:9090", "listen address")
	fixture := fs.String("fixture", "", "TOML ledger fixture (required)")
	logLevel := fs.String("log-level", "info", "log level")
	listDIDs := fs.Bool("list", false, "List the fixture's DIDs and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *fixture == "" {
		fmt.Fprintln(errOut, "error: --fixture is required")
		return 2
	}

	l, err := ledger.LoadFixture(*fixture)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}
	if *listDIDs {
		for _, d := range l.DIDs() {
			fmt.Fprintln(out, d)
		}
		return 0
	}

	logger, err := observability.InitLogger("cheqd-devnode", *logLevel)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	defer lis.Close()

	s := grpc.NewServer(
		cheqdpb.ServerOption(),
		grpc.ChainUnaryInterceptor(observability.UnaryServerLogger(logger)),
	)
	l.Register(s)

	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	logger.Info().Str("listen", lis.Addr().String()).Int("dids", len(l.DIDs())).Msg("cheqd-devnode listening")
	if ready != nil {
		ready <- lis.Addr().String()
	}
	if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}
