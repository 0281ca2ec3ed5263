package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"xdao.co/didcheqd/driver"
	"xdao.co/didcheqd/internal/httpapi"
	"xdao.co/didcheqd/internal/observability"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	var (
		listen      string
		corsOrigins []string
		linked      bool
		canonical   bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve resolution over HTTP (GET /1.0/identifiers/{did})",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := g.logger
			if g.logLevel == "" {
				// A server always logs; info unless --log-level says otherwise.
				var err error
				if logger, err = observability.InitLogger("didcheqd", "info"); err != nil {
					return err
				}
			}
			r, cfg, err := g.newResolver()
			if err != nil {
				return err
			}
			defer r.Close()

			srv := httpapi.New(driver.New(r, driver.Options{LinkedResources: linked, Canonical: canonical}), httpapi.Config{
				CORSOrigins: corsOrigins,
				Logger:      logger,
				Networks:    cfg.Namespaces(),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, ctx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				logger.Info().Str("listen", listen).Strs("networks", cfg.Namespaces()).Msg("serving")
				return srv.Run(ctx, listen)
			})
			return eg.Wait()
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8080", "HTTP listen address")
	cmd.Flags().StringArrayVar(&corsOrigins, "cors-origin", nil, "allowed CORS origin (repeatable; default allows all)")
	cmd.Flags().BoolVar(&linked, "linked-resources", true, "include linkedResourceMetadata in document metadata")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "emit RFC 8785 canonical document JSON")
	return cmd
}
