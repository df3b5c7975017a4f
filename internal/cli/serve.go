package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordgraph/pkg/api"
	"github.com/matzehuels/wordgraph/pkg/buildinfo"
	"github.com/matzehuels/wordgraph/pkg/cache"
	"github.com/matzehuels/wordgraph/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the count, layout and render pipeline over HTTP",
		Long: `Serve the pipeline over HTTP.

  GET  /healthz
  POST /v1/count             text body → counts JSON
  POST /v1/layout            {"text"|"counts", "config"} → layout JSON
  POST /v1/render?format=svg text or layout JSON body → artifact

Layout and render flags set the defaults every request starts from. Cache
keys are scoped by build version, so a shared Redis cache never serves
layouts computed by another release.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.loadSettings()
			if err != nil {
				return err
			}
			opts, err := c.resolveOptions(cmd, bindLayoutFlags, bindRenderFlags)
			if err != nil {
				return err
			}
			if err := opts.ValidateForLayout(); err != nil {
				return fmt.Errorf("invalid defaults: %w", err)
			}
			if err := opts.ValidateForRender(); err != nil {
				return fmt.Errorf("invalid defaults: %w", err)
			}
			if !cmd.Flags().Changed("addr") {
				addr = settings.Addr()
			}
			if !cmd.Flags().Changed("max-body") && settings.Server.MaxBodyBytes > 0 {
				maxBody = settings.Server.MaxBodyBytes
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cache.NewScopedKeyer(nil, buildinfo.Version+":"))
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			logger := c.Logger.WithPrefix("http")
			srv := api.New(runner,
				api.WithLogger(logger),
				api.WithDefaults(opts),
				api.WithMaxBodyBytes(maxBody),
			).NewHTTPServer(addr)

			printInfo("Listening on %s", StyleValue.Render(addr))
			return serve(ctx, srv)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+config.DefaultAddr+")")
	cmd.Flags().Int64Var(&maxBody, "max-body", api.DefaultMaxBodyBytes, "request body limit in bytes")
	bindFlags(cmd, bindLayoutFlags, bindRenderFlags)

	return cmd
}

// serve runs srv until ctx is cancelled, then drains open requests.
func serve(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	printSuccess("Server stopped")
	return nil
}
