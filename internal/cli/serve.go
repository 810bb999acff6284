package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/execreport/pkg/pipeline"
	"github.com/matzehuels/execreport/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

  GET  /healthz
  POST /api/v1/reports/executive
  POST /api/v1/reports/filename
  GET  /api/v1/exports

The server uses the configured cache and archive backends and stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := pipeline.Open(ctx, cfg, c.Logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	scfg := server.ConfigFrom(cfg.Server)
	if addr != "" {
		scfg.Addr = addr
	}
	c.Logger.Info("starting server",
		"addr", scfg.Addr,
		"cache", cfg.Cache.Backend,
		"archive", cfg.Archive.Backend)

	srv := server.New(runner, pipeline.OptionsFromConfig(cfg), scfg, c.Logger)
	if err := srv.Run(ctx); err != nil {
		return err
	}
	c.Logger.Info("server stopped")
	return ctx.Err()
}
