package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drawspec/internal/server"
	"github.com/matzehuels/drawspec/pkg/cache"
	"github.com/matzehuels/drawspec/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  POST /v1/compile           compile a document, respond with scene JSON
  POST /v1/render/{format}   compile and render a document
  POST /v1/scenes            compile and store a scene
  GET  /v1/scenes/{id}       fetch a stored scene (?format= renders it)
  GET  /healthz              liveness and build info

The cache backend and MongoDB store come from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	ch, err := c.Config.OpenCache(ctx)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, c.Config.Server.KeyPrefix), logger)
	if ttl, err := c.Config.TTL(); err == nil {
		runner.TTL = ttl
	}
	defer runner.Close()

	st, err := c.Config.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close(context.WithoutCancel(ctx))

	srv := server.New(runner, st, logger, c.Config.PipelineOptions())
	storeKind := "memory"
	if c.Config.Store.MongoURI != "" {
		storeKind = "mongodb/" + c.Config.Store.Database
	}
	printInfo("Serving drawspec API")
	printKeyValue("Address", addr)
	printKeyValue("Cache", c.Config.Cache.Backend)
	printKeyValue("Store", storeKind)
	return srv.ListenAndServe(ctx, addr)
}
