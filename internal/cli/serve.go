package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/posetrank/posetrank/internal/api"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the posetrank HTTP API.

The API exposes analyses as resources:

  POST /api/v1/analyses       run an analysis and store the result
  GET  /api/v1/analyses/{id}  retrieve a stored analysis
  GET  /healthz               liveness check

Analyses are kept in memory unless a MongoDB URI is configured, either via
--mongo-uri or the [mongo] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			var store api.Store
			if mongoURI == "" {
				mongoURI = c.Config.Mongo.URI
			}
			if mongoURI != "" {
				ms, err := api.NewMongoStore(ctx, mongoURI, c.Config.Mongo.Database)
				if err != nil {
					return fmt.Errorf("connect store: %w", err)
				}
				defer ms.Close(ctx)
				store = ms
				c.Logger.Info("using mongodb store", "database", c.Config.Mongo.Database)
			}

			srv := api.NewServer(runner, store, c.Logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for persistent analysis storage")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}
