package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fanout/internal/server"
	"github.com/matzehuels/fanout/pkg/cache"
	"github.com/matzehuels/fanout/pkg/pipeline"
	"github.com/matzehuels/fanout/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

The server stores named graphs and runs counting queries against them. By
default graphs live in memory and query results in the local file cache;
configure MongoDB and Redis in the config file (~/.config/fanout/config.toml)
for persistent, shared deployments:

  [server]
  addr = ":8080"

  [redis]
  addr = "localhost:6379"

  [mongo]
  uri = "mongodb://localhost:27017"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path")

	return cmd
}

// runServe wires the configured backends and serves until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg Config) error {
	ctx = withLogger(ctx, c.Logger)

	qc, err := serveCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	st, err := serveStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = st.Close(closeCtx)
	}()

	runner := pipeline.NewRunner(qc, nil, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(st, runner, c.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger := loggerFromContext(ctx)
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	c.Logger.Info("serving", "addr", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return ctx.Err()
}

// serveCache picks the query cache backend: Redis when configured,
// otherwise the local file cache.
func serveCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	if cfg.Redis.Addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return newCache(false)
}

// serveStore picks the graph store backend: MongoDB when configured,
// otherwise in-memory.
func serveStore(ctx context.Context, cfg Config) (store.Store, error) {
	if cfg.Mongo.URI != "" {
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	}
	return store.NewMemoryStore(), nil
}
