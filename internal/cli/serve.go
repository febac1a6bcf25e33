package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckwerk/deckplan/internal/server"
	"github.com/deckwerk/deckplan/pkg/cache"
	"github.com/deckwerk/deckplan/pkg/pipeline"
	"github.com/deckwerk/deckplan/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the deckplan HTTP API",
		Long: `Run the deckplan HTTP API.

The server exposes the planning pipeline (POST /api/v1/plan) and a room
catalog (/api/v1/rooms) for storing outlines and their latest plans.

By default plans are cached on the local filesystem and rooms live in
memory. Point --redis at a Redis instance to share the plan cache
between instances, and --mongo at a MongoDB deployment to persist the
room catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the shared plan cache (host:port)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for room persistence")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI string, noCache bool) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	planCache, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	st, err := c.serveStore(ctx, mongoURI)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	runner := pipeline.NewRunner(planCache, nil, logger)
	defer runner.Close()
	prog.done("Backends ready")

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, st, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache selects the cache backend for the server: Redis when
// configured, the local file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		loggerFromContext(ctx).Info("using redis cache", "addr", redisAddr)
		return rc, nil
	}
	return newCache(false)
}

// serveStore selects the room store: MongoDB when configured, in-memory
// otherwise.
func (c *CLI) serveStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		loggerFromContext(ctx).Warn("no --mongo given, rooms are stored in memory only")
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Info("using mongodb store")
	return st, nil
}
