package main

import (
	"context"

	"github.com/finadvisor/finadvisor/internal/advisor"
	"github.com/finadvisor/finadvisor/internal/budget"
	"github.com/finadvisor/finadvisor/internal/cache"
	"github.com/finadvisor/finadvisor/internal/calculation"
	"github.com/finadvisor/finadvisor/internal/config"
	"github.com/finadvisor/finadvisor/internal/logging"
	"github.com/finadvisor/finadvisor/internal/server"
	"github.com/finadvisor/finadvisor/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var banksFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators, budgets, uploads and advisor over HTTP",
		Long: `Serve the HTTP API. Configuration is read from the environment:
SERVER_*, LOG_*, REDIS_*, RATE_LIMIT_*, UPLOAD_*, OPENAI_* and AUTH_TOKENS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, banksFile)
		},
	}
	cmd.Flags().StringVar(&banksFile, "banks", "", "YAML bank directory replacing the built-in one")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, banksFile string) error {
	logger := logging.New(cfg.Logging)

	deps, cleanup, err := buildDependencies(cfg, banksFile, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	router := server.NewRouter(logger, deps)
	return server.New(logger, cfg.HTTP, router).Run(ctx)
}

// buildDependencies wires redis-backed stores when REDIS_ADDR is set and
// in-memory ones otherwise.
func buildDependencies(cfg config.Config, banksFile string, logger zerolog.Logger) (server.RouterDependencies, func(), error) {
	dir, err := loadDirectory(banksFile)
	if err != nil {
		return server.RouterDependencies{}, nil, err
	}

	uploads, err := storage.NewFileStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		return server.RouterDependencies{}, nil, err
	}

	engine := calculation.NewEngine()
	engine.SetLogger(logging.NewCalculationLogger(logger))

	var (
		budgetStore budget.Store = budget.NewMemoryStore()
		health      server.HealthService
		closers     []func() error
	)
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		redisCache := cache.NewRedisCache(client)
		engine.WithCache(redisCache, cfg.Redis.CacheTTL)
		budgetStore = budget.NewRedisStore(client)
		health = server.ProbeFunc(redisCache.Probe)
		closers = append(closers, client.Close)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis for results cache and budgets")
	} else {
		engine.WithCache(cache.NewMemoryCache(), cfg.Redis.CacheTTL)
		logger.Warn().Msg("REDIS_ADDR not set; budgets are kept in memory")
	}

	var limiter *server.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = server.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Burst)
		closers = append(closers, func() error { limiter.Stop(); return nil })
	}
	if len(cfg.Auth.Tokens) == 0 {
		logger.Warn().Msg("AUTH_TOKENS not set; owner routes will reject every request")
	}

	deps := server.RouterDependencies{
		Engine:         engine,
		Directory:      dir,
		Budgets:        budget.NewService(budgetStore),
		Uploads:        uploads,
		MaxUploadBytes: uploads.MaxBytes(),
		Advisor:        advisor.New(cfg.OpenAI, logger),
		Auth:           server.NewTokenAuthenticator(cfg.Auth.Tokens),
		Limiter:        limiter,
		Health:         health,
		AllowedOrigins: cfg.HTTP.AllowedOrigins(),
	}
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn().Err(err).Msg("closing dependency failed")
			}
		}
	}
	return deps, cleanup, nil
}
