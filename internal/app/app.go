package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/videoai/comprehension-api/internal/config"
	"github.com/videoai/comprehension-api/internal/content"
	"github.com/videoai/comprehension-api/internal/content/ai"
	"github.com/videoai/comprehension-api/internal/db/repository"
	"github.com/videoai/comprehension-api/internal/logging"
	"github.com/videoai/comprehension-api/internal/metrics"
	"github.com/videoai/comprehension-api/internal/server"
)

// Application aggregates shared infrastructure (DB, Redis, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool   *pgxpool.Pool
	redis  *redis.Client
	gemini *ai.GeminiClient
	http   *http.Server
}

// New bootstraps config, logger, Postgres, Redis, the Gemini client and
// the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	geminiClient, err := ai.NewGeminiClient(ctx, ai.GeminiConfig{
		APIKey:         cfg.Gemini.APIKey,
		Model:          cfg.Gemini.Model,
		RequestTimeout: cfg.Gemini.RequestTimeout,
	}, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}

	contentMetrics := metrics.NewContent(prometheus.DefaultRegisterer)
	generator := ai.NewGenerator(geminiClient, ai.Config{
		MinTranscriptChars: cfg.Generation.MinTranscriptChars,
	}, contentMetrics, logger)

	contentRepo := repository.NewContentRepository(pool)
	contentSvc := content.NewService(contentRepo, generator, contentMetrics, logger)

	handlers := server.NewHandlers(contentSvc, cfg.Generation, logger)
	limiter := server.NewRateLimiter(server.NewRedisCounter(redisClient), logger)
	apiServer := server.NewHTTPServer(cfg, logger, handlers, limiter)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		gemini: geminiClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}
	if err := a.gemini.Close(); err != nil {
		a.logger.Error().Err(err).Msg("gemini shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
