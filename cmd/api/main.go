package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"skillup/api/internal/cache"
	"skillup/api/internal/config"
	"skillup/api/internal/database"
	"skillup/api/internal/handlers"
	"skillup/api/internal/kv"
	"skillup/api/internal/llm"
	"skillup/api/internal/log"
	"skillup/api/internal/server"
	"skillup/api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", string(cfg.Storage.Driver)).Msg("failed to open kv store")
	}

	var sink llm.RawSink
	if cfg.Quarantine.Endpoint != "" {
		quarantine, err := storage.NewQuarantine(cfg.Quarantine)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init quarantine store")
		}
		if err := quarantine.EnsureBucket(ctx); err != nil {
			logger.Warn().Err(err).Msg("ensure quarantine bucket failed")
		}
		sink = quarantine
	}

	if cfg.AI.APIKey == "" {
		logger.Warn().Msg("ai.apikey is not set; generation endpoints will fail")
	}
	completer := llm.NewGeminiClient(cfg.AI)

	handlerSet := handlers.NewHandlerSet(logger, cfg, store, completer, sink)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, closeStore)
}

// openStore returns the configured KV backend and a func releasing it.
func openStore(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) (kv.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Error().Err(err).Msg("redis close error")
			}
		}
		return kv.NewRedisStore(client, cfg.Redis.KeyPrefix), closeFn, nil

	case config.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return kv.NewPostgresStore(pool), pool.Close, nil

	case config.DriverMemory:
		logger.Warn().Msg("using in-memory kv store; data is lost on restart")
		return kv.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, closeStore func()) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	closeStore()

	logger.Info().Msg("server exited cleanly")
}
