package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/food-order-service/internal/app"
	"github.com/spec-kit/food-order-service/internal/config"
	"github.com/spec-kit/food-order-service/internal/observability"
	"github.com/spec-kit/food-order-service/internal/persistence"
	"github.com/spec-kit/food-order-service/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongo", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	if cfg.Mongo.RunMigrations {
		if err := persistence.RunMigrations(ctx, mongo, logger); err != nil {
			logger.Warn("migrations failed; continuing without indexes", zap.Error(err))
		}
	}

	var repos repository.Set
	if mongo.Enabled() {
		repos = repository.NewMongoSet(mongo.DB)
	} else {
		logger.Warn("using in-memory store; data is lost on restart")
		repos = repository.NewMemoryStore().Set()
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	application, err := app.Build(ctx, *cfg, app.Infra{Mongo: mongo, Redis: redis, Repos: repos}, logger)
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := application.Fiber.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := application.Fiber.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
