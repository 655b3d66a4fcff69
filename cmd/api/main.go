package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/config"
	"github.com/pageza/greenmeal/backend/internal/database"
	"github.com/pageza/greenmeal/backend/internal/logger"
	"github.com/pageza/greenmeal/backend/internal/metrics"
	"github.com/pageza/greenmeal/backend/internal/server"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Environment: cfg.Environment.String(),
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	db, err := database.New(cfg, logr)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, logr); err != nil {
		logr.Fatal("failed to migrate database", zap.Error(err))
	}

	deps := server.Dependencies{
		DB:      db,
		Metrics: metrics.New(),
		Log:     logr,
	}

	if cfg.RedisEnabled() {
		rdb, err := database.NewRedisClient(cfg, logr)
		if err != nil {
			logr.Warn("redis unavailable, falling back to in-memory state", zap.Error(err))
		} else {
			deps.Redis = rdb
		}
	}

	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		logr.Warn("meal plan export disabled", zap.Error(err))
	} else if s3cfg != nil {
		deps.Storage = s3cfg
	}

	// Create and start server
	srv, err := server.New(cfg, deps)
	if err != nil {
		logr.Fatal("failed to create server", zap.Error(err))
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		logr.Info("starting server", zap.String("addr", cfg.Addr()))
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logr.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logr.Info("received signal", zap.String("signal", sig.String()))
	}

	logr.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Fatal("server shutdown error", zap.Error(err))
	}
	logr.Info("server stopped")
}
