package main

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/config"
	"github.com/pageza/greenmeal/backend/internal/database"
	"github.com/pageza/greenmeal/backend/internal/logger"
	"github.com/pageza/greenmeal/backend/internal/service"
)

// Demo accounts for local development.
var testUsers = []string{
	"john.doe@example.com",
	"jane.smith@example.com",
	"bob.wilson@example.com",
	"alice.cooper@example.com",
}

func main() {
	password := pflag.StringP("password", "p", "testpassword123", "password for every seeded account")
	pflag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logr, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Environment: cfg.Environment.String()})
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

	auth := service.NewAuthService(db, cfg.JWTSecret, logr, nil)
	ctx := context.Background()

	created := 0
	for _, email := range testUsers {
		_, err := auth.Register(ctx, email, *password)
		switch {
		case errors.Is(err, service.ErrEmailExists):
			logr.Info("test user already exists", zap.String("email", email))
		case err != nil:
			logr.Fatal("failed to create test user", zap.String("email", email), zap.Error(err))
		default:
			created++
			logr.Info("created test user", zap.String("email", email))
		}
	}
	logr.Info("test users ready", zap.Int("created", created), zap.Int("total", len(testUsers)))
}
