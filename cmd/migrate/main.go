package main

import (
	"log"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/config"
	"github.com/pageza/greenmeal/backend/internal/database"
	"github.com/pageza/greenmeal/backend/internal/logger"
)

func main() {
	// Parse command line flags
	dir := pflag.String("dir", "", "directory of .sql files to apply after the schema migration")
	sqlOnly := pflag.Bool("sql-only", false, "skip the model migration and only apply .sql files")
	pflag.Parse()

	if *sqlOnly && *dir == "" {
		log.Fatal("--sql-only requires --dir")
	}

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

	if !*sqlOnly {
		if err := database.Migrate(db, logr); err != nil {
			logr.Fatal("schema migration failed", zap.Error(err))
		}
		logr.Info("schema is up to date")
	}

	if *dir != "" {
		if _, err := os.Stat(*dir); err != nil {
			logr.Fatal("migrations directory not found", zap.String("dir", *dir), zap.Error(err))
		}
		if err := database.ApplySQLDir(db, *dir, logr); err != nil {
			logr.Fatal("sql migrations failed", zap.Error(err))
		}
		logr.Info("all migrations applied", zap.String("dir", *dir))
	}
}
