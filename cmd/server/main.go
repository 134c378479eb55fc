// Package main implements the entry point for the Lugat API server, a
// vocabulary-learning backend that stores Ottoman Turkish lexical entries,
// tracks per-learner mastery, and serves spaced-repetition suggestions.
package main

import (
	"context"
	"log"

	"github.com/lugatapp/lugat-api/internal/config"
	"github.com/lugatapp/lugat-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"backend", backendName(cfg))

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize application", "error", err)
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("server exited with error", "error", err)
		log.Fatalf("Server exited with error: %v", err)
	}
}

// backendName reports which storage backend the configuration selects.
func backendName(cfg *config.Config) string {
	if cfg.Database.URL == "" {
		return "memory"
	}
	return "postgres"
}
