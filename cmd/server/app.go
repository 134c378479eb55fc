package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lugatapp/lugat-api/internal/config"
	"github.com/lugatapp/lugat-api/internal/platform/memory"
	"github.com/lugatapp/lugat-api/internal/platform/postgres"
	"github.com/lugatapp/lugat-api/internal/seed"
	"github.com/lugatapp/lugat-api/internal/service"
	"github.com/lugatapp/lugat-api/internal/store"
)

// application holds the shared dependencies: configuration, logger, the
// store implementations, and the services built on top of them.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB // nil when the memory backend is selected

	categoryStore store.CategoryStore
	wordStore     store.WordStore
	learnerStore  store.LearnerStore
	progressStore store.ProgressStore

	progressService   service.ProgressService
	suggestionService service.SuggestionService
	highlightService  service.HighlightService
}

// newApplication wires the whole dependency graph. An empty database URL
// selects the in-memory backend; anything else connects to postgres and
// applies the embedded migrations. Both backends get the starter catalog
// through the idempotent seeder.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if cfg.Database.URL == "" {
		s := memory.New(0)
		app.categoryStore = s
		app.wordStore = s
		app.learnerStore = s
		app.progressStore = s
	} else {
		db, err := setupAppDatabase(cfg, logger)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
		app.wordStore = postgres.NewPostgresWordStore(db, logger)
		app.learnerStore = postgres.NewPostgresLearnerStore(db, logger, 0)
		app.progressStore = postgres.NewPostgresProgressStore(db, logger)
	}

	if err := seed.Seed(ctx, seed.Stores{
		Categories: app.categoryStore,
		Words:      app.wordStore,
		Learners:   app.learnerStore,
	}, logger); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to seed starter data: %w", err)
	}

	var err error
	app.progressService, err = service.NewProgressService(
		app.wordStore, app.learnerStore, app.progressStore, logger, nil)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create progress service: %w", err)
	}

	app.suggestionService, err = service.NewSuggestionService(
		app.wordStore, app.learnerStore, app.progressStore, logger, nil, nil)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create suggestion service: %w", err)
	}

	app.highlightService, err = service.NewHighlightService(app.wordStore, logger, nil)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create highlight service: %w", err)
	}

	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases held resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
