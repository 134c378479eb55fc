package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lugatapp/lugat-api/internal/api"
	apiMiddleware "github.com/lugatapp/lugat-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	categoryHandler := api.NewCategoryHandler(app.categoryStore)
	wordHandler := api.NewWordHandler(app.wordStore, app.highlightService)
	learnerHandler := api.NewLearnerHandler(app.learnerStore, nil)
	progressHandler := api.NewProgressHandler(app.progressService, app.suggestionService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", categoryHandler.ListCategories)
		r.Post("/categories", categoryHandler.CreateCategory)

		r.Get("/words", wordHandler.ListWords)
		r.Post("/words", wordHandler.CreateWord)
		r.Post("/words/related", wordHandler.AddRelated)
		r.Get("/words/{id}", wordHandler.GetWord)
		r.Get("/words/{id}/related", wordHandler.GetRelated)
		r.Get("/daily-word", wordHandler.DailyWord)

		r.Post("/learners", learnerHandler.CreateLearner)
		r.Get("/learners/{id}", learnerHandler.GetLearner)
		r.Patch("/learners/{id}/streak", learnerHandler.UpdateStreak)
		r.Patch("/learners/{id}/activity", learnerHandler.TouchActivity)

		r.Post("/progress", progressHandler.RecordAttempt)
		r.Get("/progress/{learnerID}/{wordID}", progressHandler.GetProgress)
		r.Get("/stats/{learnerID}", progressHandler.GetLearnerStats)
		r.Get("/words-with-progress/{learnerID}", progressHandler.ListWithProgress)
		r.Get("/suggested-words/{learnerID}", progressHandler.SuggestWords)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
