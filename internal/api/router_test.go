package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lugatapp/lugat-api/internal/api"
	"github.com/lugatapp/lugat-api/internal/api/middleware"
	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/platform/memory"
	"github.com/lugatapp/lugat-api/internal/service"
)

// testClock is the fixed instant all handler tests run at.
var testClock = func() time.Time {
	return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
}

// newTestRouter wires the full route table over a memory store, mirroring
// the production router.
func newTestRouter(t *testing.T, s *memory.Store) http.Handler {
	t.Helper()

	progressService, err := service.NewProgressService(s, s, s, nil, testClock)
	require.NoError(t, err)
	suggestionService, err := service.NewSuggestionService(
		s, s, s, nil, testClock, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	highlightService, err := service.NewHighlightService(s, nil, testClock)
	require.NoError(t, err)

	categoryHandler := api.NewCategoryHandler(s)
	wordHandler := api.NewWordHandler(s, highlightService)
	learnerHandler := api.NewLearnerHandler(s, testClock)
	progressHandler := api.NewProgressHandler(progressService, suggestionService)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
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

	return r
}

// doRequest performs a request against the router and returns the recorder.
func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorder body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// seedStore builds a memory store with one category, the given words, and a
// learner, returning the store, word IDs, and learner ID.
func seedStore(t *testing.T, turkishWords ...string) (*memory.Store, []int64, int64) {
	t.Helper()
	ctx := context.Background()

	s := memory.New(bcrypt.MinCost)

	category := &domain.Category{Name: "temel", Level: domain.LevelBasic}
	require.NoError(t, s.CreateCategory(ctx, category))

	wordIDs := make([]int64, 0, len(turkishWords))
	for _, turkish := range turkishWords {
		word := &domain.Word{
			Ottoman:    "عثمانلي " + turkish,
			Turkish:    turkish,
			CategoryID: category.ID,
			Difficulty: domain.DifficultyBasic,
		}
		require.NoError(t, s.CreateWord(ctx, word))
		wordIDs = append(wordIDs, word.ID)
	}

	learner, err := s.CreateLearner(ctx, "demo", "parola123")
	require.NoError(t, err)

	return s, wordIDs, learner.ID
}
