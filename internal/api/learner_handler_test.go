package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/platform/memory"
)

func TestLearnerHandler_CreateLearner(t *testing.T) {
	t.Run("creates_learner_without_leaking_credential", func(t *testing.T) {
		router := newTestRouter(t, memory.New(bcrypt.MinCost))

		rec := doRequest(t, router, http.MethodPost, "/api/learners", map[string]any{
			"handle":     "okuyucu",
			"credential": "parola123",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var learner domain.Learner
		decodeBody(t, rec, &learner)
		assert.NotZero(t, learner.ID)
		assert.Equal(t, "okuyucu", learner.Handle)

		assert.NotContains(t, rec.Body.String(), "parola123")
		assert.NotContains(t, rec.Body.String(), "hashed_credential")
	})

	t.Run("short_credential_rejected", func(t *testing.T) {
		router := newTestRouter(t, memory.New(bcrypt.MinCost))

		rec := doRequest(t, router, http.MethodPost, "/api/learners", map[string]any{
			"handle":     "okuyucu",
			"credential": "kisa",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate_handle_rejected", func(t *testing.T) {
		router := newTestRouter(t, memory.New(bcrypt.MinCost))

		body := map[string]any{"handle": "okuyucu", "credential": "parola123"}
		rec := doRequest(t, router, http.MethodPost, "/api/learners", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, router, http.MethodPost, "/api/learners", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLearnerHandler_GetLearner(t *testing.T) {
	s, _, learnerID := seedStore(t)
	router := newTestRouter(t, s)

	rec := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/learners/%d", learnerID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var learner domain.Learner
	decodeBody(t, rec, &learner)
	assert.Equal(t, learnerID, learner.ID)

	rec = doRequest(t, router, http.MethodGet, "/api/learners/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLearnerHandler_UpdateStreak(t *testing.T) {
	s, _, learnerID := seedStore(t)
	router := newTestRouter(t, s)

	t.Run("sets_streak", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPatch,
			fmt.Sprintf("/api/learners/%d/streak", learnerID),
			map[string]any{"streak": 7})
		require.Equal(t, http.StatusOK, rec.Code)

		var learner domain.Learner
		decodeBody(t, rec, &learner)
		assert.Equal(t, 7, learner.DailyStreak)
	})

	t.Run("zero_streak_allowed", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPatch,
			fmt.Sprintf("/api/learners/%d/streak", learnerID),
			map[string]any{"streak": 0})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("negative_streak_rejected", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPatch,
			fmt.Sprintf("/api/learners/%d/streak", learnerID),
			map[string]any{"streak": -1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing_streak_rejected", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPatch,
			fmt.Sprintf("/api/learners/%d/streak", learnerID),
			map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown_learner_not_found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPatch,
			"/api/learners/999/streak", map[string]any{"streak": 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLearnerHandler_TouchActivity(t *testing.T) {
	s, _, learnerID := seedStore(t)
	router := newTestRouter(t, s)

	rec := doRequest(t, router, http.MethodPatch,
		fmt.Sprintf("/api/learners/%d/activity", learnerID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var learner domain.Learner
	decodeBody(t, rec, &learner)
	assert.True(t, learner.LastActivity.Equal(testClock().UTC()))

	rec = doRequest(t, router, http.MethodPatch, "/api/learners/999/activity", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
