package api

import (
	"net/http"
	"time"

	"github.com/lugatapp/lugat-api/internal/api/shared"
	"github.com/lugatapp/lugat-api/internal/store"
)

// CreateLearnerRequest represents the request body for registering a learner.
type CreateLearnerRequest struct {
	Handle     string `json:"handle"     validate:"required,min=3,max=64"`
	Credential string `json:"credential" validate:"required,min=8,max=72"`
}

// UpdateStreakRequest represents the request body for setting a learner's
// daily streak.
type UpdateStreakRequest struct {
	Streak *int `json:"streak" validate:"required,gte=0"`
}

// LearnerHandler handles learner-related HTTP requests.
type LearnerHandler struct {
	learnerStore store.LearnerStore
	now          func() time.Time
}

// NewLearnerHandler creates a new LearnerHandler.
// A nil now function defaults to time.Now.
func NewLearnerHandler(learnerStore store.LearnerStore, now func() time.Time) *LearnerHandler {
	if now == nil {
		now = time.Now
	}
	return &LearnerHandler{
		learnerStore: learnerStore,
		now:          now,
	}
}

// CreateLearner handles POST /api/learners requests.
// The credential never appears in the response; the store hashes it and the
// Learner type refuses to serialize the hash.
func (h *LearnerHandler) CreateLearner(w http.ResponseWriter, r *http.Request) {
	var req CreateLearnerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	learner, err := h.learnerStore.CreateLearner(r.Context(), req.Handle, req.Credential)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, learner)
}

// GetLearner handles GET /api/learners/{id} requests.
func (h *LearnerHandler) GetLearner(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	learner, err := h.learnerStore.GetLearner(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, learner)
}

// UpdateStreak handles PATCH /api/learners/{id}/streak requests.
func (h *LearnerHandler) UpdateStreak(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	var req UpdateStreakRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	learner, err := h.learnerStore.UpdateStreak(r.Context(), id, *req.Streak)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, learner)
}

// TouchActivity handles PATCH /api/learners/{id}/activity requests.
// The server clock decides the activity time; the request carries no body.
func (h *LearnerHandler) TouchActivity(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	learner, err := h.learnerStore.TouchActivity(r.Context(), id, h.now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, learner)
}
