package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lugatapp/lugat-api/internal/api/shared"
	"github.com/lugatapp/lugat-api/internal/service"
)

// RecordAttemptRequest represents the request body for recording a practice
// attempt outcome. Timestamp is optional and defaults to the call time.
type RecordAttemptRequest struct {
	LearnerID int64      `json:"learner_id" validate:"required,gt=0"`
	WordID    int64      `json:"word_id"    validate:"required,gt=0"`
	Correct   *bool      `json:"correct"    validate:"required"`
	Timestamp *time.Time `json:"timestamp"`
}

// ProgressHandler handles progress, statistics, and suggestion HTTP requests.
type ProgressHandler struct {
	progressService   service.ProgressService
	suggestionService service.SuggestionService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(
	progressService service.ProgressService,
	suggestionService service.SuggestionService,
) *ProgressHandler {
	return &ProgressHandler{
		progressService:   progressService,
		suggestionService: suggestionService,
	}
}

// RecordAttempt handles POST /api/progress requests.
func (h *ProgressHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	var req RecordAttemptRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	var at time.Time
	if req.Timestamp != nil {
		at = *req.Timestamp
	}

	progress, err := h.progressService.RecordAttempt(r.Context(), req.LearnerID, req.WordID, *req.Correct, at)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// GetProgress handles GET /api/progress/{learnerID}/{wordID} requests.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	learnerID, err := getPathID(r, "learnerID")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}
	wordID, err := getPathID(r, "wordID")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	progress, err := h.progressService.GetProgress(r.Context(), learnerID, wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// GetLearnerStats handles GET /api/stats/{learnerID} requests.
func (h *ProgressHandler) GetLearnerStats(w http.ResponseWriter, r *http.Request) {
	learnerID, err := getPathID(r, "learnerID")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	stats, err := h.progressService.GetLearnerStats(r.Context(), learnerID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// ListWithProgress handles GET /api/words-with-progress/{learnerID} requests.
func (h *ProgressHandler) ListWithProgress(w http.ResponseWriter, r *http.Request) {
	learnerID, err := getPathID(r, "learnerID")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	listing, err := h.progressService.ListWithProgress(r.Context(), learnerID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if listing == nil {
		listing = []service.WordWithProgress{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, listing)
}

// SuggestWords handles GET /api/suggested-words/{learnerID} requests.
// The optional "count" parameter caps the selection and defaults to
// service.DefaultSuggestionCount; non-numeric or non-positive values are
// rejected.
func (h *ProgressHandler) SuggestWords(w http.ResponseWriter, r *http.Request) {
	learnerID, err := getPathID(r, "learnerID")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	count := service.DefaultSuggestionCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Count must be a positive number")
			return
		}
	}

	suggested, err := h.suggestionService.Suggest(r.Context(), learnerID, count)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if suggested == nil {
		suggested = []service.WordWithProgress{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, suggested)
}
