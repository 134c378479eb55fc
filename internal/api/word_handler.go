package api

import (
	"net/http"
	"strconv"

	"github.com/lugatapp/lugat-api/internal/api/shared"
	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/service"
	"github.com/lugatapp/lugat-api/internal/store"
)

// CreateWordRequest represents the request body for creating a word.
type CreateWordRequest struct {
	Ottoman        string `json:"ottoman"         validate:"required,min=1"`
	Turkish        string `json:"turkish"         validate:"required,min=1"`
	Meaning        string `json:"meaning"`
	ExampleOttoman string `json:"example_ottoman"`
	ExampleTurkish string `json:"example_turkish"`
	CategoryID     int64  `json:"category_id"     validate:"required,gt=0"`
	Difficulty     string `json:"difficulty"      validate:"required"`
	Etymology      string `json:"etymology"`
	AudioURL       string `json:"audio_url"`
}

// AddRelatedRequest represents the request body for linking two words.
type AddRelatedRequest struct {
	WordID        int64 `json:"word_id"         validate:"required,gt=0"`
	RelatedWordID int64 `json:"related_word_id" validate:"required,gt=0"`
}

// WordHandler handles word-related HTTP requests, including the daily
// highlighted word.
type WordHandler struct {
	wordStore        store.WordStore
	highlightService service.HighlightService
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(wordStore store.WordStore, highlightService service.HighlightService) *WordHandler {
	return &WordHandler{
		wordStore:        wordStore,
		highlightService: highlightService,
	}
}

// ListWords handles GET /api/words requests. The optional "category" and
// "query" parameters filter by category ID and by case-insensitive substring
// over the ottoman text, the turkish text, and the meaning.
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	var filter store.WordFilter

	if raw := r.URL.Query().Get("category"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || categoryID <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category parameter")
			return
		}
		filter.CategoryID = &categoryID
	}
	filter.TextQuery = r.URL.Query().Get("query")

	words, err := h.wordStore.ListWords(r.Context(), filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if words == nil {
		words = []*domain.Word{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, words)
}

// GetWord handles GET /api/words/{id} requests.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	word, err := h.wordStore.GetWord(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, word)
}

// CreateWord handles POST /api/words requests.
func (h *WordHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req CreateWordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	word := &domain.Word{
		Ottoman:        req.Ottoman,
		Turkish:        req.Turkish,
		Meaning:        req.Meaning,
		ExampleOttoman: req.ExampleOttoman,
		ExampleTurkish: req.ExampleTurkish,
		CategoryID:     req.CategoryID,
		Difficulty:     domain.Difficulty(req.Difficulty),
		Etymology:      req.Etymology,
		AudioURL:       req.AudioURL,
	}
	if err := h.wordStore.CreateWord(r.Context(), word); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, word)
}

// GetRelated handles GET /api/words/{id}/related requests.
func (h *WordHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	// A listing for an unknown word is empty, not an error; only the link
	// creation checks existence.
	related, err := h.wordStore.GetRelated(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if related == nil {
		related = []*domain.Word{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, related)
}

// AddRelated handles POST /api/words/related requests.
func (h *WordHandler) AddRelated(w http.ResponseWriter, r *http.Request) {
	var req AddRelatedRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.wordStore.AddRelated(r.Context(), req.WordID, req.RelatedWordID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, req)
}

// DailyWord handles GET /api/daily-word requests.
func (h *WordHandler) DailyWord(w http.ResponseWriter, r *http.Request) {
	daily, err := h.highlightService.DailyWord(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, daily)
}
