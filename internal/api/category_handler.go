package api

import (
	"net/http"

	"github.com/lugatapp/lugat-api/internal/api/shared"
	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/store"
)

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=1"`
	Description string `json:"description"`
	Level       string `json:"level"       validate:"required"`
}

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	categoryStore store.CategoryStore
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryStore store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{
		categoryStore: categoryStore,
	}
}

// ListCategories handles GET /api/categories requests.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryStore.ListCategories(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}

// CreateCategory handles POST /api/categories requests.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		Level:       domain.Level(req.Level),
	}
	if err := h.categoryStore.CreateCategory(r.Context(), category); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}
