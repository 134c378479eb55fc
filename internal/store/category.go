package store

import (
	"context"

	"github.com/lugatapp/lugat-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// CreateCategory saves a new category, assigning its ID. The category is
	// validated first; validation failures are wrapped with ErrInvalidEntity.
	// Returns ErrCategoryNameExists if a category with the same name already
	// exists.
	CreateCategory(ctx context.Context, category *domain.Category) error

	// GetCategory retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)

	// ListCategories returns all categories in ascending ID order.
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
