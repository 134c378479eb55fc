package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/platform/logger"
	"github.com/lugatapp/lugat-api/internal/store"
)

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the CategoryStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// CreateCategory implements store.CategoryStore.CreateCategory
// It saves a new category, letting the database assign the identifier.
// Returns store.ErrCategoryNameExists when the unique name constraint fires.
func (s *PostgresCategoryStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO categories (name, description, level)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		category.Name,
		category.Description,
		category.Level,
	).Scan(&category.ID)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate category name",
				slog.String("name", category.Name))
			return store.ErrCategoryNameExists
		}

		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.String("name", category.Name))
		return store.NewStoreError("category", "create", "insert failed", err)
	}

	log.Debug("category created",
		slog.Int64("category_id", category.ID),
		slog.String("name", category.Name))
	return nil
}

// GetCategory implements store.CategoryStore.GetCategory
// Returns store.ErrCategoryNotFound if the category does not exist.
func (s *PostgresCategoryStore) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), level
		FROM categories
		WHERE id = $1
	`

	var category domain.Category
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Level,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, store.NewStoreError("category", "get", "query failed", err)
	}

	return &category, nil
}

// ListCategories implements store.CategoryStore.ListCategories
func (s *PostgresCategoryStore) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), level
		FROM categories
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, store.NewStoreError("category", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.Level,
		); err != nil {
			return nil, store.NewStoreError("category", "list", "scan failed", err)
		}
		out = append(out, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("category", "list", "iteration failed", err)
	}

	return out, nil
}
