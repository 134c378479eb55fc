package store

import (
	"context"

	"github.com/lugatapp/lugat-api/internal/domain"
)

// WordFilter narrows a word listing. Both fields are optional; a nil
// CategoryID means all categories, an empty TextQuery means no text match.
type WordFilter struct {
	// CategoryID restricts the listing to one category.
	CategoryID *int64

	// TextQuery is matched case-insensitively as a substring against the
	// Ottoman text, the Turkish text, and the meaning (when present); a word
	// qualifies if any field matches.
	TextQuery string
}

// WordStore defines the interface for word data persistence.
type WordStore interface {
	// CreateWord saves a new word, assigning its ID and creation timestamp.
	// The word is validated first; validation failures are wrapped with
	// ErrInvalidEntity. Returns ErrCategoryNotFound (wrapped with
	// ErrInvalidEntity, since the caller supplied the bad reference) if the
	// word's category does not resolve. Either the word is fully created or
	// nothing is persisted.
	CreateWord(ctx context.Context, word *domain.Word) error

	// GetWord retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetWord(ctx context.Context, id int64) (*domain.Word, error)

	// ListWords returns the full set of words matching the filter, in
	// ascending ID order. No pagination: catalog sizes are bounded by one
	// language's vocabulary.
	ListWords(ctx context.Context, filter WordFilter) ([]*domain.Word, error)

	// AddRelated records a directed relation between two existing words.
	// Duplicate relations between the same pair are allowed. Returns
	// ErrWordNotFound if either word does not resolve.
	AddRelated(ctx context.Context, wordID, relatedWordID int64) error

	// GetRelated returns the words the given word points at. The listing is
	// empty when the word has no relations; a dangling relation target is
	// skipped rather than reported.
	GetRelated(ctx context.Context, wordID int64) ([]*domain.Word, error)
}
