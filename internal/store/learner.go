package store

import (
	"context"
	"time"

	"github.com/lugatapp/lugat-api/internal/domain"
)

// LearnerStore defines the interface for learner data persistence.
// Credential hashing is the store's concern: callers hand over the plain
// credential exactly once, at creation, and never see it again.
type LearnerStore interface {
	// CreateLearner creates a learner with the given handle, hashing the
	// credential before it is persisted. Returns ErrHandleExists if the
	// handle is already taken; validation failures are wrapped with
	// ErrInvalidEntity.
	CreateLearner(ctx context.Context, handle, credential string) (*domain.Learner, error)

	// GetLearner retrieves a learner by ID.
	// Returns ErrLearnerNotFound if the learner does not exist.
	GetLearner(ctx context.Context, id int64) (*domain.Learner, error)

	// GetLearnerByHandle retrieves a learner by their unique handle.
	// Returns ErrLearnerNotFound if the learner does not exist.
	GetLearnerByHandle(ctx context.Context, handle string) (*domain.Learner, error)

	// UpdateStreak sets the learner's daily streak counter.
	// Returns ErrLearnerNotFound if the learner does not exist and
	// ErrInvalidEntity-wrapped validation errors for a negative streak.
	UpdateStreak(ctx context.Context, id int64, streak int) (*domain.Learner, error)

	// TouchActivity stamps the learner's last-activity time.
	// Returns ErrLearnerNotFound if the learner does not exist.
	TouchActivity(ctx context.Context, id int64, at time.Time) (*domain.Learner, error)
}
