package store

import (
	"context"
	"time"

	"github.com/lugatapp/lugat-api/internal/domain"
)

// ProgressStore defines the interface for progress record persistence.
type ProgressStore interface {
	// RecordAttempt folds one attempt outcome into the (learnerID, wordID)
	// progress record, creating the record if this is the first attempt.
	// Counters are strictly additive: the appropriate counter is incremented
	// by one, last-practiced is set to at, and mastery is recomputed per
	// domain.ComputeMastered.
	//
	// The read-modify-write MUST be atomic per key: two concurrent calls for
	// the same (learner, word) pair must never both observe the same prior
	// counters and each add independently. Implementations may use a store
	// lock, a row-level atomic upsert, or any equivalent strategy.
	//
	// The call also records at's UTC calendar day as a practice day for the
	// learner, feeding ActiveDays.
	//
	// Referential checks against words and learners are the caller's
	// responsibility; implementations backed by foreign keys may surface
	// ErrWordNotFound or ErrLearnerNotFound as a second line of defense.
	RecordAttempt(ctx context.Context, learnerID, wordID int64, correct bool, at time.Time) (*domain.Progress, error)

	// GetProgress retrieves the progress record for the given key.
	// Returns ErrProgressNotFound if the learner has never attempted the word.
	GetProgress(ctx context.Context, learnerID, wordID int64) (*domain.Progress, error)

	// ListByLearner returns all progress records for the learner, in
	// ascending word ID order. Learners with no attempts get an empty listing.
	ListByLearner(ctx context.Context, learnerID int64) ([]*domain.Progress, error)

	// ActiveDays returns the distinct UTC calendar days (midnight-truncated)
	// on or after since on which the learner recorded at least one attempt,
	// in ascending order.
	ActiveDays(ctx context.Context, learnerID int64, since time.Time) ([]time.Time, error)
}
