package domain

import (
	"errors"
	"time"
)

// Learner-specific validation errors
var (
	// ErrLearnerHandleEmpty is returned when a learner's handle is empty.
	ErrLearnerHandleEmpty = errors.New("learner handle cannot be empty")

	// ErrLearnerStreakNegative is returned when a daily streak would go below zero.
	ErrLearnerStreakNegative = errors.New("learner streak cannot be negative")
)

// Learner is a person working through the vocabulary. The hashed credential
// is opaque to the core and never serialized; authentication itself lives
// outside this service.
type Learner struct {
	ID               int64     `json:"id"`
	Handle           string    `json:"handle"`
	HashedCredential string    `json:"-"`
	DailyStreak      int       `json:"daily_streak"`
	LastActivity     time.Time `json:"last_activity"`
}

// Validate checks if the Learner has valid data.
func (l *Learner) Validate() error {
	if l.Handle == "" {
		return ErrLearnerHandleEmpty
	}

	if l.DailyStreak < 0 {
		return ErrLearnerStreakNegative
	}

	return nil
}
