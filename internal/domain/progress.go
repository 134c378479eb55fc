package domain

import "time"

// Mastery thresholds. A word counts as mastered once the learner has made
// at least MasteryMinAttempts attempts on it with an accuracy of at least
// MasteryMinRatio.
const (
	MasteryMinAttempts = 5
	MasteryMinRatio    = 0.8
)

// Progress tracks one learner's cumulative performance on one word. There
// is exactly one record per (learner, word) pair; counters only ever grow.
// IsMastered is derived from the counters and recomputed on every attempt,
// never set by callers.
type Progress struct {
	LearnerID       int64      `json:"learner_id"`
	WordID          int64      `json:"word_id"`
	CorrectCount    int        `json:"correct_count"`
	IncorrectCount  int        `json:"incorrect_count"`
	LastPracticedAt *time.Time `json:"last_practiced_at,omitempty"`
	IsMastered      bool       `json:"is_mastered"`
}

// NewProgress creates a zeroed progress record for the given key.
func NewProgress(learnerID, wordID int64) *Progress {
	return &Progress{
		LearnerID: learnerID,
		WordID:    wordID,
	}
}

// Attempts returns the total number of recorded attempts.
func (p *Progress) Attempts() int {
	return p.CorrectCount + p.IncorrectCount
}

// Apply folds a single attempt outcome into the record: it increments the
// matching counter, stamps the practice time, and recomputes mastery.
func (p *Progress) Apply(correct bool, at time.Time) {
	if correct {
		p.CorrectCount++
	} else {
		p.IncorrectCount++
	}

	practiced := at.UTC()
	p.LastPracticedAt = &practiced
	p.IsMastered = ComputeMastered(p.CorrectCount, p.IncorrectCount)
}

// ComputeMastered reports whether the given counters satisfy the mastery
// thresholds. Kept as a standalone function so store implementations that
// recompute mastery in SQL have a single source of truth to mirror.
func ComputeMastered(correct, incorrect int) bool {
	total := correct + incorrect
	if total < MasteryMinAttempts {
		return false
	}
	return float64(correct)/float64(total) >= MasteryMinRatio
}
