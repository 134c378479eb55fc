// Package suggest implements the candidate selection algorithm for the
// practice feed. It is a pure package: callers supply the catalog snapshot,
// the clock, and the randomness source, and get back an ordered selection.
package suggest

import (
	"math/rand"
	"time"

	"github.com/lugatapp/lugat-api/internal/domain"
)

// ReviewAfter is how long a mastered word rests before it becomes due for
// review again.
const ReviewAfter = 7 * 24 * time.Hour

// Candidate pairs a word with the learner's progress on it. A nil Progress
// means the learner has never attempted the word.
type Candidate struct {
	Word     *domain.Word     `json:"word"`
	Progress *domain.Progress `json:"progress,omitempty"`
}

// Pick selects up to count candidates to practice next.
//
// Membership in the selection is priority-weighted across three pools:
// unseen words first, then in-progress words, then mastered words whose
// last practice is older than ReviewAfter. If those pools together fall
// short of count, the remainder is drawn uniformly at random (without
// replacement) from the rest of the catalog. The combined pool is then
// shuffled in full, so the final presentation order is uniform; only who
// gets a seat is prioritized. The result is truncated to count.
//
// An empty catalog yields an empty selection. count must be positive;
// validating it is the caller's job.
func Pick(catalog []Candidate, count int, now time.Time, rng *rand.Rand) []Candidate {
	if len(catalog) == 0 || count <= 0 {
		return nil
	}

	pool := make([]Candidate, 0, len(catalog))
	var rest []Candidate

	for _, c := range catalog {
		if inPriorityPool(c, now) {
			pool = append(pool, c)
		} else {
			rest = append(rest, c)
		}
	}

	// Backfill from the rest of the catalog until count is reached or the
	// catalog is exhausted.
	if len(pool) < count && len(rest) > 0 {
		rng.Shuffle(len(rest), func(i, j int) {
			rest[i], rest[j] = rest[j], rest[i]
		})

		need := count - len(pool)
		if need > len(rest) {
			need = len(rest)
		}
		pool = append(pool, rest[:need]...)
	}

	// Full shuffle deliberately discards the pool ordering: priority decides
	// membership, not position.
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if len(pool) > count {
		pool = pool[:count]
	}

	return pool
}

// inPriorityPool reports whether the candidate belongs to one of the three
// priority pools: unseen, in-progress, or due-for-review.
func inPriorityPool(c Candidate, now time.Time) bool {
	if c.Progress == nil {
		return true
	}

	if !c.Progress.IsMastered {
		return true
	}

	if c.Progress.LastPracticedAt != nil &&
		now.Sub(*c.Progress.LastPracticedAt) > ReviewAfter {
		return true
	}

	return false
}
