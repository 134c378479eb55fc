package suggest

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lugatapp/lugat-api/internal/domain"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func makeWord(id int64) *domain.Word {
	return &domain.Word{
		ID:         id,
		Ottoman:    "كتاب",
		Turkish:    "kitap",
		CategoryID: 1,
		Difficulty: domain.DifficultyBasic,
	}
}

// unseen has no progress; inProgress has attempts but no mastery; masteredAt
// is mastered with the given last-practice time.
func unseen(id int64) Candidate {
	return Candidate{Word: makeWord(id)}
}

func inProgress(id int64, at time.Time) Candidate {
	return Candidate{
		Word: makeWord(id),
		Progress: &domain.Progress{
			LearnerID:       1,
			WordID:          id,
			CorrectCount:    1,
			IncorrectCount:  1,
			LastPracticedAt: &at,
		},
	}
}

func masteredAt(id int64, at time.Time) Candidate {
	return Candidate{
		Word: makeWord(id),
		Progress: &domain.Progress{
			LearnerID:       1,
			WordID:          id,
			CorrectCount:    8,
			IncorrectCount:  1,
			LastPracticedAt: &at,
			IsMastered:      true,
		},
	}
}

func ids(cs []Candidate) map[int64]bool {
	out := make(map[int64]bool, len(cs))
	for _, c := range cs {
		out[c.Word.ID] = true
	}
	return out
}

func TestPickEmptyCatalog(t *testing.T) {
	t.Parallel()

	got := Pick(nil, 5, time.Now(), newRNG())
	if len(got) != 0 {
		t.Errorf("Expected empty selection for empty catalog, got %d entries", len(got))
	}
}

func TestPickBound(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	catalog := []Candidate{unseen(1), unseen(2), unseen(3)}

	testCases := []struct {
		name     string
		count    int
		expected int
	}{
		{"count below catalog size", 2, 2},
		{"count equals catalog size", 3, 3},
		{"count above catalog size", 10, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Pick(catalog, tc.count, now, newRNG())
			if len(got) != tc.expected {
				t.Errorf("Expected %d entries, got %d", tc.expected, len(got))
			}
		})
	}
}

func TestPickNoDuplicates(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	recent := now.Add(-time.Hour)
	stale := now.Add(-8 * 24 * time.Hour)

	catalog := []Candidate{
		unseen(1), unseen(2),
		inProgress(3, recent), inProgress(4, recent),
		masteredAt(5, stale), masteredAt(6, recent), masteredAt(7, recent),
	}

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		got := Pick(catalog, 7, now, rng)

		seen := make(map[int64]bool)
		for _, c := range got {
			if seen[c.Word.ID] {
				t.Fatalf("seed %d: duplicate word %d in selection", seed, c.Word.ID)
			}
			seen[c.Word.ID] = true
		}
	}
}

func TestPickPriorityUnderScarcity(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	recent := now.Add(-time.Hour)

	// Three unseen words next to a block of mastered, recently reviewed ones.
	// With count equal to the unseen pool size no backfill may occur, so the
	// selection must be exactly the unseen words.
	catalog := []Candidate{
		masteredAt(10, recent), masteredAt(11, recent), masteredAt(12, recent),
		unseen(1), unseen(2), unseen(3),
	}

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		got := Pick(catalog, 3, now, rng)

		if len(got) != 3 {
			t.Fatalf("seed %d: expected 3 entries, got %d", seed, len(got))
		}

		selected := ids(got)
		for _, want := range []int64{1, 2, 3} {
			if !selected[want] {
				t.Errorf("seed %d: expected unseen word %d in selection, got %v", seed, want, selected)
			}
		}
	}
}

func TestPickBackfillsWhenPoolsEmpty(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	recent := now.Add(-time.Hour)

	// Everything mastered and reviewed within the rest window: all three
	// pools are empty, so suggestions come entirely from backfill.
	catalog := []Candidate{
		masteredAt(1, recent), masteredAt(2, recent), masteredAt(3, recent),
	}

	got := Pick(catalog, 2, now, newRNG())
	if len(got) != 2 {
		t.Errorf("Expected backfill to produce 2 entries, got %d", len(got))
	}
}

func TestPickDueForReviewIsPrioritized(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	recent := now.Add(-time.Hour)
	stale := now.Add(-ReviewAfter - time.Hour)

	// One due-for-review word among recently reviewed ones: with count 1 the
	// due word must always win over the backfill remainder.
	catalog := []Candidate{
		masteredAt(1, recent),
		masteredAt(2, stale),
		masteredAt(3, recent),
	}

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		got := Pick(catalog, 1, now, rng)

		if len(got) != 1 {
			t.Fatalf("seed %d: expected 1 entry, got %d", seed, len(got))
		}
		if got[0].Word.ID != 2 {
			t.Errorf("seed %d: expected due-for-review word 2, got %d", seed, got[0].Word.ID)
		}
	}
}

func TestPickExactlyAtBoundaryIsNotDue(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	atBoundary := now.Add(-ReviewAfter)

	// A word practiced exactly ReviewAfter ago is not yet due: the contract
	// requires strictly more than seven days.
	c := masteredAt(1, atBoundary)
	if inPriorityPool(c, now) {
		t.Error("Expected word practiced exactly 7 days ago not to be due")
	}

	c = masteredAt(1, atBoundary.Add(-time.Second))
	if !inPriorityPool(c, now) {
		t.Error("Expected word practiced just over 7 days ago to be due")
	}
}
