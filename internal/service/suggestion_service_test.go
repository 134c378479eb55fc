package service_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lugatapp/lugat-api/internal/platform/memory"
	"github.com/lugatapp/lugat-api/internal/service"
	"github.com/lugatapp/lugat-api/internal/store"
)

func newSuggestionService(t *testing.T, s *memory.Store, now func() time.Time, seed int64) service.SuggestionService {
	t.Helper()
	svc, err := service.NewSuggestionService(s, s, s, nil, now, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return svc
}

func TestSuggestionService_Suggest(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("non_positive_count_rejected", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		_, learnerID := seedCatalog(t, s, 1)
		svc := newSuggestionService(t, s, fixedClock(now), 1)

		_, err := svc.Suggest(ctx, learnerID, 0)
		assert.ErrorIs(t, err, service.ErrInvalidSuggestionCount)

		_, err = svc.Suggest(ctx, learnerID, -3)
		assert.ErrorIs(t, err, service.ErrInvalidSuggestionCount)
	})

	t.Run("unknown_learner_rejected", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		seedCatalog(t, s, 1)
		svc := newSuggestionService(t, s, fixedClock(now), 1)

		_, err := svc.Suggest(ctx, 999, 5)
		assert.ErrorIs(t, err, store.ErrLearnerNotFound)
	})

	t.Run("empty_catalog_yields_empty", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		learner, err := s.CreateLearner(ctx, "demo", "parola123")
		require.NoError(t, err)
		svc := newSuggestionService(t, s, fixedClock(now), 1)

		suggested, err := svc.Suggest(ctx, learner.ID, 5)
		require.NoError(t, err)
		assert.Empty(t, suggested)
	})

	t.Run("bounded_by_catalog_and_count", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		_, learnerID := seedCatalog(t, s, 3)
		svc := newSuggestionService(t, s, fixedClock(now), 1)

		suggested, err := svc.Suggest(ctx, learnerID, 5)
		require.NoError(t, err)
		assert.Len(t, suggested, 3)

		suggested, err = svc.Suggest(ctx, learnerID, 2)
		require.NoError(t, err)
		assert.Len(t, suggested, 2)
	})

	t.Run("no_duplicates_across_seeds", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		_, learnerID := seedCatalog(t, s, 6)

		for seed := int64(0); seed < 10; seed++ {
			svc := newSuggestionService(t, s, fixedClock(now), seed)
			suggested, err := svc.Suggest(ctx, learnerID, 4)
			require.NoError(t, err)

			seen := make(map[int64]bool)
			for _, entry := range suggested {
				assert.False(t, seen[entry.Word.ID], "word %d suggested twice", entry.Word.ID)
				seen[entry.Word.ID] = true
			}
		}
	})

	t.Run("unseen_words_win_seats_under_scarcity", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		wordIDs, learnerID := seedCatalog(t, s, 6)

		// Master words 4-6 with recent practice so they fall out of every
		// priority pool; words 1-3 stay unseen.
		for _, wordID := range wordIDs[3:] {
			for i := 0; i < 5; i++ {
				_, err := s.RecordAttempt(ctx, learnerID, wordID, true, now.Add(-time.Hour))
				require.NoError(t, err)
			}
		}

		for seed := int64(0); seed < 10; seed++ {
			svc := newSuggestionService(t, s, fixedClock(now), seed)
			suggested, err := svc.Suggest(ctx, learnerID, 3)
			require.NoError(t, err)
			require.Len(t, suggested, 3)

			for _, entry := range suggested {
				assert.Nil(t, entry.Progress, "expected only unseen words, got word %d", entry.Word.ID)
			}
		}
	})

	t.Run("mastered_words_backfill_when_pools_are_empty", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		wordIDs, learnerID := seedCatalog(t, s, 3)

		for _, wordID := range wordIDs {
			for i := 0; i < 5; i++ {
				_, err := s.RecordAttempt(ctx, learnerID, wordID, true, now.Add(-time.Hour))
				require.NoError(t, err)
			}
		}

		svc := newSuggestionService(t, s, fixedClock(now), 1)
		suggested, err := svc.Suggest(ctx, learnerID, 5)
		require.NoError(t, err)
		assert.Len(t, suggested, 3)
	})

	t.Run("stale_mastered_words_become_due_again", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		wordIDs, learnerID := seedCatalog(t, s, 2)

		// Word 1 mastered eight days ago, word 2 mastered an hour ago.
		for i := 0; i < 5; i++ {
			_, err := s.RecordAttempt(ctx, learnerID, wordIDs[0], true, now.AddDate(0, 0, -8))
			require.NoError(t, err)
		}
		for i := 0; i < 5; i++ {
			_, err := s.RecordAttempt(ctx, learnerID, wordIDs[1], true, now.Add(-time.Hour))
			require.NoError(t, err)
		}

		for seed := int64(0); seed < 10; seed++ {
			svc := newSuggestionService(t, s, fixedClock(now), seed)
			suggested, err := svc.Suggest(ctx, learnerID, 1)
			require.NoError(t, err)
			require.Len(t, suggested, 1)
			assert.Equal(t, wordIDs[0], suggested[0].Word.ID)
		}
	})
}
