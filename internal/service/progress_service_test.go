package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/platform/memory"
	"github.com/lugatapp/lugat-api/internal/service"
	"github.com/lugatapp/lugat-api/internal/store"
)

// fixedClock returns a clock stuck at the given instant.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// seedCatalog creates a category, the given number of words, and a learner,
// returning the word IDs and the learner ID.
func seedCatalog(t *testing.T, s *memory.Store, wordCount int) ([]int64, int64) {
	t.Helper()
	ctx := context.Background()

	category := &domain.Category{Name: "temel", Level: domain.LevelBasic}
	require.NoError(t, s.CreateCategory(ctx, category))

	wordIDs := make([]int64, 0, wordCount)
	samples := []struct{ ottoman, turkish string }{
		{"كتاب", "kitap"},
		{"سو", "su"},
		{"آتش", "ateş"},
		{"يول", "yol"},
		{"گجه", "gece"},
		{"گون", "gün"},
	}
	for i := 0; i < wordCount; i++ {
		sample := samples[i%len(samples)]
		word := &domain.Word{
			Ottoman:    sample.ottoman,
			Turkish:    sample.turkish,
			CategoryID: category.ID,
			Difficulty: domain.DifficultyBasic,
		}
		require.NoError(t, s.CreateWord(ctx, word))
		wordIDs = append(wordIDs, word.ID)
	}

	learner, err := s.CreateLearner(ctx, "demo", "parola123")
	require.NoError(t, err)

	return wordIDs, learner.ID
}

func newProgressService(t *testing.T, s *memory.Store, now func() time.Time) service.ProgressService {
	t.Helper()
	svc, err := service.NewProgressService(s, s, s, nil, now)
	require.NoError(t, err)
	return svc
}

func TestNewProgressService_NilDependencies(t *testing.T) {
	s := memory.New(bcrypt.MinCost)

	_, err := service.NewProgressService(nil, s, s, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.NewProgressService(s, nil, s, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.NewProgressService(s, s, nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProgressService_RecordAttempt(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("unknown_word_rejected", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		_, learnerID := seedCatalog(t, s, 1)
		svc := newProgressService(t, s, fixedClock(now))

		_, err := svc.RecordAttempt(ctx, learnerID, 999, true, time.Time{})
		assert.ErrorIs(t, err, store.ErrWordNotFound)
	})

	t.Run("unknown_learner_rejected", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		wordIDs, _ := seedCatalog(t, s, 1)
		svc := newProgressService(t, s, fixedClock(now))

		_, err := svc.RecordAttempt(ctx, 999, wordIDs[0], true, time.Time{})
		assert.ErrorIs(t, err, store.ErrLearnerNotFound)
	})

	t.Run("accumulates_and_touches_activity", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		wordIDs, learnerID := seedCatalog(t, s, 1)
		svc := newProgressService(t, s, fixedClock(now))

		progress, err := svc.RecordAttempt(ctx, learnerID, wordIDs[0], true, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, 1, progress.CorrectCount)
		assert.Equal(t, 0, progress.IncorrectCount)
		assert.False(t, progress.IsMastered)
		require.NotNil(t, progress.LastPracticedAt)
		assert.Equal(t, now, *progress.LastPracticedAt)

		progress, err = svc.RecordAttempt(ctx, learnerID, wordIDs[0], false, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, 1, progress.CorrectCount)
		assert.Equal(t, 1, progress.IncorrectCount)

		learner, err := s.GetLearner(ctx, learnerID)
		require.NoError(t, err)
		assert.Equal(t, now, learner.LastActivity)
	})

	t.Run("explicit_timestamp_used", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		wordIDs, learnerID := seedCatalog(t, s, 1)
		svc := newProgressService(t, s, fixedClock(now))

		at := time.Date(2024, 3, 8, 9, 30, 0, 0, time.FixedZone("TRT", 3*60*60))
		progress, err := svc.RecordAttempt(ctx, learnerID, wordIDs[0], true, at)
		require.NoError(t, err)
		require.NotNil(t, progress.LastPracticedAt)
		assert.Equal(t, at.UTC(), *progress.LastPracticedAt)

		learner, err := s.GetLearner(ctx, learnerID)
		require.NoError(t, err)
		assert.Equal(t, at.UTC(), learner.LastActivity)
	})

	t.Run("mastery_reached_at_threshold", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		wordIDs, learnerID := seedCatalog(t, s, 1)
		svc := newProgressService(t, s, fixedClock(now))

		// 4 correct and 1 incorrect: 5 attempts at exactly 80%.
		var progress *domain.Progress
		var err error
		for i := 0; i < 4; i++ {
			progress, err = svc.RecordAttempt(ctx, learnerID, wordIDs[0], true, time.Time{})
			require.NoError(t, err)
			assert.False(t, progress.IsMastered)
		}
		progress, err = svc.RecordAttempt(ctx, learnerID, wordIDs[0], false, time.Time{})
		require.NoError(t, err)
		assert.True(t, progress.IsMastered)
	})
}

func TestProgressService_GetProgress(t *testing.T) {
	ctx := context.Background()
	s := memory.New(bcrypt.MinCost)
	wordIDs, learnerID := seedCatalog(t, s, 1)
	svc := newProgressService(t, s, nil)

	_, err := svc.GetProgress(ctx, learnerID, wordIDs[0])
	assert.ErrorIs(t, err, store.ErrProgressNotFound)

	_, err = svc.RecordAttempt(ctx, learnerID, wordIDs[0], true, time.Time{})
	require.NoError(t, err)

	progress, err := svc.GetProgress(ctx, learnerID, wordIDs[0])
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CorrectCount)
}

func TestProgressService_GetLearnerStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("unknown_learner_rejected", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		svc := newProgressService(t, s, fixedClock(now))

		_, err := svc.GetLearnerStats(ctx, 999)
		assert.ErrorIs(t, err, store.ErrLearnerNotFound)
	})

	t.Run("fresh_learner_has_zeroes", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		_, learnerID := seedCatalog(t, s, 3)
		svc := newProgressService(t, s, fixedClock(now))

		stats, err := svc.GetLearnerStats(ctx, learnerID)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.MasteredCount)
		assert.Equal(t, 3, stats.TotalEntryCount)
		assert.Equal(t, 0, stats.AccuracyPercent)
		assert.Equal(t, [7]bool{}, stats.WeekActivity)
	})

	t.Run("aggregates_counters_and_accuracy", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		wordIDs, learnerID := seedCatalog(t, s, 2)
		svc := newProgressService(t, s, fixedClock(now))

		// Word 1: 4 correct, 1 incorrect -> mastered, 80% on its own.
		for i := 0; i < 4; i++ {
			_, err := svc.RecordAttempt(ctx, learnerID, wordIDs[0], true, time.Time{})
			require.NoError(t, err)
		}
		_, err := svc.RecordAttempt(ctx, learnerID, wordIDs[0], false, time.Time{})
		require.NoError(t, err)

		// Word 2: 1 correct, 4 incorrect -> not mastered.
		_, err = svc.RecordAttempt(ctx, learnerID, wordIDs[1], true, time.Time{})
		require.NoError(t, err)
		for i := 0; i < 4; i++ {
			_, err = svc.RecordAttempt(ctx, learnerID, wordIDs[1], false, time.Time{})
			require.NoError(t, err)
		}

		stats, err := svc.GetLearnerStats(ctx, learnerID)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.MasteredCount)
		assert.Equal(t, 2, stats.TotalEntryCount)
		// 5 correct out of 10 attempts across the catalog.
		assert.Equal(t, 50, stats.AccuracyPercent)
	})

	t.Run("week_activity_window", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		wordIDs, learnerID := seedCatalog(t, s, 1)

		// Practice today, two days ago, and eight days ago. Only the first
		// two fall inside the seven-day window.
		for _, offset := range []int{0, -2, -8} {
			at := now.AddDate(0, 0, offset)
			_, err := s.RecordAttempt(ctx, learnerID, wordIDs[0], true, at)
			require.NoError(t, err)
		}

		svc := newProgressService(t, s, fixedClock(now))
		stats, err := svc.GetLearnerStats(ctx, learnerID)
		require.NoError(t, err)

		// Oldest first: index 6 is today, index 4 is two days ago.
		expected := [7]bool{}
		expected[6] = true
		expected[4] = true
		assert.Equal(t, expected, stats.WeekActivity)
	})

	t.Run("streak_comes_from_learner", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		_, learnerID := seedCatalog(t, s, 1)
		_, err := s.UpdateStreak(ctx, learnerID, 12)
		require.NoError(t, err)

		svc := newProgressService(t, s, fixedClock(now))
		stats, err := svc.GetLearnerStats(ctx, learnerID)
		require.NoError(t, err)
		assert.Equal(t, 12, stats.DailyStreak)
	})
}

func TestProgressService_ListWithProgress(t *testing.T) {
	ctx := context.Background()
	s := memory.New(bcrypt.MinCost)
	wordIDs, learnerID := seedCatalog(t, s, 3)
	svc := newProgressService(t, s, nil)

	_, err := svc.RecordAttempt(ctx, learnerID, wordIDs[1], true, time.Time{})
	require.NoError(t, err)

	listing, err := svc.ListWithProgress(ctx, learnerID)
	require.NoError(t, err)
	require.Len(t, listing, 3)

	assert.Nil(t, listing[0].Progress)
	require.NotNil(t, listing[1].Progress)
	assert.Equal(t, 1, listing[1].Progress.CorrectCount)
	assert.Nil(t, listing[2].Progress)

	// Catalog order is ascending word ID.
	for i, entry := range listing {
		assert.Equal(t, wordIDs[i], entry.Word.ID)
	}

	_, err = svc.ListWithProgress(ctx, 999)
	assert.ErrorIs(t, err, store.ErrLearnerNotFound)
}

// TestProgressService_SingleEntryScenario walks one word from first sight to
// mastery: the suggestion feed returns it, five attempts with four correct
// master it, and the stats reflect 80% accuracy.
func TestProgressService_SingleEntryScenario(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	s := memory.New(bcrypt.MinCost)
	wordIDs, learnerID := seedCatalog(t, s, 1)

	progressSvc := newProgressService(t, s, fixedClock(now))
	suggestionSvc, err := service.NewSuggestionService(s, s, s, nil, fixedClock(now), nil)
	require.NoError(t, err)

	suggested, err := suggestionSvc.Suggest(ctx, learnerID, 5)
	require.NoError(t, err)
	require.Len(t, suggested, 1)
	assert.Equal(t, wordIDs[0], suggested[0].Word.ID)

	outcomes := []bool{true, true, false, true, true}
	var progress *domain.Progress
	for _, correct := range outcomes {
		progress, err = progressSvc.RecordAttempt(ctx, learnerID, wordIDs[0], correct, time.Time{})
		require.NoError(t, err)
	}
	assert.True(t, progress.IsMastered)

	stats, err := progressSvc.GetLearnerStats(ctx, learnerID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MasteredCount)
	assert.Equal(t, 80, stats.AccuracyPercent)
}
