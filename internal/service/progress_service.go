package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/platform/logger"
	"github.com/lugatapp/lugat-api/internal/store"
)

// ProgressServiceError is a custom error type for progress service errors.
type ProgressServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ProgressServiceError.
func (e *ProgressServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("progress service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("progress service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProgressServiceError) Unwrap() error {
	return e.Err
}

// NewProgressServiceError creates a new ProgressServiceError.
func NewProgressServiceError(operation, message string, err error) *ProgressServiceError {
	return &ProgressServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// WordWithProgress pairs a word with a learner's progress on it. Progress is
// nil when the learner has never attempted the word.
type WordWithProgress struct {
	Word     *domain.Word     `json:"word"`
	Progress *domain.Progress `json:"progress,omitempty"`
}

// weekDays is the span of the activity window in LearnerStats.
const weekDays = 7

// LearnerStats aggregates one learner's standing across the whole catalog.
// WeekActivity covers the last seven UTC days, oldest first, ending today.
type LearnerStats struct {
	MasteredCount   int     `json:"mastered_count"`
	TotalEntryCount int     `json:"total_entry_count"`
	AccuracyPercent int     `json:"accuracy_percent"`
	DailyStreak     int     `json:"daily_streak"`
	WeekActivity    [7]bool `json:"week_activity"`
}

// ProgressService provides attempt recording and progress reporting.
type ProgressService interface {
	// RecordAttempt folds one attempt outcome into the learner's progress on
	// the word and stamps the learner's activity. Both the word and the
	// learner must exist. A zero at falls back to the service clock.
	RecordAttempt(ctx context.Context, learnerID, wordID int64, correct bool, at time.Time) (*domain.Progress, error)

	// GetProgress retrieves the progress record for the given key.
	GetProgress(ctx context.Context, learnerID, wordID int64) (*domain.Progress, error)

	// GetLearnerStats aggregates the learner's mastery, accuracy, streak, and
	// recent activity.
	GetLearnerStats(ctx context.Context, learnerID int64) (*LearnerStats, error)

	// ListWithProgress returns the whole catalog joined with the learner's
	// progress records, in ascending word ID order.
	ListWithProgress(ctx context.Context, learnerID int64) ([]WordWithProgress, error)
}

// progressServiceImpl implements the ProgressService interface
type progressServiceImpl struct {
	wordStore     store.WordStore
	learnerStore  store.LearnerStore
	progressStore store.ProgressStore
	logger        *slog.Logger
	now           func() time.Time
}

// NewProgressService creates a new ProgressService.
// It returns an error if any of the required dependencies are nil.
// A nil now function defaults to time.Now.
func NewProgressService(
	wordStore store.WordStore,
	learnerStore store.LearnerStore,
	progressStore store.ProgressStore,
	logger *slog.Logger,
	now func() time.Time,
) (ProgressService, error) {
	if wordStore == nil {
		return nil, fmt.Errorf("%w: wordStore cannot be nil", domain.ErrValidation)
	}
	if learnerStore == nil {
		return nil, fmt.Errorf("%w: learnerStore cannot be nil", domain.ErrValidation)
	}
	if progressStore == nil {
		return nil, fmt.Errorf("%w: progressStore cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}

	return &progressServiceImpl{
		wordStore:     wordStore,
		learnerStore:  learnerStore,
		progressStore: progressStore,
		logger:        logger.With(slog.String("component", "progress_service")),
		now:           now,
	}, nil
}

// RecordAttempt implements ProgressService.RecordAttempt
// The word and learner checks run up front so a memory backend without
// foreign keys still rejects dangling references before anything persists.
func (s *progressServiceImpl) RecordAttempt(ctx context.Context, learnerID, wordID int64, correct bool, at time.Time) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.wordStore.GetWord(ctx, wordID); err != nil {
		return nil, err
	}
	if _, err := s.learnerStore.GetLearner(ctx, learnerID); err != nil {
		return nil, err
	}

	if at.IsZero() {
		at = s.now()
	}
	at = at.UTC()
	progress, err := s.progressStore.RecordAttempt(ctx, learnerID, wordID, correct, at)
	if err != nil {
		log.Error("failed to record attempt",
			slog.String("error", err.Error()),
			slog.Int64("learner_id", learnerID),
			slog.Int64("word_id", wordID))
		return nil, err
	}

	// Activity stamping is best effort: the attempt itself already landed.
	if _, err := s.learnerStore.TouchActivity(ctx, learnerID, at); err != nil {
		log.Warn("failed to touch learner activity",
			slog.String("error", err.Error()),
			slog.Int64("learner_id", learnerID))
	}

	log.Debug("attempt recorded",
		slog.Int64("learner_id", learnerID),
		slog.Int64("word_id", wordID),
		slog.Bool("correct", correct),
		slog.Bool("is_mastered", progress.IsMastered))
	return progress, nil
}

// GetProgress implements ProgressService.GetProgress
func (s *progressServiceImpl) GetProgress(ctx context.Context, learnerID, wordID int64) (*domain.Progress, error) {
	return s.progressStore.GetProgress(ctx, learnerID, wordID)
}

// GetLearnerStats implements ProgressService.GetLearnerStats
func (s *progressServiceImpl) GetLearnerStats(ctx context.Context, learnerID int64) (*LearnerStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	learner, err := s.learnerStore.GetLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	words, err := s.wordStore.ListWords(ctx, store.WordFilter{})
	if err != nil {
		return nil, NewProgressServiceError("stats", "failed to list words", err)
	}

	records, err := s.progressStore.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, NewProgressServiceError("stats", "failed to list progress", err)
	}

	stats := &LearnerStats{
		TotalEntryCount: len(words),
		DailyStreak:     learner.DailyStreak,
	}

	var correct, attempts int
	for _, record := range records {
		if record.IsMastered {
			stats.MasteredCount++
		}
		correct += record.CorrectCount
		attempts += record.Attempts()
	}
	if attempts > 0 {
		stats.AccuracyPercent = int(math.Round(100 * float64(correct) / float64(attempts)))
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -(weekDays - 1))
	days, err := s.progressStore.ActiveDays(ctx, learnerID, windowStart)
	if err != nil {
		return nil, NewProgressServiceError("stats", "failed to list active days", err)
	}
	for _, day := range days {
		offset := int(day.Sub(windowStart).Hours() / 24)
		if offset >= 0 && offset < weekDays {
			stats.WeekActivity[offset] = true
		}
	}

	log.Debug("learner stats computed",
		slog.Int64("learner_id", learnerID),
		slog.Int("mastered_count", stats.MasteredCount),
		slog.Int("accuracy_percent", stats.AccuracyPercent))
	return stats, nil
}

// ListWithProgress implements ProgressService.ListWithProgress
func (s *progressServiceImpl) ListWithProgress(ctx context.Context, learnerID int64) ([]WordWithProgress, error) {
	if _, err := s.learnerStore.GetLearner(ctx, learnerID); err != nil {
		return nil, err
	}

	words, err := s.wordStore.ListWords(ctx, store.WordFilter{})
	if err != nil {
		return nil, NewProgressServiceError("list_with_progress", "failed to list words", err)
	}

	records, err := s.progressStore.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, NewProgressServiceError("list_with_progress", "failed to list progress", err)
	}

	byWord := make(map[int64]*domain.Progress, len(records))
	for _, record := range records {
		byWord[record.WordID] = record
	}

	out := make([]WordWithProgress, 0, len(words))
	for _, word := range words {
		out = append(out, WordWithProgress{
			Word:     word,
			Progress: byWord[word.ID],
		})
	}

	return out, nil
}
