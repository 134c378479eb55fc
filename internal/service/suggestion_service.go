package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/domain/suggest"
	"github.com/lugatapp/lugat-api/internal/platform/logger"
	"github.com/lugatapp/lugat-api/internal/store"
)

// DefaultSuggestionCount is used when the caller does not specify how many
// suggestions to fetch.
const DefaultSuggestionCount = 5

// SuggestionServiceError is a custom error type for suggestion service errors.
type SuggestionServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for SuggestionServiceError.
func (e *SuggestionServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("suggestion service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("suggestion service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SuggestionServiceError) Unwrap() error {
	return e.Err
}

// NewSuggestionServiceError creates a new SuggestionServiceError.
func NewSuggestionServiceError(operation, message string, err error) *SuggestionServiceError {
	return &SuggestionServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// SuggestionService selects the next words for a learner to practice.
type SuggestionService interface {
	// Suggest returns up to count words for the learner to practice next,
	// joined with the learner's progress on each. Returns
	// ErrInvalidSuggestionCount when count is not positive. The learner must
	// exist; an empty catalog yields an empty selection.
	Suggest(ctx context.Context, learnerID int64, count int) ([]WordWithProgress, error)
}

// suggestionServiceImpl implements the SuggestionService interface
type suggestionServiceImpl struct {
	wordStore     store.WordStore
	learnerStore  store.LearnerStore
	progressStore store.ProgressStore
	logger        *slog.Logger
	now           func() time.Time

	// rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSuggestionService creates a new SuggestionService.
// It returns an error if any of the required dependencies are nil.
// A nil rng defaults to a time-seeded source; tests pass a fixed seed for
// reproducible selections. A nil now function defaults to time.Now.
func NewSuggestionService(
	wordStore store.WordStore,
	learnerStore store.LearnerStore,
	progressStore store.ProgressStore,
	logger *slog.Logger,
	now func() time.Time,
	rng *rand.Rand,
) (SuggestionService, error) {
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
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &suggestionServiceImpl{
		wordStore:     wordStore,
		learnerStore:  learnerStore,
		progressStore: progressStore,
		logger:        logger.With(slog.String("component", "suggestion_service")),
		now:           now,
		rng:           rng,
	}, nil
}

// Suggest implements SuggestionService.Suggest
func (s *suggestionServiceImpl) Suggest(ctx context.Context, learnerID int64, count int) ([]WordWithProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if count <= 0 {
		return nil, ErrInvalidSuggestionCount
	}

	if _, err := s.learnerStore.GetLearner(ctx, learnerID); err != nil {
		return nil, err
	}

	words, err := s.wordStore.ListWords(ctx, store.WordFilter{})
	if err != nil {
		return nil, NewSuggestionServiceError("suggest", "failed to list words", err)
	}
	if len(words) == 0 {
		return []WordWithProgress{}, nil
	}

	records, err := s.progressStore.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, NewSuggestionServiceError("suggest", "failed to list progress", err)
	}

	byWord := make(map[int64]*domain.Progress, len(records))
	for _, record := range records {
		byWord[record.WordID] = record
	}

	catalog := make([]suggest.Candidate, 0, len(words))
	for _, word := range words {
		catalog = append(catalog, suggest.Candidate{
			Word:     word,
			Progress: byWord[word.ID],
		})
	}

	s.mu.Lock()
	picked := suggest.Pick(catalog, count, s.now().UTC(), s.rng)
	s.mu.Unlock()

	out := make([]WordWithProgress, 0, len(picked))
	for _, candidate := range picked {
		out = append(out, WordWithProgress{
			Word:     candidate.Word,
			Progress: candidate.Progress,
		})
	}

	log.Debug("suggestions selected",
		slog.Int64("learner_id", learnerID),
		slog.Int("requested", count),
		slog.Int("selected", len(out)))
	return out, nil
}
