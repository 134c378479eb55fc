package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/platform/logger"
	"github.com/lugatapp/lugat-api/internal/store"
)

// DailyWord is the highlighted entry of the day together with its related
// words, ready for the daily-word endpoint.
type DailyWord struct {
	Word    *domain.Word   `json:"word"`
	Related []*domain.Word `json:"related"`
}

// HighlightService serves the rotating daily word.
type HighlightService interface {
	// DailyWord returns the word highlighted for the current UTC day and its
	// related entries. Every learner sees the same word on the same day, and
	// the rotation walks the whole catalog before repeating (for catalogs of
	// up to a year's worth of entries). Returns ErrNoDailyWord when the
	// catalog is empty.
	DailyWord(ctx context.Context) (*DailyWord, error)
}

// highlightServiceImpl implements the HighlightService interface
type highlightServiceImpl struct {
	wordStore store.WordStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewHighlightService creates a new HighlightService.
// It returns an error if the word store is nil.
// A nil now function defaults to time.Now.
func NewHighlightService(
	wordStore store.WordStore,
	logger *slog.Logger,
	now func() time.Time,
) (HighlightService, error) {
	if wordStore == nil {
		return nil, fmt.Errorf("%w: wordStore cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}

	return &highlightServiceImpl{
		wordStore: wordStore,
		logger:    logger.With(slog.String("component", "highlight_service")),
		now:       now,
	}, nil
}

// DailyWord implements HighlightService.DailyWord
// The selection is a deterministic rotation: the UTC day of year indexes
// into the catalog in ascending ID order, so the pick is stable for the
// whole day without any stored state.
func (s *highlightServiceImpl) DailyWord(ctx context.Context) (*DailyWord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	words, err := s.wordStore.ListWords(ctx, store.WordFilter{})
	if err != nil {
		return nil, fmt.Errorf("daily word selection failed: %w", err)
	}
	if len(words) == 0 {
		return nil, ErrNoDailyWord
	}

	word := words[s.now().UTC().YearDay()%len(words)]

	related, err := s.wordStore.GetRelated(ctx, word.ID)
	if err != nil {
		return nil, fmt.Errorf("daily word related lookup failed: %w", err)
	}
	if related == nil {
		related = []*domain.Word{}
	}

	log.Debug("daily word selected",
		slog.Int64("word_id", word.ID),
		slog.String("turkish", word.Turkish))
	return &DailyWord{Word: word, Related: related}, nil
}
