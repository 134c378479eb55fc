package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/store"
)

// progressKey is the composite key for progress records. A typed struct key
// avoids the collision risk of string-concatenated keys.
type progressKey struct {
	LearnerID int64
	WordID    int64
}

// activityKey identifies one learner's practice activity on one UTC day.
type activityKey struct {
	LearnerID int64
	Day       time.Time
}

// Store is an in-memory implementation of all store interfaces. A single
// mutex guards the maps; every critical section is a handful of map
// operations, so writers never hold it across anything slow. In particular
// the attempt read-modify-write runs entirely under the write lock, which
// makes concurrent attempts on the same (learner, word) key serialize
// instead of losing updates.
type Store struct {
	mu sync.RWMutex

	categories map[int64]*domain.Category
	words      map[int64]*domain.Word
	learners   map[int64]*domain.Learner
	progress   map[progressKey]*domain.Progress
	related    []domain.RelatedWord
	activity   map[activityKey]struct{}

	nextCategoryID int64
	nextWordID     int64
	nextLearnerID  int64
	nextRelatedID  int64

	bcryptCost int
}

// New creates an empty in-memory store. bcryptCost controls credential
// hashing; pass 0 for the bcrypt default (tests use bcrypt.MinCost).
func New(bcryptCost int) *Store {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Store{
		categories: make(map[int64]*domain.Category),
		words:      make(map[int64]*domain.Word),
		learners:   make(map[int64]*domain.Learner),
		progress:   make(map[progressKey]*domain.Progress),
		activity:   make(map[activityKey]struct{}),
		bcryptCost: bcryptCost,
	}
}

// Interface conformance checks.
var (
	_ store.WordStore     = (*Store)(nil)
	_ store.CategoryStore = (*Store)(nil)
	_ store.LearnerStore  = (*Store)(nil)
	_ store.ProgressStore = (*Store)(nil)
)

// --- CategoryStore ---

// CreateCategory implements store.CategoryStore.CreateCategory.
func (s *Store) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == category.Name {
			return store.ErrCategoryNameExists
		}
	}

	s.nextCategoryID++
	category.ID = s.nextCategoryID
	s.categories[category.ID] = cloneCategory(category)
	return nil
}

// GetCategory implements store.CategoryStore.GetCategory.
func (s *Store) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	return cloneCategory(category), nil
}

// ListCategories implements store.CategoryStore.ListCategories.
func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Category, 0, len(s.categories))
	for _, category := range s.categories {
		out = append(out, cloneCategory(category))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- WordStore ---

// CreateWord implements store.WordStore.CreateWord.
func (s *Store) CreateWord(ctx context.Context, word *domain.Word) error {
	if err := word.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Referential integrity: the category must resolve. A bad reference is
	// the caller's input problem, so it surfaces as an invalid entity.
	if _, ok := s.categories[word.CategoryID]; !ok {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, store.ErrCategoryNotFound)
	}

	s.nextWordID++
	word.ID = s.nextWordID
	word.CreatedAt = time.Now().UTC()
	s.words[word.ID] = cloneWord(word)
	return nil
}

// GetWord implements store.WordStore.GetWord.
func (s *Store) GetWord(ctx context.Context, id int64) (*domain.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	word, ok := s.words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	return cloneWord(word), nil
}

// ListWords implements store.WordStore.ListWords.
func (s *Store) ListWords(ctx context.Context, filter store.WordFilter) ([]*domain.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(filter.TextQuery)

	out := make([]*domain.Word, 0, len(s.words))
	for _, word := range s.words {
		if filter.CategoryID != nil && word.CategoryID != *filter.CategoryID {
			continue
		}
		if query != "" && !wordMatches(word, query) {
			continue
		}
		out = append(out, cloneWord(word))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// wordMatches reports whether any text field contains the lowercased query.
func wordMatches(word *domain.Word, query string) bool {
	return strings.Contains(strings.ToLower(word.Ottoman), query) ||
		strings.Contains(strings.ToLower(word.Turkish), query) ||
		(word.Meaning != "" && strings.Contains(strings.ToLower(word.Meaning), query))
}

// AddRelated implements store.WordStore.AddRelated.
func (s *Store) AddRelated(ctx context.Context, wordID, relatedWordID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[wordID]; !ok {
		return store.ErrWordNotFound
	}
	if _, ok := s.words[relatedWordID]; !ok {
		return store.ErrWordNotFound
	}

	s.nextRelatedID++
	s.related = append(s.related, domain.RelatedWord{
		ID:            s.nextRelatedID,
		WordID:        wordID,
		RelatedWordID: relatedWordID,
	})
	return nil
}

// GetRelated implements store.WordStore.GetRelated.
func (s *Store) GetRelated(ctx context.Context, wordID int64) ([]*domain.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Word
	for _, rel := range s.related {
		if rel.WordID != wordID {
			continue
		}
		if word, ok := s.words[rel.RelatedWordID]; ok {
			out = append(out, cloneWord(word))
		}
	}
	return out, nil
}

// --- LearnerStore ---

// CreateLearner implements store.LearnerStore.CreateLearner.
func (s *Store) CreateLearner(ctx context.Context, handle, credential string) (*domain.Learner, error) {
	learner := &domain.Learner{
		Handle:       handle,
		LastActivity: time.Now().UTC(),
	}
	if err := learner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), s.bcryptCost)
	if err != nil {
		return nil, store.NewStoreError("learner", "create", "failed to hash credential", err)
	}
	learner.HashedCredential = string(hashed)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.learners {
		if existing.Handle == handle {
			return nil, store.ErrHandleExists
		}
	}

	s.nextLearnerID++
	learner.ID = s.nextLearnerID
	s.learners[learner.ID] = cloneLearner(learner)
	return learner, nil
}

// GetLearner implements store.LearnerStore.GetLearner.
func (s *Store) GetLearner(ctx context.Context, id int64) (*domain.Learner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	learner, ok := s.learners[id]
	if !ok {
		return nil, store.ErrLearnerNotFound
	}
	return cloneLearner(learner), nil
}

// GetLearnerByHandle implements store.LearnerStore.GetLearnerByHandle.
func (s *Store) GetLearnerByHandle(ctx context.Context, handle string) (*domain.Learner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, learner := range s.learners {
		if learner.Handle == handle {
			return cloneLearner(learner), nil
		}
	}
	return nil, store.ErrLearnerNotFound
}

// UpdateStreak implements store.LearnerStore.UpdateStreak.
func (s *Store) UpdateStreak(ctx context.Context, id int64, streak int) (*domain.Learner, error) {
	if streak < 0 {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrLearnerStreakNegative)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	learner, ok := s.learners[id]
	if !ok {
		return nil, store.ErrLearnerNotFound
	}
	learner.DailyStreak = streak
	return cloneLearner(learner), nil
}

// TouchActivity implements store.LearnerStore.TouchActivity.
func (s *Store) TouchActivity(ctx context.Context, id int64, at time.Time) (*domain.Learner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	learner, ok := s.learners[id]
	if !ok {
		return nil, store.ErrLearnerNotFound
	}
	learner.LastActivity = at.UTC()
	return cloneLearner(learner), nil
}

// --- ProgressStore ---

// RecordAttempt implements store.ProgressStore.RecordAttempt.
// The whole read-modify-write runs under the write lock, so concurrent
// attempts on one key serialize and counters never lose an increment.
func (s *Store) RecordAttempt(ctx context.Context, learnerID, wordID int64, correct bool, at time.Time) (*domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[wordID]; !ok {
		return nil, store.ErrWordNotFound
	}
	if _, ok := s.learners[learnerID]; !ok {
		return nil, store.ErrLearnerNotFound
	}

	key := progressKey{LearnerID: learnerID, WordID: wordID}
	record, ok := s.progress[key]
	if !ok {
		record = domain.NewProgress(learnerID, wordID)
		s.progress[key] = record
	}
	record.Apply(correct, at)

	day := at.UTC().Truncate(24 * time.Hour)
	s.activity[activityKey{LearnerID: learnerID, Day: day}] = struct{}{}

	return cloneProgress(record), nil
}

// GetProgress implements store.ProgressStore.GetProgress.
func (s *Store) GetProgress(ctx context.Context, learnerID, wordID int64) (*domain.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.progress[progressKey{LearnerID: learnerID, WordID: wordID}]
	if !ok {
		return nil, store.ErrProgressNotFound
	}
	return cloneProgress(record), nil
}

// ListByLearner implements store.ProgressStore.ListByLearner.
func (s *Store) ListByLearner(ctx context.Context, learnerID int64) ([]*domain.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Progress
	for key, record := range s.progress {
		if key.LearnerID == learnerID {
			out = append(out, cloneProgress(record))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WordID < out[j].WordID })
	return out, nil
}

// ActiveDays implements store.ProgressStore.ActiveDays.
func (s *Store) ActiveDays(ctx context.Context, learnerID int64, since time.Time) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := since.UTC().Truncate(24 * time.Hour)

	var out []time.Time
	for key := range s.activity {
		if key.LearnerID == learnerID && !key.Day.Before(cutoff) {
			out = append(out, key.Day)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

// --- clone helpers ---
// Returned entities are copies so callers can't mutate store state behind
// the lock's back.

func cloneCategory(c *domain.Category) *domain.Category {
	out := *c
	return &out
}

func cloneWord(w *domain.Word) *domain.Word {
	out := *w
	return &out
}

func cloneLearner(l *domain.Learner) *domain.Learner {
	out := *l
	return &out
}

func cloneProgress(p *domain.Progress) *domain.Progress {
	out := *p
	if p.LastPracticedAt != nil {
		practiced := *p.LastPracticedAt
		out.LastPracticedAt = &practiced
	}
	return &out
}
