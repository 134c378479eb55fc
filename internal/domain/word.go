package domain

import (
	"errors"
	"time"
)

// Word-specific validation errors
var (
	// ErrWordOttomanEmpty is returned when a word's Ottoman script text is empty.
	ErrWordOttomanEmpty = errors.New("word ottoman text cannot be empty")

	// ErrWordTurkishEmpty is returned when a word's modern Turkish text is empty.
	ErrWordTurkishEmpty = errors.New("word turkish text cannot be empty")

	// ErrWordCategoryEmpty is returned when a word has no category assigned.
	ErrWordCategoryEmpty = errors.New("word category ID cannot be empty")
)

// Difficulty is the tier assigned to a word.
type Difficulty string

// Known difficulty tiers.
const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// IsValid reports whether the difficulty is one of the known tiers.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// Word represents a single lexical entry pairing Ottoman Turkish script
// with its modern Turkish equivalent. Words are immutable after creation;
// the store assigns the ID and creation timestamp.
type Word struct {
	ID             int64      `json:"id"`
	Ottoman        string     `json:"ottoman"`
	Turkish        string     `json:"turkish"`
	Meaning        string     `json:"meaning,omitempty"`
	ExampleOttoman string     `json:"example_ottoman,omitempty"`
	ExampleTurkish string     `json:"example_turkish,omitempty"`
	CategoryID     int64      `json:"category_id"`
	Difficulty     Difficulty `json:"difficulty"`
	Etymology      string     `json:"etymology,omitempty"`
	AudioURL       string     `json:"audio_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Validate checks if the Word has valid data.
// Returns an error if any field fails validation.
func (w *Word) Validate() error {
	if w.Ottoman == "" {
		return ErrWordOttomanEmpty
	}

	if w.Turkish == "" {
		return ErrWordTurkishEmpty
	}

	if w.CategoryID == 0 {
		return ErrWordCategoryEmpty
	}

	if !w.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}

	return nil
}

// RelatedWord is a directed association between two words, used to decorate
// the daily highlighted word with semantically related entries. Duplicate
// links between the same pair are tolerated.
type RelatedWord struct {
	ID            int64 `json:"id"`
	WordID        int64 `json:"word_id"`
	RelatedWordID int64 `json:"related_word_id"`
}
