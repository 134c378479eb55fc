package domain

import "errors"

// Category-specific validation errors
var (
	// ErrCategoryNameEmpty is returned when a category's name is empty.
	ErrCategoryNameEmpty = errors.New("category name cannot be empty")
)

// Level is the tag describing which band of the curriculum a category
// belongs to.
type Level string

// Known category levels.
const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelIdioms       Level = "idioms"
	LevelDaily        Level = "daily"
)

// IsValid reports whether the level is one of the known tags.
func (l Level) IsValid() bool {
	switch l {
	case LevelBasic, LevelIntermediate, LevelAdvanced, LevelIdioms, LevelDaily:
		return true
	default:
		return false
	}
}

// Category groups words under a named, leveled heading. Category names are
// unique across the catalog.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Level       Level  `json:"level"`
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if !c.Level.IsValid() {
		return ErrInvalidLevel
	}

	return nil
}
