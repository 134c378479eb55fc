// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidDifficulty is returned when a word difficulty is not one of
	// the known tiers.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidLevel is returned when a category level is not one of the
	// known level tags.
	ErrInvalidLevel = errors.New("invalid level")
)
