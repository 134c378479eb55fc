package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrInvalidSuggestionCount indicates a non-positive suggestion count.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidSuggestionCount = errors.New("suggestion count must be positive")

	// ErrNoDailyWord indicates the catalog is empty so no daily word can be
	// highlighted. API layer should map this to HTTP 404 Not Found.
	ErrNoDailyWord = errors.New("no words available for daily highlight")
)
