package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/service"
	"github.com/lugatapp/lugat-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrNoDailyWord):
		return http.StatusNotFound

	// Bad request errors. Duplicates of unique values are a validation
	// failure of the submitted entity, not a conflict.
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, service.ErrInvalidSuggestionCount):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"

	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"

	case errors.Is(err, store.ErrLearnerNotFound):
		return "Learner not found"

	case errors.Is(err, store.ErrProgressNotFound):
		return "Progress not found"

	case errors.Is(err, service.ErrNoDailyWord):
		return "No words available"

	// Duplicate errors
	case errors.Is(err, store.ErrCategoryNameExists):
		return "Category name already exists"

	case errors.Is(err, store.ErrHandleExists):
		return "Handle already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Entity already exists"

	// Bad request errors
	case errors.Is(err, service.ErrInvalidSuggestionCount):
		return "Count must be a positive number"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, store.ErrUpdateFailed):
		return "Update failed"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Validator errors look like:
	// "Key: 'CreateWordRequest.Ottoman' Error:Field validation for 'Ottoman' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return "Validation failed for field '" + field + "' (" + tag + ")"
				}
				return "Validation failed for field '" + field + "'"
			}
		}
	}

	return "Validation error"
}
