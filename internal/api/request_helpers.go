package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lugatapp/lugat-api/internal/domain"
)

// getPathID extracts a positive int64 identifier from the URL path
// parameters, returning a validation error the caller can map to 400.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidID, paramName)
	}

	return id, nil
}
