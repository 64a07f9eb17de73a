package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/codehasanali/mywallet/internal/adapter/http/dto"
	"github.com/codehasanali/mywallet/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoActiveSession):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNegativeLimit),
		errors.Is(err, domain.ErrReservedCategory),
		errors.Is(err, domain.ErrEmptyCategory),
		errors.Is(err, domain.ErrEmptyUsername):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
