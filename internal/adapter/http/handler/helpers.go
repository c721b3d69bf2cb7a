package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/daodash/internal/adapter/http/dto"
	"github.com/iho/daodash/internal/domain"
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

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrToastNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProposalTooShort),
		errors.Is(err, domain.ErrProposalStartsInPast):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTokenAmount),
		errors.Is(err, domain.ErrInvalidDecimals),
		errors.Is(err, domain.ErrDecimalsTooHigh),
		errors.Is(err, domain.ErrInvalidSymbol),
		errors.Is(err, domain.ErrInvalidTimezone),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidToast),
		errors.Is(err, domain.ErrInvalidAddress):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseInt64Query parses an integer query parameter with a default value.
func parseInt64Query(r *http.Request, key string, defaultValue int64) (int64, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue, nil
	}
	return strconv.ParseInt(val, 10, 64)
}
