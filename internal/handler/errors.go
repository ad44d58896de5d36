package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/asoniya/travel-planner/backend/internal/domain"
)

// ErrorResponse is the JSON envelope for every failed request, mirrored by
// the auth middleware so clients parse all errors the same way.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a service/repo error onto the HTTP error envelope.
// Sentinel errors map to their status codes; anything unrecognized is logged
// and reported as an opaque 500 so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{
			Code:    "invalid_argument",
			Message: messageAfter(err, domain.ErrValidation, "invalid request"),
		}})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{
			Code:    "not_found",
			Message: messageAfter(err, domain.ErrNotFound, "not found"),
		}})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: ErrorDetail{
			Code:    "conflict",
			Message: messageAfter(err, domain.ErrConflict, "conflict"),
		}})
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{
			Code:    "unauthenticated",
			Message: messageAfter(err, domain.ErrUnauthenticated, "unauthenticated"),
		}})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code:    "internal",
			Message: "internal server error",
		}})
	}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "invalid_argument", Message: message}}
}

// messageAfter extracts the human-readable tail from a wrapped sentinel error.
// e.g. "service.TripService.AddItem: validation error: unknown item type" →
// "unknown item type". Falls back when the sentinel text ends the message.
func messageAfter(err error, sentinel error, fallback string) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 && i+len(marker) < len(msg) {
		return msg[i+len(marker):]
	}
	return fallback
}
