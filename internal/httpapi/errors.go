package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"assistd/internal/installer"
	"assistd/internal/service"
	"assistd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusForError maps a service error to an HTTP status code.
//
// Validation problems are the caller's fault (400). Admission rejections
// are retryable (429). A service that is not ready, or whose runtime
// dependency is missing or broken, is temporarily unavailable (503).
// Everything else is a 500.
func statusForError(err error) int {
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	switch {
	case service.IsValidation(err):
		return http.StatusBadRequest
	case service.IsBusy(err):
		return http.StatusTooManyRequests
	case service.IsNotReady(err),
		installer.IsDependencyUnavailable(err),
		installer.IsImportFailed(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError maps err onto the wire and logs server-side faults.
// If the client already went away there is nobody to write to.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		return
	}
	status := statusForError(err)
	if status == http.StatusTooManyRequests {
		IncrementBackpressure("pool_full")
	}
	if status >= 500 {
		logRequestError(r, status, err)
	}
	writeJSONError(w, status, err.Error())
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
