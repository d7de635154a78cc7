package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every error response from the API has the same shape:
//
//	{"error": "not_found", "message": "tweet not found with id 7"}
//
// plus an optional "detail" field that is only populated outside production.
// The frontend always knows what fields to expect, regardless of whether
// it's a 400, 404, or 500.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/content-remix/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`            // Machine-readable error type (e.g. "not_found")
	Message string `json:"message"`          // Human-readable description
	Detail  string `json:"detail,omitempty"` // Internal detail, development only
}

// writeJSON sends a JSON response with the given status code.
//
// Headers and status code MUST be set before the body: once Encode writes,
// the headers are on the wire and any later changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code and sends it.
//
// The service layer returns apperror sentinels (ErrValidation, ErrNotFound,
// upstream classes, ...) and this is the single place they become HTTP.
// exposeDetail gates the AppError.Detail field: raw upstream and database
// error strings are useful while developing but must never leak from a
// deployed server.
func writeError(w http.ResponseWriter, err error, exposeDetail bool) {
	var appErr *apperror.AppError

	// errors.As walks the chain (via Unwrap) and extracts our typed error
	// if it appears anywhere, even under fmt.Errorf("...: %w", ...) wrapping.
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest // 400
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound // 404
			errorType = "not_found"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized // 401
			errorType = "upstream_auth_error"
		case errors.Is(err, apperror.ErrRateLimited):
			status = http.StatusTooManyRequests // 429
			errorType = "rate_limited"
		case errors.Is(err, apperror.ErrConfig):
			status = http.StatusInternalServerError // 500, deployment problem
			errorType = "configuration_error"
		case errors.Is(err, apperror.ErrUpstream):
			status = http.StatusInternalServerError // 500
			errorType = "upstream_error"
		case errors.Is(err, apperror.ErrStorage):
			status = http.StatusInternalServerError // 500
			errorType = "storage_error"
		}

		resp := ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		}
		if exposeDetail {
			resp.Detail = appErr.Detail
		}
		writeJSON(w, status, resp)
		return
	}

	// Unknown error — return a generic 500. The raw error message might
	// contain SQL or file paths, so it never reaches the client.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
