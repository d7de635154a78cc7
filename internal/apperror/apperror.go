package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConfig       = errors.New("configuration error")
	ErrUnauthorized = errors.New("upstream auth error")
	ErrRateLimited  = errors.New("rate limited")
	ErrUpstream     = errors.New("upstream error")
	ErrStorage      = errors.New("storage error")
)

type AppError struct {
	Err     error  // sentinel category (one of the vars above)
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	Detail  string // Optional: internal detail, only surfaced outside production
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// ConfigError marks a deployment misconfiguration (e.g. a missing API key).
// Never retryable by the client; handlers map it to 500.
func ConfigError(message string) *AppError {
	return &AppError{
		Err:     ErrConfig,
		Message: message,
	}
}

// Unauthorized means the upstream completion service rejected our credential.
// Handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// RateLimited means the upstream service throttled us. Handlers map this
// to 429; the client may retry later.
func RateLimited(message string) *AppError {
	return &AppError{
		Err:     ErrRateLimited,
		Message: message,
	}
}

// Upstream wraps any other completion-service or transport failure.
// The detail string holds the raw upstream error and is only included in
// responses when not running in production.
func Upstream(detail string) *AppError {
	return &AppError{
		Err:     ErrUpstream,
		Message: "completion service request failed",
		Detail:  detail,
	}
}

// Storage wraps a persistence-engine failure. The underlying error is kept
// as detail so it never leaks into production responses.
func Storage(op string, err error) *AppError {
	return &AppError{
		Err:     ErrStorage,
		Message: fmt.Sprintf("storage failure while %s", op),
		Detail:  err.Error(),
	}
}
