package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized indicates a missing or invalid session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates an authenticated user lacking the required role.
var ErrForbidden = errors.New("forbidden")

// ErrUpstream indicates a transport failure talking to the store or a webhook:
// non-success status, unreachable host or an undecodable body.
var ErrUpstream = errors.New("upstream service failure")

// ErrDemoMode indicates that an external endpoint is not configured.
var ErrDemoMode = errors.New("endpoint not configured")

// ValidationError carries a user-facing message for a local validation failure.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AppError pairs an HTTP status with a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a failed call to an external service.
type UpstreamError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s returned status %d: %v", e.Service, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	default:
		return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
