// Package apperr defines the error kinds shared by the URL and identity services.
//
// Every error returned by a service unwraps to exactly one of the sentinel kinds,
// so callers classify failures with errors.Is and never by message text.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Error is a classified failure with a message that is safe to show to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed or out-of-range input.
func Validation(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

// Conflict reports a uniqueness violation.
func Conflict(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

// NotFound reports a missing record.
func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

// Unauthorized reports a missing or unresolvable caller identity.
func Unauthorized(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}

// Forbidden reports a resolved identity that lacks permission.
func Forbidden(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

// Message returns the user-visible message of a classified error, or an empty
// string when err carries none.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return ""
}
