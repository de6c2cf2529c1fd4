package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies failures so callers can branch on outcome instead of
// matching error strings.
type Kind int

const (
	// KindUnknown covers unexpected internal failures (HTTP 500).
	KindUnknown Kind = iota
	// KindNotFound collapses "does not exist" and "not owned by caller"
	// into one outcome so existence never leaks across owners.
	KindNotFound
	// KindValidation rejects malformed input before any side effect.
	KindValidation
	// KindConflict marks uniqueness violations (duplicate registration).
	KindConflict
	// KindUnauthorized marks failed credential checks.
	KindUnauthorized
	// KindDegraded marks an optional backend being unset or failing.
	// It must never escape a core operation; the defined fallback is
	// substituted instead.
	KindDegraded
	// KindPersistence marks durable-store failures. The only kind that
	// is fatal to the enclosing operation.
	KindPersistence
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Degraded(message string, err error) *Error {
	return &Error{Kind: KindDegraded, Message: message, Err: err}
}

func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf extracts the kind of err, or KindUnknown for plain errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// MessageOf returns the caller-safe message of err. Plain errors map to a
// generic message so internals never reach the client.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
