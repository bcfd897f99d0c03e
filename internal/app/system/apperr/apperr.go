// internal/app/system/apperr/apperr.go

// Package apperr defines the typed failure taxonomy shared by the workflow
// engine and the HTTP features. Every failure carries a stable
// machine-readable kind plus a human message; internals never leak to
// callers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable failure category.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindForbidden  Kind = "forbidden"
	KindValidation Kind = "validation"
	KindInternal   Kind = "internal"
)

// Error is a tagged domain failure.
type Error struct {
	Kind     Kind
	Resource string // optional: what was missing/contested ("request", "proxy availability", ...)
	Message  string
	Err      error // optional underlying cause; never serialized
}

func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on kind: errors.Is(err, &Error{Kind: KindConflict}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Resource == "" || t.Resource == e.Resource)
}

// NotFound builds a not-found failure for the named resource.
func NotFound(resource, msg string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, Message: msg}
}

// Conflict builds a conflict failure (duplicate or already-settled state).
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Forbidden builds an ownership/role failure.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Validation builds a malformed-input failure. Surfaced only at the
// boundary, not inside the workflow.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Internal wraps an unexpected failure. The cause stays server-side.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf extracts the kind from any error, defaulting to KindInternal for
// untyped failures so nothing unexpected maps to a 4xx.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the human message safe to show callers. Untyped errors
// get a generic message so internals never leak.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal error"
}
