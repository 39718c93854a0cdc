// Package apperr carries the error taxonomy shared by every domain package.
// Each error has a stable machine-readable Code and a human Message; the
// transport layer renders them, the core only classifies.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindAuthorization   Kind = "authorization"
	KindConflict        Kind = "conflict"
	KindNotFound        Kind = "not_found"
	KindContention      Kind = "resource_contention"
	KindInternal        Kind = "internal"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func New(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same code, so wrapped copies of a
// sentinel still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause returns a copy of e that wraps err.
func (e *Error) WithCause(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

// WithMessage returns a copy of e with a more specific message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

var (
	ErrContention = New(KindContention, "resource_contention", "Resource is busy, retry shortly.")
	ErrInternal   = New(KindInternal, "internal_error", "Unexpected server error.")
)

// Validation builds an ad-hoc validation error.
func Validation(code, msg string) *Error { return New(KindValidation, code, msg) }

// Contention wraps a lock-timeout/deadlock error from the store.
func Contention(err error) error { return ErrContention.WithCause(err) }

// Internal wraps an unexpected failure.
func Internal(err error) error { return ErrInternal.WithCause(err) }

// KindOf reports the kind of err; anything unclassified is internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// As extracts the classified error, falling back to ErrInternal wrapping err.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return ErrInternal.WithCause(err)
}
