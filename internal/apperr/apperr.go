// Package apperr classifies domain failures so that callers can map them to
// transport-specific outcomes without parsing messages.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the stable, machine-readable classification of a failure.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation_failed"
	KindConflict     Kind = "conflict"
	KindPrecondition Kind = "precondition_failed"
)

// Error is a classified domain failure with a message suitable for display.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches kind sentinels (an *Error without a message) by kind, and any
// other *Error by kind and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	if t.Message == "" {
		return t.Kind == e.Kind
	}

	return t.Kind == e.Kind && t.Message == e.Message
}

// Sentinels for errors.Is checks against a whole kind.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrPrecondition = &Error{Kind: KindPrecondition}
)

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func Validation(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

func Precondition(format string, args ...any) *Error {
	return newError(KindPrecondition, format, args...)
}

// KindOf reports the classification of err, if any error in its chain is an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}

	return "", false
}

func newError(kind Kind, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	return &Error{Kind: kind, Message: msg}
}
