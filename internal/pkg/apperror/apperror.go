// Package apperror classifies domain failures so the transport layer can map
// them to response codes without knowing every domain sentinel.
package apperror

import "errors"

// Kind sentinels. Match with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)

// Error is a domain error tagged with one of the kind sentinels.
type Error struct {
	Kind    error
	Message string
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error     { return New(ErrNotFound, message) }
func Conflict(message string) *Error     { return New(ErrConflict, message) }
func InvalidState(message string) *Error { return New(ErrInvalidState, message) }
func Validation(message string) *Error   { return New(ErrValidation, message) }

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is(err, apperror.ErrConflict) succeed for any Error of that kind.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// KindOf returns the kind sentinel carried by err, or nil for unclassified errors.
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrInvalidState} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
