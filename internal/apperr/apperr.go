package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so the HTTP layer can map it to a
// status code without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidArgument
	KindConflict
)

// Error is an application error carrying a Kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports that a referenced entity does not exist.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", entity)}
}

// InvalidArgument reports a request the caller can fix.
func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// Conflict reports a uniqueness or state conflict surfaced by the store.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf extracts the Kind from err, unwrapping as needed.
// Errors that are not *Error report KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a NotFound application error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsInvalidArgument reports whether err is an InvalidArgument application error.
func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

// IsConflict reports whether err is a Conflict application error.
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}
