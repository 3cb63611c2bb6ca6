// Package apperr defines the error taxonomy shared by all services.
// Every business failure is one of three kinds, each mapping to a fixed
// HTTP status at the API boundary: validation (400), not-found (404),
// conflict (409).
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(code, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFound(code, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Conflict(code, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the taxonomy kind from err. The second return is false
// when err is not an apperr.Error, in which case the caller should treat
// it as an internal failure.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// CodeOf returns the machine code of err, or "" for non-taxonomy errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsValidation(err error) bool { k, ok := KindOf(err); return ok && k == KindValidation }
func IsNotFound(err error) bool   { k, ok := KindOf(err); return ok && k == KindNotFound }
func IsConflict(err error) bool   { k, ok := KindOf(err); return ok && k == KindConflict }
