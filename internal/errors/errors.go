package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error. Every error the engine surfaces is a
// deterministic rejection of an invalid request; none are retryable.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
)

// Error is the engine's error type. It carries a kind for dispatch, a stable
// code for callers that present errors to the end user, and an optional
// wrapped cause.
type Error struct {
	Kind    Kind
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a validation error for the given code.
func Validation(code ErrorCode) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: GetErrorMessage(code)}
}

// Validationf creates a validation error with a custom message.
func Validationf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not-found error for the given code.
func NotFound(code ErrorCode) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: GetErrorMessage(code)}
}

// Conflict creates a conflict error for the given code.
func Conflict(code ErrorCode) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: GetErrorMessage(code)}
}

// Wrap attaches a cause to the error and returns it.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func isKind(err error, kind Kind) bool {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Kind == kind
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { return isKind(err, KindConflict) }

// CodeOf returns the error code carried by err, or an empty code when err is
// not an engine error.
func CodeOf(err error) ErrorCode {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Code
	}
	return ""
}
