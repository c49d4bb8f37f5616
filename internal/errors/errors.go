// Package errors provides the structured error kinds of hole framing.
//
// Every failure carries a Code so callers can tell a bad parameter set
// from a degenerate hole or a failing host document:
//   - CONFIGURATION: non-positive numeric parameter, unresolved bar type.
//     Raised before any geometry or emission work.
//   - GEOMETRY: degenerate hole dimensions or unresolved host category.
//     Aborts the whole batch.
//   - HOST_OPERATION: the emitter failed to create, move or lay out a bar.
//     The cause is kept unmodified and the batch is rolled back.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeGeometry, "opening %s has zero width", id)
//	if errors.Is(err, errors.ErrCodeGeometry) {
//	    // abort the batch
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeConfiguration Code = "CONFIGURATION"
	ErrCodeGeometry      Code = "GEOMETRY"
	ErrCodeHostOperation Code = "HOST_OPERATION"

	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeNotFound     Code = "NOT_FOUND"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf extracts the error code from an error, or "" if err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Configuration reports a parameter that is missing or out of range.
func Configuration(field string, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeConfiguration,
		Message: field + " " + fmt.Sprintf(format, args...),
	}
}

// Geometry reports a hole or host that cannot produce a usable frame.
func Geometry(format string, args ...any) *Error {
	return New(ErrCodeGeometry, format, args...)
}

// HostOperation wraps a failure reported by the host document.
func HostOperation(cause error, format string, args ...any) *Error {
	return Wrap(ErrCodeHostOperation, cause, format, args...)
}
