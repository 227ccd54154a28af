// Package errors provides structured error types for graphalign.
//
// Two classes of failure exist:
//   - Invalid input (bad offsets, unknown nodes, malformed intervals) is
//     returned as an *Error carrying one of the INVALID_* or UNKNOWN_* codes.
//   - Invariant violations (adjacency mirror mismatch, duplicate adjacency
//     entries, merges of unequal lengths) indicate internal corruption. They
//     are raised with [Invariant], which panics with an *Error coded
//     [ErrCodeInvariant]. A graph that raised one must be discarded.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPosition, "offset %d outside node %d", off, id)
//	if errors.Is(err, errors.ErrCodeInvalidPosition) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPosition Code = "INVALID_POSITION"
	ErrCodeInvalidInterval Code = "INVALID_INTERVAL"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeUnknownNode     Code = "UNKNOWN_NODE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Structural errors
	ErrCodeInvariant Code = "INVARIANT_VIOLATION"
	ErrCodeCycle     Code = "CYCLE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
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

// Invariant panics with an *Error coded ErrCodeInvariant.
// It is reserved for states that correct code can never reach.
func Invariant(format string, args ...any) {
	panic(New(ErrCodeInvariant, format, args...))
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

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInvalidInput reports whether err originates from caller-supplied
// arguments rather than internal corruption.
func IsInvalidInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidPosition, ErrCodeInvalidInterval,
		ErrCodeInvalidFormat, ErrCodeInvalidConfig, ErrCodeUnknownNode:
		return true
	}
	return false
}

// Recover converts a panic raised by [Invariant] into a returned error.
// Other panics are re-raised. Use it at API boundaries that must not crash,
// such as CLI commands:
//
//	defer errors.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*Error); ok && e.Code == ErrCodeInvariant {
		*errp = e
		return
	}
	panic(r)
}
