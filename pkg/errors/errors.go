// Package errors provides structured error types for chromabench.
//
// Errors carry a machine-readable [Code] so the CLI, the HTTP service and the
// search orchestrator can tell per-graph data problems (which are reported and
// skipped) from defects (which abort the run).
//
// # Error Codes
//
//   - INVALID_*: input or configuration validation failures
//   - PARSE_ERROR: malformed graph files
//   - FILE_NOT_FOUND: unreadable inputs
//   - INVALID_COLORING: the validator rejected a colouring (a defect, fatal)
//   - NETWORK_ERROR / INTERNAL_ERROR / UNSUPPORTED
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "trials must be positive, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	err = errors.Wrap(errors.ErrCodeParse, origErr, "parse %s", path)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Graph data errors (reported per graph, never fatal for a run)
	ErrCodeParse        Code = "PARSE_ERROR"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInvalidGraph Code = "INVALID_GRAPH"

	// Algorithm defects (always fatal)
	ErrCodeInvalidColoring Code = "INVALID_COLORING"

	// Infrastructure errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It unwraps the error chain looking for an *Error with a matching code, so an
// INVALID_GRAPH error wrapped inside a FILE_NOT_FOUND error matches both.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err must abort a whole benchmark run rather than
// just the graph that produced it.
func IsFatal(err error) bool {
	return Is(err, ErrCodeInvalidColoring) || Is(err, ErrCodeInternal)
}
