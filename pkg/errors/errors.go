// Package errors provides structured error types for drawspec.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the compiler, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Recoverable warnings that travel alongside a valid result
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (quantities, colors, documents)
//   - UNKNOWN_* / DUPLICATE_*: Reference integrity failures in a diagram
//   - NOT_FOUND: Resource not found (stored scenes)
//   - INTERNAL_*: Unexpected internal errors
//
// STYLE_FALLBACK is never returned as an error from compilation. It is
// reported through [Warning] values collected on the compiled scene.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidQuantity, "invalid length: %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidQuantity) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "shape %s", id)
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
	ErrCodeInvalidQuantity Code = "INVALID_QUANTITY"
	ErrCodeInvalidColor    Code = "INVALID_COLOR"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Reference integrity errors
	ErrCodeUnknownShapeReference Code = "UNKNOWN_SHAPE_REFERENCE"
	ErrCodeDuplicateShapeID      Code = "DUPLICATE_SHAPE_ID"

	// Recoverable style errors (reported as warnings)
	ErrCodeStyleFallback Code = "STYLE_FALLBACK"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
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

// Annotate prefixes the message of a coded error, keeping its code and
// cause so the code prints once. Uncoded errors are wrapped as INTERNAL_ERROR.
func Annotate(err error, format string, args ...any) *Error {
	prefix := fmt.Sprintf(format, args...)
	var e *Error
	if errors.As(err, &e) {
		return &Error{Code: e.Code, Message: prefix + ": " + e.Message, Cause: e.Cause}
	}
	return Wrap(ErrCodeInternal, err, "%s", prefix)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// The outermost *Error wins, so Wrap(A, New(B)) reports A.
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

// Warning is a recoverable problem found while compiling a diagram.
// The compiled output remains valid; warnings are reported to the caller
// next to it.
type Warning struct {
	Code    Code   `json:"code"`
	Target  string `json:"target,omitempty"` // Shape or connector ID
	Message string `json:"message"`
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Target != "" {
		return fmt.Sprintf("%s: %s: %s", w.Code, w.Target, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Fallback creates a STYLE_FALLBACK warning for target.
func Fallback(target, format string, args ...any) Warning {
	return Warning{
		Code:    ErrCodeStyleFallback,
		Target:  target,
		Message: fmt.Sprintf(format, args...),
	}
}
