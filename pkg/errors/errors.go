// Package errors provides structured error types for Podium.
//
// Errors carry a machine-readable [Code] alongside a human message so that
// the CLI can print a short explanation while callers branch on the code:
//
//   - INVALID_*: caller supplied a page index, size or display that does not exist
//   - FILE_NOT_FOUND: a document path could not be opened
//   - DOCUMENT_NOT_READY: the document is still loading or failed to load
//   - RASTERIZER_UNAVAILABLE: no backend could turn a page into pixels
//   - UNSUPPORTED / INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPage, "page %d out of range", n)
//	if errors.Is(err, errors.ErrCodeInvalidPage) {
//	    // clamp and retry
//	}
//
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPage    Code = "INVALID_PAGE"
	ErrCodeInvalidSize    Code = "INVALID_SIZE"
	ErrCodeInvalidDisplay Code = "INVALID_DISPLAY"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Document state errors
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeDocumentNotReady Code = "DOCUMENT_NOT_READY"

	// Backend errors
	ErrCodeRasterizerUnavailable Code = "RASTERIZER_UNAVAILABLE"
	ErrCodeDisplayUnavailable    Code = "DISPLAY_UNAVAILABLE"

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
