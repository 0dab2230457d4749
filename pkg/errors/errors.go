// Package errors provides structured error types for commitcard.
//
// Every failure that can end up on a rendered card carries a [Code] so that
// transports can decide on a status without parsing messages:
//
//   - MISSING_PARAMETER: required identity parameters were not supplied
//   - NOT_FOUND: the repository does not exist (or is private)
//   - RATE_LIMITED: GitHub refused the request because of quota
//   - UPSTREAM_ERROR: any other GitHub failure
//   - INTERNAL_ERROR: unexpected failures inside the card pipeline
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "Repository not found: %s/%s", owner, repo)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // ...
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeUpstream, origErr, "Failed to fetch commits")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the card pipeline.
const (
	// Input errors
	ErrCodeMissingParameter Code = "MISSING_PARAMETER"
	ErrCodeInvalidInput     Code = "INVALID_INPUT"

	// Remote fetch errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeRateLimited Code = "RATE_LIMITED"
	ErrCodeUpstream    Code = "UPSTREAM_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message, safe to show on a card
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

// IsFetchError reports whether err was produced while talking to GitHub.
func IsFetchError(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeRateLimited, ErrCodeUpstream:
		return true
	}
	return false
}
