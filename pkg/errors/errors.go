// Package errors provides structured error types for sponsorwall.
//
// Every fatal condition the tool can hit (a malformed export, an avatar that
// cannot be fetched, a missing tier badge) is reported as an [*Error] carrying
// a machine-readable [Code]. The CLI prints [UserMessage] and exits non-zero.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: malformed input data or configuration
//   - MISSING_*: a required column, avatar or badge is absent
//   - AVATAR_*: an avatar could not be fetched or decoded
//   - NETWORK_*: transport failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingColumn, "%s: missing column %q", file, col)
//	if errors.Is(err, errors.ErrCodeMissingColumn) {
//	    // Handle malformed export
//	}
//
//	err := errors.Wrap(errors.ErrCodeAvatarFetch, cause, "avatar for %q", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidValue  Code = "INVALID_VALUE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidLink   Code = "INVALID_LINK"

	// Missing data errors
	ErrCodeMissingColumn Code = "MISSING_COLUMN"
	ErrCodeMissingAvatar Code = "MISSING_AVATAR"
	ErrCodeMissingBadge  Code = "MISSING_BADGE"
	ErrCodeMissingTier   Code = "MISSING_TIER"

	// Avatar errors
	ErrCodeAvatarFetch  Code = "AVATAR_FETCH"
	ErrCodeAvatarDecode Code = "AVATAR_DECODE"

	// Network errors
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// For *Error types the code prefix is dropped and the cause appended.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
