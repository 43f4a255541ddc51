// Package errors provides structured error types for spatialnav.
//
// Every failure a caller can act on carries a machine-readable [Code] next to
// the human-readable message:
//   - INVALID_*: configuration and input validation failures
//   - *_NOT_FOUND: unknown sections or scenes
//   - STORAGE_ERROR / NETWORK_ERROR: backing store and transport failures
//   - INTERNAL_ERROR / UNSUPPORTED: unexpected conditions
//
// Navigation failure is not an error. A move that finds no destination
// returns false and emits a navigate-failed notification instead.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateSection, "section %q already exists", id)
//	if errors.Is(err, errors.ErrCodeDuplicateSection) {
//	    // pick another id
//	}
//
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "save scene %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration and input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidSectionID Code = "INVALID_SECTION_ID"
	ErrCodeDuplicateSection Code = "DUPLICATE_SECTION"
	ErrCodeInvalidDirection Code = "INVALID_DIRECTION"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidScene     Code = "INVALID_SCENE"
	ErrCodeInvalidSelector  Code = "INVALID_SELECTOR"

	// Resource not found errors
	ErrCodeSectionNotFound Code = "SECTION_NOT_FOUND"
	ErrCodeSceneNotFound   Code = "SCENE_NOT_FOUND"

	// Backend errors
	ErrCodeStorage Code = "STORAGE_ERROR"
	ErrCodeNetwork Code = "NETWORK_ERROR"

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

// HTTPStatus maps an error code to the status a remote API should answer with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeSectionNotFound, ErrCodeSceneNotFound:
		return 404
	case ErrCodeDuplicateSection:
		return 409
	case ErrCodeInvalidInput, ErrCodeInvalidSectionID, ErrCodeInvalidDirection,
		ErrCodeInvalidConfig, ErrCodeInvalidScene, ErrCodeInvalidSelector:
		return 400
	case ErrCodeUnsupported:
		return 501
	case ErrCodeNetwork, ErrCodeStorage:
		return 502
	}
	return 500
}
