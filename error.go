package snoo

import (
	"errors"
	"fmt"
)

// Error codes used throughout the application.
const (
	EEXTRACT      = "extract"      // markup did not match the expected structure
	EINTERNAL     = "internal"     // unexpected internal failure
	EINVALID      = "invalid"      // invalid input (bad identifier, bad field values)
	ENOTFOUND     = "not_found"    // entity does not exist
	EUNAVAILABLE  = "unavailable"  // upstream fetch failed (network, non-2xx)
	EUNRECOGNIZED = "unrecognized" // URL matches no known reddit pattern
)

// Error represents an application error with a machine-readable code
// and a human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("snoo error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs a new Error with formatting.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode extracts the code from an error. Returns an empty string
// for nil errors and EINTERNAL for non-application errors.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage extracts the message from an error. Returns an empty
// string for nil errors and a generic message for non-application errors.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
