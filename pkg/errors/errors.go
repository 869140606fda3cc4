package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the category of a backup failure
type ErrorType string

const (
	ErrorTypeTransport ErrorType = "transport"
	ErrorTypeSchema    ErrorType = "schema"
	ErrorTypeIO        ErrorType = "io"
	ErrorTypeInput     ErrorType = "input"
	ErrorTypeConfig    ErrorType = "config"
)

// Error represents a typed failure with an optional HTTP status code
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Type)
	if e.Code != 0 {
		msg += fmt.Sprintf(" (code %d)", e.Code)
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Transport creates an error for a failed or non-2xx HTTP exchange.
// code is 0 when no response was received.
func Transport(code int, message string, err error) *Error {
	return &Error{Type: ErrorTypeTransport, Message: message, Code: code, Err: err}
}

// Schema creates an error for a response missing the expected shape
func Schema(message string, err error) *Error {
	return &Error{Type: ErrorTypeSchema, Message: message, Err: err}
}

// IO creates an error for a local file failure
func IO(message string, err error) *Error {
	return &Error{Type: ErrorTypeIO, Message: message, Err: err}
}

// Input creates an error for invalid user input
func Input(message string, err error) *Error {
	return &Error{Type: ErrorTypeInput, Message: message, Err: err}
}

// Config creates an error for invalid configuration
func Config(message string, err error) *Error {
	return &Error{Type: ErrorTypeConfig, Message: message, Err: err}
}

// TypeOf returns the type of the first *Error in err's chain, or "" if none
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsType reports whether err's chain contains an *Error of the given type
func IsType(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}

// IsSuccessStatusCode reports whether an HTTP status code is 2xx
func IsSuccessStatusCode(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
