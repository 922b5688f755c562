// Package verrors provides structured error handling for vxtract.
//
// This package defines error types with:
//   - Error codes for programmatic handling
//   - Categories for grouping related errors
//   - Context fields for debugging
//   - Wrapping support for error chains
//
// Error codes follow a hierarchical scheme matching the six error
// kinds an extraction can fail with:
//   - 1xxx: Configuration errors (bad flags, existing output without --force)
//   - 2xxx: Connection errors (ODBC driver/environment, connection string)
//   - 3xxx: Metadata errors (column-description query)
//   - 4xxx: Schema errors (unknown SQL type, malformed width/precision/scale)
//   - 5xxx: Data errors (a value that doesn't fit its declared type)
//   - 6xxx: I/O errors (output file create/write/flush)
//   - 9xxx: Internal errors
package verrors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a numeric error code for programmatic handling.
type Code int

// Error codes by category.
const (
	// Configuration errors (1xxx)
	ErrCodeConfigMissing    Code = 1001
	ErrCodeConfigParse      Code = 1002
	ErrCodeOutputExists     Code = 1003

	// Connection errors (2xxx)
	ErrCodeConnectFailed    Code = 2001
	ErrCodeConnectionString Code = 2002

	// Metadata errors (3xxx)
	ErrCodeTableNotFound    Code = 3001
	ErrCodeMetadataParse    Code = 3002

	// Schema errors (4xxx)
	ErrCodeUnknownType      Code = 4001
	ErrCodeMalformedColumn  Code = 4002

	// Data errors (5xxx)
	ErrCodeNumericParse     Code = 5001
	ErrCodeUnexpectedValue  Code = 5002

	// I/O errors (6xxx)
	ErrCodeOutputCreate     Code = 6001
	ErrCodeOutputWrite      Code = 6002
	ErrCodeOutputFlush      Code = 6003

	// Internal errors (9xxx)
	ErrCodeInternal Code = 9001
)

// String returns the error code as a string, e.g. "E3001".
func (c Code) String() string {
	return fmt.Sprintf("E%04d", c)
}

// Category returns the category name for this code.
func (c Code) Category() string {
	switch {
	case c >= 1000 && c < 2000:
		return "config"
	case c >= 2000 && c < 3000:
		return "connect"
	case c >= 3000 && c < 4000:
		return "metadata"
	case c >= 4000 && c < 5000:
		return "schema"
	case c >= 5000 && c < 6000:
		return "data"
	case c >= 6000 && c < 7000:
		return "io"
	case c >= 9000:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a structured error with a code, context fields, and an
// optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Code.String())
	buf.WriteString(": ")
	buf.WriteString(e.Message)
	if e.Cause != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Cause.Error())
	}
	return buf.String()
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code, so that
// errors.Is(err, verrors.ErrTableNotFound) matches any error built
// from that code, not only the shared sentinel value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithField adds a context field to the error.
func (e *Error) WithField(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// New creates a new Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(cause error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode extracts the error code from an error, or returns ErrCodeInternal.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// ErrTableNotFound is the sentinel an extraction returns when the
// metadata query reports zero columns for the requested table — the
// table does not exist, or has none.
var ErrTableNotFound = New(ErrCodeTableNotFound, "table not found")

// Is and As re-export the standard library so callers need only
// import this package when working with vxtract errors.
func Is(err, target error) bool { return errors.Is(err, target) }
func As(err error, target any) bool { return errors.As(err, target) }
