package lexer

import (
	"errors"
	"fmt"
)

// Parse failures. Every error returned while scanning wraps exactly one of these,
// so callers can classify a failure with errors.Is.
var (
	// ErrUnclosedQuotedField indicates the input ended inside a quoted field.
	ErrUnclosedQuotedField = errors.New("unclosed quoted field")

	// ErrIllegalQuoting indicates a quote character in an unquoted field, or a
	// closing quote followed by something other than a quote or a delimiter.
	ErrIllegalQuoting = errors.New("illegal quoting")

	// ErrInconsistentRowSeparator indicates a record separator that differs from
	// the one fixed by the first record boundary of the input.
	ErrInconsistentRowSeparator = errors.New("inconsistent row separator")

	// ErrInvalidConfig indicates a configuration rejected before any byte is read.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrTokenTooLarge indicates a single token needed more buffer than MaxBufferSize allows.
	ErrTokenTooLarge = errors.New("token exceeds maximum buffer size")

	// ErrTranscode indicates the configured encoder rejected a field's bytes.
	ErrTranscode = errors.New("cannot transcode field")
)

// ParseError reports a fatal scanning failure and the line it was detected on.
// Line is 1-based and counts the record separators accepted before the failure.
type ParseError struct {
	// Line is the line where the error was detected (1-indexed).
	// For an unclosed quoted field it is the line of the opening quote.
	Line int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with the line number.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError describes an invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Reason
}

// Unwrap makes every ConfigError match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func parseError(line int, err error) *ParseError {
	return &ParseError{Line: line, Err: err}
}
