// Package csv provides error types for CSV parsing.
package csv

import (
	"github.com/shapestone/shape-fastcsv/internal/lexer"
)

// Parse failures. Every error returned while parsing wraps exactly one of
// these, so a failure can be classified with errors.Is:
//
//	if errors.Is(err, csv.ErrIllegalQuoting) {
//	    // ...
//	}
var (
	// ErrUnclosedQuotedField indicates the input ended inside a quoted field.
	ErrUnclosedQuotedField = lexer.ErrUnclosedQuotedField

	// ErrIllegalQuoting indicates a quote character in an unquoted field, or a
	// closing quote followed by something other than a quote or a delimiter.
	ErrIllegalQuoting = lexer.ErrIllegalQuoting

	// ErrInconsistentRowSeparator indicates a row separator different from
	// the first one in the input, for example LF after CRLF.
	ErrInconsistentRowSeparator = lexer.ErrInconsistentRowSeparator

	// ErrInvalidConfig indicates invalid Options. Every *OptionsError matches it.
	ErrInvalidConfig = lexer.ErrInvalidConfig

	// ErrTokenTooLarge indicates a field (or a row, with RawRows) that needs
	// more buffer than Options.MaxBufferSize allows.
	ErrTokenTooLarge = lexer.ErrTokenTooLarge

	// ErrTranscode indicates Options.Encoding could not decode a field.
	ErrTranscode = lexer.ErrTranscode
)

// ParseError reports a fatal parse failure with its line number.
//
// Line is 1-based and counts the row separators seen before the failure, so
// line breaks inside quoted fields do not advance it. For an unclosed quoted
// field it is the line where the quote opened.
type ParseError = lexer.ParseError

// OptionsError describes an invalid Options or WriterOptions value.
type OptionsError = lexer.ConfigError
