// Package csv provides configurable options for CSV parsing and writing.
package csv

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"github.com/shapestone/shape-fastcsv/internal/lexer"
)

// DefaultBufferSize is the default initial buffer size and growth increment.
const DefaultBufferSize = lexer.DefaultBufferSize

// Options configures CSV parsing.
type Options struct {
	// QuoteChar opens and closes quoted fields. It must be exactly one byte.
	// Default: `"`
	QuoteChar string

	// FieldSep separates fields. It must be exactly one byte, differ from
	// QuoteChar, and be neither CR nor LF.
	// Default: ","
	FieldSep string

	// BufferSize is the initial buffer size in bytes and the amount the
	// buffer grows by when a field does not fit.
	// Default: 16384
	BufferSize int

	// MaxBufferSize caps buffer growth. A field that needs more fails with
	// ErrTokenTooLarge. Zero means unbounded.
	// Default: 0
	MaxBufferSize int

	// Encoding is the input's character encoding. Fields are decoded to
	// UTF-8 with it. Nil means the input is used as is.
	// Default: nil
	Encoding encoding.Encoding

	// RawRows keeps the raw text of each row, without its separator, for
	// Scanner.RawRow. The buffer then holds a whole row, so MaxBufferSize
	// bounds rows rather than fields.
	// Default: false
	RawRows bool

	// OnGrow, if set, is called whenever the buffer grows.
	OnGrow func(from, to int)
}

// DefaultOptions returns the RFC 4180 dialect with a 16 KiB buffer.
func DefaultOptions() Options {
	return Options{
		QuoteChar:  `"`,
		FieldSep:   ",",
		BufferSize: DefaultBufferSize,
	}
}

// Validate checks the options. It returns an *OptionsError describing the
// first problem found.
func (o Options) Validate() error {
	_, err := o.config()
	return err
}

// config translates the options for the engine.
func (o Options) config() (lexer.Config, error) {
	if len(o.QuoteChar) != 1 {
		return lexer.Config{}, &OptionsError{Field: "QuoteChar", Reason: "must be exactly one byte"}
	}
	if len(o.FieldSep) != 1 {
		return lexer.Config{}, &OptionsError{Field: "FieldSep", Reason: "must be exactly one byte"}
	}
	cfg := lexer.Config{
		Quote:         o.QuoteChar[0],
		Sep:           o.FieldSep[0],
		BufferSize:    o.BufferSize,
		MaxBufferSize: o.MaxBufferSize,
		RawRows:       o.RawRows,
		OnGrow:        o.OnGrow,
	}
	if err := cfg.Validate(); err != nil {
		return lexer.Config{}, err
	}
	cfg.Encode = encodeFunc(o.Encoding)
	return cfg, nil
}

// newSession opens an engine session over src.
func newSession(src lexer.Source, opts Options) (*lexer.Session, error) {
	cfg, err := opts.config()
	if err != nil {
		return nil, err
	}
	return lexer.NewSession(src, cfg)
}

// WriterOptions configures CSV writing.
type WriterOptions struct {
	// Comma is the field delimiter.
	// Default: ','
	Comma rune

	// Quote is the quote character.
	// Default: '"'
	Quote rune

	// UseCRLF controls whether to use \r\n (true) or \n (false) as the line terminator.
	// Default: false (use \n)
	UseCRLF bool
}

// DefaultWriterOptions returns the default writer configuration.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		Comma:   ',',
		Quote:   '"',
		UseCRLF: false,
	}
}

// validDelim reports whether r can serve as a delimiter or quote.
func validDelim(r rune) bool {
	return r != 0 && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// Validate checks if the writer options are valid.
func (o WriterOptions) Validate() error {
	if !validDelim(o.Comma) {
		return &OptionsError{Field: "Comma", Reason: "invalid delimiter"}
	}
	if !validDelim(o.Quote) {
		return &OptionsError{Field: "Quote", Reason: "invalid quote character"}
	}
	if o.Comma == o.Quote {
		return &OptionsError{Field: "Quote", Reason: "quote character same as delimiter"}
	}
	return nil
}
