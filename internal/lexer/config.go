package lexer

// DefaultBufferSize is the initial token buffer size and growth increment.
const DefaultBufferSize = 16 * 1024

// EncodeFunc turns the raw bytes of one field into text. It must not retain b.
type EncodeFunc func(b []byte) (string, error)

// Config holds the settings of one lexing session.
type Config struct {
	// Quote opens and closes quoted fields. Doubling it inside a quoted
	// field yields one literal quote.
	Quote byte

	// Sep separates fields.
	Sep byte

	// BufferSize is the initial token buffer size and the growth increment.
	BufferSize int

	// MaxBufferSize caps buffer growth. Zero means unbounded.
	MaxBufferSize int

	// Encode converts field bytes to text. Nil copies the bytes unchanged.
	Encode EncodeFunc

	// RawRows keeps each delivered row's raw bytes, without its separator,
	// available through Session.RawRow.
	RawRows bool

	// OnGrow is called after the token buffer grows.
	OnGrow func(from, to int)
}

// DefaultConfig returns the RFC 4180 dialect: comma, double quote, 16 KiB buffer.
func DefaultConfig() Config {
	return Config{
		Quote:      '"',
		Sep:        ',',
		BufferSize: DefaultBufferSize,
	}
}

// Validate checks the config and returns a *ConfigError describing the first problem.
func (c Config) Validate() error {
	if c.BufferSize <= 0 {
		return &ConfigError{Field: "BufferSize", Reason: "must be greater than zero"}
	}
	if c.MaxBufferSize < 0 {
		return &ConfigError{Field: "MaxBufferSize", Reason: "must not be negative"}
	}
	if c.MaxBufferSize > 0 && c.MaxBufferSize < c.BufferSize {
		return &ConfigError{Field: "MaxBufferSize", Reason: "must not be smaller than BufferSize"}
	}
	if isLineBreak(c.Quote) {
		return &ConfigError{Field: "QuoteChar", Reason: "cannot be CR or LF"}
	}
	if isLineBreak(c.Sep) {
		return &ConfigError{Field: "FieldSep", Reason: "cannot be CR or LF"}
	}
	if c.Quote == c.Sep {
		return &ConfigError{Field: "FieldSep", Reason: "must differ from QuoteChar"}
	}
	return nil
}

func isLineBreak(b byte) bool {
	return b == '\r' || b == '\n'
}
