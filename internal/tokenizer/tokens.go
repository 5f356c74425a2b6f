// Package tokenizer splits CSV text into dialect tokens using Shape's
// tokenizer framework. It is used where a coarse, quote-aware view of a
// sample is enough, such as dialect sniffing; the row engine lives in
// internal/lexer.
package tokenizer

// Token kinds.
//
// The tokenizer emits character-level tokens only. Whether a separator sits
// inside a quoted field is left to the consumer, which tracks quote parity.
const (
	// Structural tokens
	TokenComma   = "Comma"   // field separator (configurable, ',' by default)
	TokenQuote   = "Quote"   // quote character (configurable, '"' by default)
	TokenNewline = "Newline" // \r\n, \n or \r

	// Field content token
	TokenField = "Field" // run of characters that are none of the above

	// Special token
	TokenEOF = "EOF" // End of file
)
