package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Options selects the dialect to tokenize.
type Options struct {
	// Comma is the field separator. Default: ','
	Comma rune
	// Quote is the quote character. Default: '"'
	Quote rune
}

// DefaultOptions returns the RFC 4180 dialect.
func DefaultOptions() Options {
	return Options{
		Comma: ',',
		Quote: '"',
	}
}

// NewTokenizer creates a tokenizer for the default dialect.
func NewTokenizer() tokenizer.Tokenizer {
	return NewTokenizerWithOptions(DefaultOptions())
}

// NewTokenizerWithOptions creates a tokenizer for the given dialect.
// Matchers are tried in order:
// 1. Newlines (CRLF before CR and LF so the longer sequence wins)
// 2. Separator
// 3. Quote
// 4. Field content
func NewTokenizerWithOptions(opts Options) tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenNewline, "\r\n"),
		tokenizer.StringMatcherFunc(TokenNewline, "\n"),
		tokenizer.StringMatcherFunc(TokenNewline, "\r"),

		tokenizer.StringMatcherFunc(TokenComma, string(opts.Comma)),
		tokenizer.StringMatcherFunc(TokenQuote, string(opts.Quote)),

		FieldContentMatcher(opts),
	)
}

// NewTokenizerWithStream creates a tokenizer reading from a pre-configured stream.
func NewTokenizerWithStream(stream tokenizer.Stream, opts Options) tokenizer.Tokenizer {
	tok := NewTokenizerWithOptions(opts)
	tok.InitializeFromStream(stream)
	return tok
}

// FieldContentMatcher matches runs of characters that are not the separator,
// the quote, CR or LF.
//
// Grammar:
//
//	Field = Character+ ;
//	Character = <any character except separator, quote, CR, LF> ;
//
// ASCII dialects take a byte-level fast path when the stream supports it.
func FieldContentMatcher(opts Options) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if opts.Comma < 128 && opts.Quote < 128 {
			if byteStream, ok := stream.(tokenizer.ByteStream); ok {
				return fieldContentBytes(byteStream, byte(opts.Comma), byte(opts.Quote))
			}
		}
		return fieldContentRunes(stream, opts.Comma, opts.Quote)
	}
}

func fieldContentBytes(stream tokenizer.ByteStream, comma, quote byte) *tokenizer.Token {
	startPos := stream.BytePosition()
	for {
		b, ok := stream.PeekByte()
		if !ok || b == comma || b == quote || b == '\n' || b == '\r' {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}
	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenField, []rune(string(value)))
}

func fieldContentRunes(stream tokenizer.Stream, comma, quote rune) *tokenizer.Token {
	var value []rune
	for {
		r, ok := stream.PeekChar()
		if !ok || r == comma || r == quote || r == '\n' || r == '\r' {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}
	return tokenizer.NewToken(TokenField, value)
}
