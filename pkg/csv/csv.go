// Package csv provides high-throughput streaming CSV parsing.
//
// Input is scanned by a table-driven lexer over a growable buffer, so a
// large file or stream is parsed in constant memory and a field may straddle
// any number of reads. Rows are delivered as []Field, where each Field is
// either absent (an unquoted empty field) or present text (possibly the
// quoted empty string ""):
//
//	a,,""  ->  [Text("a"), nil, Text("")]
//
// Blank lines produce no row. The first row separator (LF, CR or CRLF) fixes
// the separator for the rest of the input; a different one is an error.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each call creates its own session with no shared mutable state. A Scanner
// is not safe for concurrent use.
//
//	// Safe: Concurrent parsing
//	go func() { csv.Parse(input1) }()
//	go func() { csv.Parse(input2) }()
//
// # Parsing APIs
//
//   - Parse(string), ParseBytes([]byte) - whole inputs already in memory, scanned in place
//   - ParseReader(io.Reader) - any reader, streamed through the buffer
//   - ParseFile(path) - memory-mapped file
//   - ParseStream(tokenizer.Stream) - a Shape tokenizer stream
//   - ParseLine(string) - the first row only
//   - ForEach, Rows, Scanner - row at a time, without holding every row
//   - ParseAST, ParseReaderAST - Shape's unified AST
//
// # Example usage with Scanner:
//
//	file, err := os.Open("data.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	scanner := csv.NewScanner(file).SetHasHeaders(true)
//	for scanner.Scan() {
//	    name, _ := scanner.Record().GetByName("name")
//	    fmt.Println(name)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
package csv

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-fastcsv/internal/lexer"
)

// Field is one value of a row: absent, or present text.
type Field = lexer.Field

// Row is an ordered sequence of fields; index order is column order.
type Row = lexer.Row

// RowSeparator identifies the byte sequence that ends a row.
type RowSeparator = lexer.RowSeparator

// Row separators.
const (
	SeparatorUnset = lexer.SeparatorUnset
	SeparatorLF    = lexer.SeparatorLF
	SeparatorCR    = lexer.SeparatorCR
	SeparatorCRLF  = lexer.SeparatorCRLF
)

// Nil returns an absent field.
func Nil() Field {
	return lexer.NilField()
}

// Text returns a present field holding s.
func Text(s string) Field {
	return lexer.TextField(s)
}

// Parse parses a CSV document held in a string.
//
// Example:
//
//	rows, err := csv.Parse("name,age\nAlice,30\nBob,\n")
//	// rows[2][1].IsNil() == true
func Parse(input string) ([]Row, error) {
	return ParseWithOptions(input, DefaultOptions())
}

// ParseWithOptions parses a CSV document held in a string with custom options.
//
// Example:
//
//	opts := csv.DefaultOptions()
//	opts.FieldSep = ";"
//	rows, err := csv.ParseWithOptions("a;b\n1;2\n", opts)
func ParseWithOptions(input string, opts Options) ([]Row, error) {
	return collect(lexer.NewStringSource(input), opts)
}

// ParseBytes parses a CSV document held in memory. data is only read.
func ParseBytes(data []byte) ([]Row, error) {
	return ParseBytesWithOptions(data, DefaultOptions())
}

// ParseBytesWithOptions parses a CSV document held in memory with custom options.
func ParseBytesWithOptions(data []byte, opts Options) ([]Row, error) {
	return collect(lexer.NewBytesSource(data), opts)
}

// ParseReader parses CSV from an io.Reader.
//
// The reader is consumed in BufferSize chunks; only the unconsumed tail of
// the input is buffered. All rows are returned at once; use ForEach, Rows or
// a Scanner to process rows without holding them all.
func ParseReader(reader io.Reader) ([]Row, error) {
	return ParseReaderWithOptions(reader, DefaultOptions())
}

// ParseReaderWithOptions parses CSV from an io.Reader with custom options.
func ParseReaderWithOptions(reader io.Reader, opts Options) ([]Row, error) {
	return collect(lexer.NewReaderSource(reader), opts)
}

// ParseFile parses the CSV file at path. The file is memory-mapped where the
// platform supports it and scanned in place.
func ParseFile(path string, opts Options) ([]Row, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m, err := lexer.MapFile(path)
	if err != nil {
		return nil, err
	}
	rows, err := collect(m.Source(), opts)
	if cerr := m.Close(); err == nil && cerr != nil {
		return nil, fmt.Errorf("csv: closing %s: %w", path, cerr)
	}
	return rows, err
}

// ParseStream parses CSV from a Shape tokenizer stream.
func ParseStream(stream tokenizer.Stream, opts Options) ([]Row, error) {
	return collect(lexer.NewStreamSource(stream), opts)
}

// ParseLine parses the first row of line and ignores the rest.
// It returns nil if line holds no row, such as "" or "\n".
//
// Example:
//
//	row, err := csv.ParseLine("1,\"two\",3")
func ParseLine(line string) (Row, error) {
	return ParseLineWithOptions(line, DefaultOptions())
}

// ParseLineWithOptions parses the first row of line with custom options.
func ParseLineWithOptions(line string, opts Options) (Row, error) {
	s, err := newSession(lexer.NewStringSource(line), opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	row, err := s.Next()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	return row, err
}

// ForEach calls fn for every row read from reader. Parsing stops at the
// first parse error or at the first non-nil error returned by fn, which
// ForEach then returns.
//
// Example:
//
//	err := csv.ForEach(file, csv.DefaultOptions(), func(row csv.Row) error {
//	    fmt.Println(row.Strings())
//	    return nil
//	})
func ForEach(reader io.Reader, opts Options, fn func(Row) error) error {
	s, err := newSession(lexer.NewReaderSource(reader), opts)
	if err != nil {
		return err
	}
	defer s.Close()
	for {
		row, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

// Rows returns an iterator over the rows read from reader. A parse error is
// yielded once, with a nil row, and ends the sequence. Breaking out of the
// loop stops parsing.
//
// Example:
//
//	for row, err := range csv.Rows(file, csv.DefaultOptions()) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(row.Strings())
//	}
func Rows(reader io.Reader, opts Options) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		s, err := newSession(lexer.NewReaderSource(reader), opts)
		if err != nil {
			yield(nil, err)
			return
		}
		defer s.Close()
		for {
			row, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

// Format returns the format identifier for this parser.
// Returns "CSV" to identify this as the CSV data format parser.
func Format() string {
	return "CSV"
}

// Validate checks if the input string is valid CSV.
//
// Rows are scanned and dropped as they complete. Returns nil if the input
// is valid, or the *ParseError describing the first problem:
//
//	if err := csv.Validate(input); err != nil {
//	    fmt.Println("Invalid CSV:", err)
//	}
func Validate(input string) error {
	return drain(lexer.NewStringSource(input), DefaultOptions())
}

// ValidateReader checks if the input from an io.Reader is valid CSV.
// The input is streamed; memory use does not depend on its size.
func ValidateReader(reader io.Reader) error {
	return drain(lexer.NewReaderSource(reader), DefaultOptions())
}

// ValidateWithOptions checks if the input string is valid CSV in the given dialect.
func ValidateWithOptions(input string, opts Options) error {
	return drain(lexer.NewStringSource(input), opts)
}

// collect parses src to the end and returns every row.
func collect(src lexer.Source, opts Options) ([]Row, error) {
	s, err := newSession(src, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	rows := make([]Row, 0, 16)
	for {
		row, err := s.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// drain parses src to the end, discarding rows.
func drain(src lexer.Source, opts Options) error {
	s, err := newSession(src, opts)
	if err != nil {
		return err
	}
	defer s.Close()
	for {
		if _, err := s.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
