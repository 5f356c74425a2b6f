package csv

import (
	"errors"
	"io"
	"iter"

	"github.com/shapestone/shape-fastcsv/internal/lexer"
)

// Scanner reads CSV rows one at a time. Only the unconsumed tail of the
// input is buffered, so memory use does not depend on the input size.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//
//	scanner := csv.NewScanner(file).SetHasHeaders(true)
//	defer scanner.Close()
//	for scanner.Scan() {
//	    record := scanner.Record()
//	    name, _ := record.GetByName("name")
//	    fmt.Println(name)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner struct {
	session    *lexer.Session
	hasHeaders bool
	convert    HeaderConverter
	headers    []string
	row        Row
	err        error
	done       bool
}

// NewScanner creates a Scanner reading from reader with DefaultOptions.
// By default, the scanner assumes no headers. Use SetHasHeaders(true) to treat
// the first row as headers.
func NewScanner(reader io.Reader) *Scanner {
	s, err := NewScannerWithOptions(reader, DefaultOptions())
	if err != nil {
		// DefaultOptions always validate.
		panic(err)
	}
	return s
}

// NewScannerWithOptions creates a Scanner reading from reader.
// It returns an *OptionsError if opts are invalid.
func NewScannerWithOptions(reader io.Reader, opts Options) (*Scanner, error) {
	return newScanner(lexer.NewReaderSource(reader), opts)
}

// NewBytesScanner creates a Scanner over an in-memory document. data is
// scanned in place and never modified.
func NewBytesScanner(data []byte, opts Options) (*Scanner, error) {
	return newScanner(lexer.NewBytesSource(data), opts)
}

func newScanner(src lexer.Source, opts Options) (*Scanner, error) {
	session, err := newSession(src, opts)
	if err != nil {
		return nil, err
	}
	return &Scanner{session: session}, nil
}

// SetHasHeaders sets whether the first row should be treated as headers.
// If true, the first row is consumed as column names for GetByName() access.
// Returns the Scanner for method chaining.
func (s *Scanner) SetHasHeaders(hasHeaders bool) *Scanner {
	s.hasHeaders = hasHeaders
	return s
}

// SetHeaderConverter sets a function applied to every header name.
// Returns the Scanner for method chaining.
//
// Example:
//
//	scanner := csv.NewScanner(reader).
//	    SetHasHeaders(true).
//	    SetHeaderConverter(csv.SnakeCaseHeader)
func (s *Scanner) SetHeaderConverter(fn HeaderConverter) *Scanner {
	s.convert = fn
	return s
}

// Scan advances the scanner to the next row.
// It returns false when there are no more rows or an error occurs.
// After Scan returns false, the Err method will return any error that occurred.
func (s *Scanner) Scan() bool {
	for !s.done {
		row, err := s.session.Next()
		if err != nil {
			s.done = true
			s.row = nil
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			s.session.Close()
			return false
		}
		if s.hasHeaders && s.headers == nil {
			s.headers = headerNames(row, s.convert)
			continue
		}
		s.row = row
		return true
	}
	return false
}

// Row returns the current row. Rows are never reused, so a row stays valid
// after later calls to Scan.
func (s *Scanner) Row() Row {
	return s.row
}

// Record returns the current row with name-based access through the headers.
func (s *Scanner) Record() Record {
	return Record{fields: s.row, headers: s.headers}
}

// Headers returns the column names read from the first row.
// It is nil until the first call to Scan, and always nil without SetHasHeaders(true).
func (s *Scanner) Headers() []string {
	return s.headers
}

// RawRow returns the raw text of the current row without its separator.
// It requires Options.RawRows and is empty otherwise.
func (s *Scanner) RawRow() string {
	return s.session.RawRow()
}

// Line returns the 1-based line on which the current row starts.
func (s *Scanner) Line() int {
	return s.session.RowLine()
}

// Separator returns the row separator fixed by the input, or SeparatorUnset
// if no row separator has been read yet.
func (s *Scanner) Separator() RowSeparator {
	return s.session.Separator()
}

// Err returns the error, if any, that was encountered during scanning.
// It returns nil if no error occurred or at EOF.
func (s *Scanner) Err() error {
	return s.err
}

// Close releases the scanner's buffer. Scan returns false afterwards.
func (s *Scanner) Close() {
	s.done = true
	s.row = nil
	s.session.Close()
}

// Reset discards all state, headers included, and starts over on reader
// with the same options. The buffer allocation is reused when possible.
func (s *Scanner) Reset(reader io.Reader) {
	s.session.Reset(lexer.NewReaderSource(reader))
	s.headers = nil
	s.row = nil
	s.err = nil
	s.done = false
}

// All returns an iterator over the remaining records. Check Err after the
// loop ends.
//
// Example:
//
//	for rec := range scanner.All() {
//	    fmt.Println(rec.Strings())
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
func (s *Scanner) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for s.Scan() {
			if !yield(s.Record()) {
				return
			}
		}
	}
}

// headerNames turns a header row into column names. Absent fields become "".
func headerNames(row Row, convert HeaderConverter) []string {
	names := row.Strings()
	if convert != nil {
		for i, name := range names {
			names[i] = convert(name)
		}
	}
	return names
}
