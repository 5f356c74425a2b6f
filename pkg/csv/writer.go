package csv

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// Writer writes rows as CSV.
//
// An absent field is written as nothing and a present empty field as two
// quotes, so parsing the output gives back the same rows. A row made of one
// absent field (or no fields) is written as a blank line, which reads back
// as no row at all.
//
//	w := csv.NewWriter(os.Stdout)
//	w.Write(csv.Row{csv.Text("a"), csv.Nil(), csv.Text("")})
//	w.Flush()
//	// a,,""
type Writer struct {
	w          *bufio.Writer
	comma      rune
	quote      rune
	lineEnding string
	specials   string // bytes that force quoting, besides the delimiter and quote
}

// NewWriter returns a Writer with DefaultWriterOptions.
func NewWriter(w io.Writer) *Writer {
	cw, _ := NewWriterWithOptions(w, DefaultWriterOptions())
	return cw
}

// NewWriterWithOptions returns a Writer with custom options.
func NewWriterWithOptions(w io.Writer, opts WriterOptions) (*Writer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	lineEnding := "\n"
	if opts.UseCRLF {
		lineEnding = "\r\n"
	}
	return &Writer{
		w:          bufio.NewWriter(w),
		comma:      opts.Comma,
		quote:      opts.Quote,
		lineEnding: lineEnding,
		specials:   "\r\n" + string(opts.Comma) + string(opts.Quote),
	}, nil
}

// Write writes one row followed by the line ending. Output is buffered;
// call Flush to push it to the underlying writer.
func (w *Writer) Write(row Row) error {
	for i, f := range row {
		if i > 0 {
			if _, err := w.w.WriteRune(w.comma); err != nil {
				return err
			}
		}
		v, ok := f.Value()
		if !ok {
			continue
		}
		if err := w.writeField(v); err != nil {
			return err
		}
	}
	_, err := w.w.WriteString(w.lineEnding)
	return err
}

// WriteAll writes rows and flushes.
func (w *Writer) WriteAll(rows []Row) error {
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// writeField writes a present value, quoting it when it is empty or holds
// the delimiter, the quote, CR or LF. Embedded quotes are doubled.
func (w *Writer) writeField(v string) error {
	if v != "" && !strings.ContainsAny(v, w.specials) {
		_, err := w.w.WriteString(v)
		return err
	}
	if _, err := w.w.WriteRune(w.quote); err != nil {
		return err
	}
	for len(v) > 0 {
		i := strings.IndexRune(v, w.quote)
		if i < 0 {
			i = len(v)
		}
		if _, err := w.w.WriteString(v[:i]); err != nil {
			return err
		}
		v = v[i:]
		if len(v) > 0 {
			// Double the quote.
			if _, err := w.w.WriteRune(w.quote); err != nil {
				return err
			}
			if _, err := w.w.WriteRune(w.quote); err != nil {
				return err
			}
			v = v[utf8.RuneLen(w.quote):]
		}
	}
	_, err := w.w.WriteRune(w.quote)
	return err
}
