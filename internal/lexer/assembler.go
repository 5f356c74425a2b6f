package lexer

import "bytes"

// assembler turns closed tokens into fields and collects them into a row.
type assembler struct {
	quote   byte
	encode  EncodeFunc
	row     Row
	width   int    // field count of the last row, used as a capacity hint
	scratch []byte // unescape target; the token buffer is never written
}

func newAssembler(quote byte, encode EncodeFunc) assembler {
	return assembler{quote: quote, encode: encode}
}

// pushNil appends an absent field.
func (a *assembler) pushNil() {
	a.append(Field{})
}

// pushToken decodes tok and appends it. A quoted token still carries its
// outer quotes.
func (a *assembler) pushToken(tok []byte, quoted bool) error {
	if !quoted {
		if len(tok) == 0 {
			a.pushNil()
			return nil
		}
	} else {
		tok = a.unescape(tok)
	}
	text, err := a.text(tok)
	if err != nil {
		return err
	}
	a.append(TextField(text))
	return nil
}

// unescape strips the outer quotes and collapses each doubled quote.
func (a *assembler) unescape(tok []byte) []byte {
	body := tok[1 : len(tok)-1]
	if bytes.IndexByte(body, a.quote) < 0 {
		return body
	}
	a.scratch = a.scratch[:0]
	for i := 0; i < len(body); i++ {
		c := body[i]
		a.scratch = append(a.scratch, c)
		if c == a.quote {
			i++
		}
	}
	return a.scratch
}

func (a *assembler) text(b []byte) (string, error) {
	if a.encode == nil {
		return string(b), nil
	}
	return a.encode(b)
}

func (a *assembler) append(f Field) {
	if a.row == nil && a.width > 0 {
		a.row = make(Row, 0, a.width)
	}
	a.row = append(a.row, f)
}

// take hands over the collected row, nil if it has no fields.
func (a *assembler) take() Row {
	row := a.row
	a.row = nil
	if len(row) > 0 {
		a.width = len(row)
	}
	return row
}

// discard drops a partial row.
func (a *assembler) discard() {
	a.row = nil
}

func (a *assembler) reset() {
	a.row = nil
	a.width = 0
}
