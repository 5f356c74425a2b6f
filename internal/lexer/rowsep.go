package lexer

import "fmt"

// RowSeparator is the byte sequence that ends a record.
type RowSeparator uint8

const (
	// SeparatorUnset means no record boundary has been seen yet.
	SeparatorUnset RowSeparator = iota
	// SeparatorLF is a bare "\n".
	SeparatorLF
	// SeparatorCR is a bare "\r".
	SeparatorCR
	// SeparatorCRLF is "\r\n".
	SeparatorCRLF
)

// String returns the escaped form of the separator.
func (s RowSeparator) String() string {
	switch s {
	case SeparatorUnset:
		return "unset"
	case SeparatorLF:
		return `\n`
	case SeparatorCR:
		return `\r`
	case SeparatorCRLF:
		return `\r\n`
	default:
		return fmt.Sprintf("RowSeparator(%d)", s)
	}
}

// Bytes returns the separator's byte sequence, or nil while unset.
func (s RowSeparator) Bytes() []byte {
	switch s {
	case SeparatorLF:
		return []byte{'\n'}
	case SeparatorCR:
		return []byte{'\r'}
	case SeparatorCRLF:
		return []byte{'\r', '\n'}
	default:
		return nil
	}
}

// separatorOf classifies a record boundary span.
func separatorOf(span []byte) RowSeparator {
	switch {
	case len(span) == 2 && span[0] == '\r' && span[1] == '\n':
		return SeparatorCRLF
	case len(span) == 1 && span[0] == '\r':
		return SeparatorCR
	case len(span) == 1 && span[0] == '\n':
		return SeparatorLF
	default:
		return SeparatorUnset
	}
}

// rowSepPolicy fixes the first record separator of an input and rejects any
// later boundary whose bytes differ from it.
type rowSepPolicy struct {
	fixed RowSeparator
}

// accept checks a recognized boundary span against the fixed separator,
// capturing it if this is the first boundary.
func (p *rowSepPolicy) accept(span []byte) bool {
	sep := separatorOf(span)
	if p.fixed == SeparatorUnset {
		p.fixed = sep
		return sep != SeparatorUnset
	}
	return sep == p.fixed
}

func (p *rowSepPolicy) reset() {
	p.fixed = SeparatorUnset
}
