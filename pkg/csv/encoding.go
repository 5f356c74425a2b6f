package csv

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/shapestone/shape-fastcsv/internal/lexer"
)

// LookupEncoding returns the codec registered under name.
//
// Only ASCII-compatible codecs are offered, because separators and quotes
// are matched as single bytes before a field is decoded. Names are matched
// case-insensitively:
//
//   - "utf-8", "utf8"
//   - "iso-8859-1", "latin1"
//   - "iso-8859-15", "latin9"
//   - "windows-1252", "cp1252"
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "iso-8859-15", "latin9":
		return charmap.ISO8859_15, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, &OptionsError{Field: "Encoding", Reason: fmt.Sprintf("unsupported encoding %q", name)}
	}
}

// encodeFunc adapts enc to the engine's per-field hook. Each call builds its
// own decoder, so the result must stay within one session.
func encodeFunc(enc encoding.Encoding) lexer.EncodeFunc {
	if enc == nil {
		return nil
	}
	dec := enc.NewDecoder()
	return func(b []byte) (string, error) {
		out, err := dec.Bytes(b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}
