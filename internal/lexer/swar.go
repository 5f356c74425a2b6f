package lexer

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// SIMD Within A Register helpers. An 8-byte word is loaded little-endian and
// compared against a broadcast of each special byte in parallel.
const (
	loMask = 0x0101010101010101
	hiMask = 0x8080808080808080

	crWord = '\r' * loMask
	lfWord = '\n' * loMask
)

// zeroBytes sets the high bit of every zero byte in x. Bits above the first
// zero byte may be false positives, so only the lowest set bit is exact.
func zeroBytes(x uint64) uint64 {
	return (x - loMask) &^ x & hiMask
}

// runScanner skips spans the machine would walk through without acting.
type runScanner struct {
	sep, quote         byte
	sepWord, quoteWord uint64
}

func newRunScanner(sep, quote byte) runScanner {
	return runScanner{
		sep:       sep,
		quote:     quote,
		sepWord:   uint64(sep) * loMask,
		quoteWord: uint64(quote) * loMask,
	}
}

// plainRun returns the length of the leading run of data that holds no
// separator, quote, CR or LF.
func (r *runScanner) plainRun(data []byte) int {
	i := 0
	for ; i+8 <= len(data); i += 8 {
		w := binary.LittleEndian.Uint64(data[i:])
		m := zeroBytes(w^r.sepWord) | zeroBytes(w^r.quoteWord) |
			zeroBytes(w^crWord) | zeroBytes(w^lfWord)
		if m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
	}
	for ; i < len(data); i++ {
		c := data[i]
		if c == r.sep || c == r.quote || c == '\r' || c == '\n' {
			return i
		}
	}
	return len(data)
}

// quotedRun returns the length of the leading run of data that holds no quote.
func (r *runScanner) quotedRun(data []byte) int {
	if i := bytes.IndexByte(data, r.quote); i >= 0 {
		return i
	}
	return len(data)
}
