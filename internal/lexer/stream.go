package lexer

import (
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// StreamSource feeds a Session from a shape-core tokenizer stream.
// Byte streams are copied byte for byte; rune streams are re-encoded as UTF-8.
type StreamSource struct {
	stream  tokenizer.Stream
	pending []byte // tail of a rune that did not fit the last Fill
}

// NewStreamSource returns a Source reading from stream.
func NewStreamSource(stream tokenizer.Stream) *StreamSource {
	return &StreamSource{stream: stream}
}

// Fill implements Source.
func (s *StreamSource) Fill(dst []byte) (int, error) {
	if bs, ok := s.stream.(tokenizer.ByteStream); ok {
		return fillBytes(bs, dst), nil
	}
	return s.fillRunes(dst), nil
}

func fillBytes(stream tokenizer.ByteStream, dst []byte) int {
	n := 0
	for n < len(dst) {
		b, ok := stream.PeekByte()
		if !ok {
			break
		}
		stream.NextByte()
		dst[n] = b
		n++
	}
	return n
}

func (s *StreamSource) fillRunes(dst []byte) int {
	n := copy(dst, s.pending)
	s.pending = s.pending[n:]
	var enc [utf8.UTFMax]byte
	for n < len(dst) {
		r, ok := s.stream.PeekChar()
		if !ok {
			break
		}
		s.stream.NextChar()
		w := utf8.EncodeRune(enc[:], r)
		c := copy(dst[n:], enc[:w])
		n += c
		if c < w {
			s.pending = append(s.pending[:0], enc[c:w]...)
		}
	}
	return n
}
