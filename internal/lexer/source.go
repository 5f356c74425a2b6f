package lexer

import (
	"errors"
	"io"
	"unsafe"
)

// Source supplies input bytes to a Session.
//
// Fill copies up to len(dst) bytes into dst. Returning fewer than len(dst)
// bytes means the input is exhausted, and Fill is not called again.
type Source interface {
	Fill(dst []byte) (int, error)
}

// payloadSource is implemented by sources whose whole input is already in
// memory. The session scans such a payload in place instead of copying it.
type payloadSource interface {
	Payload() []byte
}

// ReaderSource adapts an io.Reader to the Source contract.
// io.Reader may return short reads at any time, so Fill keeps reading until
// dst is full or the reader reports EOF.
type ReaderSource struct {
	r io.Reader
}

// NewReaderSource returns a Source reading from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// Fill implements Source.
func (s *ReaderSource) Fill(dst []byte) (int, error) {
	n, err := io.ReadFull(s.r, dst)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}
	return n, err
}

// BytesSource presents an in-memory payload.
type BytesSource struct {
	data []byte
}

// NewBytesSource returns a Source over data. The session never writes to data.
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{data: data}
}

// NewStringSource returns a Source over s without copying it.
func NewStringSource(s string) *BytesSource {
	return &BytesSource{data: unsafe.Slice(unsafe.StringData(s), len(s))}
}

// Fill implements Source for callers that drive a BytesSource by hand.
func (s *BytesSource) Fill(dst []byte) (int, error) {
	n := copy(dst, s.data)
	s.data = s.data[n:]
	return n, nil
}

// Payload hands the remaining input to the session in one shot.
func (s *BytesSource) Payload() []byte {
	data := s.data
	s.data = nil
	return data
}
