//go:build !unix

package lexer

import (
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

// MappedFile is a file mapped read-only into memory. The mapping is read
// through its io.ReaderAt, so the session copies each chunk into its buffer.
type MappedFile struct {
	r *mmap.ReaderAt
}

// MapFile memory-maps a file for reading.
func MapFile(filename string) (*MappedFile, error) {
	r, err := mmap.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap file: %w", err)
	}
	return &MappedFile{r: r}, nil
}

// Len returns the file size.
func (m *MappedFile) Len() int {
	return m.r.Len()
}

// Source returns a Source reading the mapping from the start.
func (m *MappedFile) Source() Source {
	return NewReaderSource(io.NewSectionReader(m.r, 0, int64(m.r.Len())))
}

// Close unmaps the file.
func (m *MappedFile) Close() error {
	return m.r.Close()
}
