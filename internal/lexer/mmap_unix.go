//go:build unix

package lexer

import (
	"fmt"
	"os"
	"syscall"
)

// MappedFile is a file mapped read-only into memory.
type MappedFile struct {
	data []byte
	f    *os.File
}

// MapFile memory-maps a file for reading. The OS pages the data in as the
// session scans it, so a large file is never copied into the token buffer.
//
//	m, err := MapFile("large.csv")
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//	s, err := NewSession(m.Source(), DefaultConfig())
//
// Rows stay valid after Close; the mapped bytes do not.
func MapFile(filename string) (*MappedFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := stat.Size()
	if size == 0 {
		return &MappedFile{data: []byte{}, f: f}, nil
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file: %w", err)
	}
	return &MappedFile{data: data, f: f}, nil
}

// Len returns the file size.
func (m *MappedFile) Len() int {
	return len(m.data)
}

// Source returns a Source scanning the mapping in place.
func (m *MappedFile) Source() Source {
	return NewBytesSource(m.data)
}

// Close unmaps the file and closes it.
func (m *MappedFile) Close() error {
	var err error
	if len(m.data) > 0 {
		err = syscall.Munmap(m.data)
	}
	m.data = nil
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
