package lexer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMapFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.csv")

	content := []byte("a,b,c\nd,\"e\nf\",g\n")
	if err := os.WriteFile(testFile, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	m, err := MapFile(testFile)
	if err != nil {
		t.Fatalf("MapFile() error = %v", err)
	}
	if m.Len() != len(content) {
		t.Errorf("Len() = %d, want %d", m.Len(), len(content))
	}

	rows, err := collect(t, m.Source(), DefaultConfig())
	if err != nil {
		t.Fatalf("collect() error = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// Rows are copies and outlive the mapping.
	want := []Row{
		{text("a"), text("b"), text("c")},
		{text("d"), text("e\nf"), text("g")},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %#v, want %#v", rows, want)
	}
}

func TestMapFile_EmptyFile(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(testFile, nil, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	m, err := MapFile(testFile)
	if err != nil {
		t.Fatalf("MapFile() error = %v", err)
	}
	defer m.Close()
	if m.Len() != 0 {
		t.Errorf("Len() = %d for empty file", m.Len())
	}
	rows, err := collect(t, m.Source(), DefaultConfig())
	if err != nil || len(rows) != 0 {
		t.Errorf("collect() = %v, %v; want no rows", rows, err)
	}
}

func TestMapFile_NonexistentFile(t *testing.T) {
	if _, err := MapFile("/nonexistent/file.csv"); err == nil {
		t.Error("MapFile() expected error for nonexistent file")
	}
}
