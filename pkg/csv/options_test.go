package csv_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shapestone/shape-fastcsv/pkg/csv"
)

func TestDefaultOptions(t *testing.T) {
	opts := csv.DefaultOptions()
	if opts.QuoteChar != `"` {
		t.Errorf("QuoteChar = %q, want %q", opts.QuoteChar, `"`)
	}
	if opts.FieldSep != "," {
		t.Errorf("FieldSep = %q, want %q", opts.FieldSep, ",")
	}
	if opts.BufferSize != csv.DefaultBufferSize {
		t.Errorf("BufferSize = %d, want %d", opts.BufferSize, csv.DefaultBufferSize)
	}
	if opts.MaxBufferSize != 0 || opts.Encoding != nil || opts.RawRows {
		t.Errorf("DefaultOptions() = %+v, want unbounded, unencoded, no raw rows", opts)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*csv.Options)
		wantField string
	}{
		{name: "default", modify: func(*csv.Options) {}},
		{name: "tab separator", modify: func(o *csv.Options) { o.FieldSep = "\t" }},
		{name: "bounded", modify: func(o *csv.Options) { o.MaxBufferSize = 1 << 20 }},
		{name: "empty quote", modify: func(o *csv.Options) { o.QuoteChar = "" }, wantField: "QuoteChar"},
		{name: "multi-byte quote", modify: func(o *csv.Options) { o.QuoteChar = "«" }, wantField: "QuoteChar"},
		{name: "empty separator", modify: func(o *csv.Options) { o.FieldSep = "" }, wantField: "FieldSep"},
		{name: "two byte separator", modify: func(o *csv.Options) { o.FieldSep = "::" }, wantField: "FieldSep"},
		{name: "zero buffer", modify: func(o *csv.Options) { o.BufferSize = 0 }, wantField: "BufferSize"},
		{name: "negative max", modify: func(o *csv.Options) { o.MaxBufferSize = -1 }, wantField: "MaxBufferSize"},
		{
			name: "max below initial",
			modify: func(o *csv.Options) {
				o.BufferSize = 64
				o.MaxBufferSize = 32
			},
			wantField: "MaxBufferSize",
		},
		{name: "lf quote", modify: func(o *csv.Options) { o.QuoteChar = "\n" }, wantField: "QuoteChar"},
		{name: "cr separator", modify: func(o *csv.Options) { o.FieldSep = "\r" }, wantField: "FieldSep"},
		{name: "separator equals quote", modify: func(o *csv.Options) { o.FieldSep = `"` }, wantField: "FieldSep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := csv.DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, csv.ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			var oe *csv.OptionsError
			if !errors.As(err, &oe) {
				t.Fatalf("Validate() error %T is not an *OptionsError", err)
			}
			if oe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", oe.Field, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Error() = %q, should name %s", err.Error(), tt.wantField)
			}
		})
	}
}

func TestOptions_InvalidBeforeRead(t *testing.T) {
	opts := csv.DefaultOptions()
	opts.BufferSize = -5

	read := false
	r := readFunc(func(p []byte) (int, error) {
		read = true
		return 0, nil
	})
	if _, err := csv.ParseReaderWithOptions(r, opts); !errors.Is(err, csv.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
	if read {
		t.Error("input was read despite invalid options")
	}
}

type readFunc func([]byte) (int, error)

func (f readFunc) Read(p []byte) (int, error) { return f(p) }

func TestOptions_MaxBufferSize(t *testing.T) {
	opts := csv.DefaultOptions()
	opts.BufferSize = 8
	opts.MaxBufferSize = 16

	long := strings.Repeat("x", 40)
	_, err := csv.ParseReaderWithOptions(strings.NewReader("ok\n"+long+"\n"), opts)
	if !errors.Is(err, csv.ErrTokenTooLarge) {
		t.Fatalf("error = %v, want ErrTokenTooLarge", err)
	}
	var pe *csv.ParseError
	if !errors.As(err, &pe) || pe.Line != 2 {
		t.Errorf("error = %v, want ParseError on line 2", err)
	}

	rows, err := csv.ParseReaderWithOptions(strings.NewReader("ok\n"+long[:12]+"\n"), opts)
	if err != nil {
		t.Fatalf("field within the limit: %v", err)
	}
	if len(rows) != 2 || rows[1][0].String() != long[:12] {
		t.Errorf("rows = %#v", rows)
	}
}

func TestOptions_OnGrow(t *testing.T) {
	var calls int
	opts := csv.DefaultOptions()
	opts.BufferSize = 4
	opts.OnGrow = func(from, to int) {
		calls++
		if to <= from {
			t.Errorf("OnGrow(%d, %d): buffer did not grow", from, to)
		}
	}
	rows, err := csv.ParseReaderWithOptions(strings.NewReader("\"abcdefghijklmnop\"\n"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0][0].String() != "abcdefghijklmnop" {
		t.Errorf("rows = %#v", rows)
	}
	if calls == 0 {
		t.Error("OnGrow was never called")
	}
}
