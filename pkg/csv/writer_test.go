package csv_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shapestone/shape-fastcsv/pkg/csv"
)

func TestWriter(t *testing.T) {
	tests := []struct {
		name string
		rows []csv.Row
		want string
	}{
		{
			name: "plain",
			rows: []csv.Row{{csv.Text("a"), csv.Text("b")}},
			want: "a,b\n",
		},
		{
			name: "absent versus empty",
			rows: []csv.Row{{csv.Text("a"), csv.Nil(), csv.Text("")}},
			want: "a,,\"\"\n",
		},
		{
			name: "embedded quote",
			rows: []csv.Row{{csv.Text(`say "hi"`)}},
			want: "\"say \"\"hi\"\"\"\n",
		},
		{
			name: "embedded delimiter and line breaks",
			rows: []csv.Row{{csv.Text("a,b"), csv.Text("c\nd"), csv.Text("e\rf")}},
			want: "\"a,b\",\"c\nd\",\"e\rf\"\n",
		},
		{
			name: "single absent field is a blank line",
			rows: []csv.Row{{csv.Nil()}},
			want: "\n",
		},
		{
			name: "leading space kept as is",
			rows: []csv.Row{{csv.Text(" x ")}},
			want: " x \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			w := csv.NewWriter(&sb)
			if err := w.WriteAll(tt.rows); err != nil {
				t.Fatalf("WriteAll() error = %v", err)
			}
			if sb.String() != tt.want {
				t.Errorf("output = %q, want %q", sb.String(), tt.want)
			}
		})
	}
}

func TestWriterWithOptions(t *testing.T) {
	var sb strings.Builder
	w, err := csv.NewWriterWithOptions(&sb, csv.WriterOptions{Comma: ';', Quote: '\'', UseCRLF: true})
	if err != nil {
		t.Fatalf("NewWriterWithOptions() error = %v", err)
	}
	if err := w.Write(csv.Row{csv.Text("it's"), csv.Text("a;b"), csv.Text(`"`)}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "'it''s';'a;b';\"\r\n"
	if sb.String() != want {
		t.Errorf("output = %q, want %q", sb.String(), want)
	}

	opts := csv.DefaultOptions()
	opts.FieldSep = ";"
	opts.QuoteChar = "'"
	rows, err := csv.ParseWithOptions(sb.String(), opts)
	if err != nil {
		t.Fatalf("reparse error = %v", err)
	}
	if got := rows[0].Strings(); len(got) != 3 || got[0] != "it's" || got[1] != "a;b" || got[2] != `"` {
		t.Errorf("reparsed = %q", got)
	}
}

func TestWriterOptions_Validate(t *testing.T) {
	tests := []struct {
		name      string
		opts      csv.WriterOptions
		wantField string
	}{
		{name: "default", opts: csv.DefaultWriterOptions()},
		{name: "tab", opts: csv.WriterOptions{Comma: '\t', Quote: '"'}},
		{name: "zero comma", opts: csv.WriterOptions{Quote: '"'}, wantField: "Comma"},
		{name: "newline comma", opts: csv.WriterOptions{Comma: '\n', Quote: '"'}, wantField: "Comma"},
		{name: "cr quote", opts: csv.WriterOptions{Comma: ',', Quote: '\r'}, wantField: "Quote"},
		{name: "same", opts: csv.WriterOptions{Comma: ',', Quote: ','}, wantField: "Quote"},
		{name: "invalid rune", opts: csv.WriterOptions{Comma: 0xD800, Quote: '"'}, wantField: "Comma"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			var oe *csv.OptionsError
			if !errors.As(err, &oe) || oe.Field != tt.wantField {
				t.Errorf("Validate() error = %v, want OptionsError on %s", err, tt.wantField)
			}
		})
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_FlushError(t *testing.T) {
	w := csv.NewWriter(failWriter{})
	if err := w.WriteAll([]csv.Row{{csv.Text("a")}}); err == nil {
		t.Error("WriteAll() error = nil, want the underlying write error")
	}
}
