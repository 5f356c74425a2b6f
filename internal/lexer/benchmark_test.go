package lexer

import (
	"bytes"
	"io"
	"testing"
)

var (
	// Medium CSV: 100 rows x 10 columns of unquoted data
	mediumCSV = generateCSV(100, 10, false)

	// Large CSV: 10000 rows x 10 columns of unquoted data
	largeCSV = generateCSV(10000, 10, false)

	// Quoted CSV: 1000 rows x 10 columns with quoted fields
	quotedCSV = generateCSV(1000, 10, true)
)

func generateCSV(rows, cols int, quoted bool) []byte {
	var buf bytes.Buffer
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				buf.WriteByte(',')
			}
			if quoted {
				buf.WriteString(`"field ""x"", value"`)
			} else {
				buf.WriteString("field_value")
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func benchmarkSession(b *testing.B, data []byte, src func() Source) {
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	s, err := NewSession(nil, DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		s.Reset(src())
		for {
			if _, err := s.Next(); err == io.EOF {
				break
			} else if err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkSession_Medium(b *testing.B) {
	benchmarkSession(b, mediumCSV, func() Source { return NewBytesSource(mediumCSV) })
}

func BenchmarkSession_Large(b *testing.B) {
	benchmarkSession(b, largeCSV, func() Source { return NewBytesSource(largeCSV) })
}

func BenchmarkSession_LargeReader(b *testing.B) {
	benchmarkSession(b, largeCSV, func() Source { return NewReaderSource(bytes.NewReader(largeCSV)) })
}

func BenchmarkSession_Quoted(b *testing.B) {
	benchmarkSession(b, quotedCSV, func() Source { return NewBytesSource(quotedCSV) })
}
