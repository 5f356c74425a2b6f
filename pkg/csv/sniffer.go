// Package csv provides CSV dialect detection and header sniffing.
package csv

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shapestone/shape-fastcsv/internal/tokenizer"
)

// Sniffer detects a CSV dialect from a sample: delimiter, quote character,
// row separator and whether the first row is a header.
//
// Example:
//
//	sample := make([]byte, 4096)
//	n, _ := io.ReadFull(file, sample)
//	opts := csv.NewSniffer(string(sample[:n])).Options()
type Sniffer struct {
	sample    string
	delimiter rune
	quote     rune
	rowSep    RowSeparator
	hasHeader bool
	analyzed  bool
}

var (
	candidateDelimiters = []rune{',', '\t', ';', '|'}
	candidateQuotes     = []rune{'"', '\''}

	headerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),      // snake_case or identifier
		regexp.MustCompile(`^[a-zA-Z]+[A-Z][a-zA-Z]*$`),     // camelCase
		regexp.MustCompile(`^[A-Z][a-z]+([ ][A-Z][a-z]+)*$`), // Title Case
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	}
)

// NewSniffer creates a new Sniffer with a sample of CSV data.
// For best results, provide at least 2-3 lines of data. The sample may end
// in the middle of a row.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

// analyze performs dialect detection on the sample.
func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.quote = s.detectQuote()
	s.delimiter = s.detectDelimiter()
	s.rowSep = s.detectRowSeparator()
	s.hasHeader = s.detectHeader()
	s.analyzed = true
}

// DetectDelimiter returns the detected field delimiter.
// Common delimiters checked: comma, tab, semicolon, pipe.
func (s *Sniffer) DetectDelimiter() rune {
	s.analyze()
	return s.delimiter
}

// DetectQuote returns the detected quote character, '"' or '\''.
func (s *Sniffer) DetectQuote() rune {
	s.analyze()
	return s.quote
}

// DetectRowSeparator returns the first row separator outside quotes, or
// SeparatorUnset if the sample holds none.
func (s *Sniffer) DetectRowSeparator() RowSeparator {
	s.analyze()
	return s.rowSep
}

// HasHeader returns true if the first row appears to be a header.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// Options returns DefaultOptions adjusted to the detected dialect.
func (s *Sniffer) Options() Options {
	s.analyze()
	opts := DefaultOptions()
	opts.FieldSep = string(s.delimiter)
	opts.QuoteChar = string(s.quote)
	return opts
}

// tokens walks the sample in the given dialect, reporting each token and
// whether it sits inside a quoted field.
func (s *Sniffer) tokens(delim, quote rune, fn func(kind, value string, inQuotes bool) bool) {
	tok := tokenizer.NewTokenizerWithOptions(tokenizer.Options{Comma: delim, Quote: quote})
	tok.Initialize(s.sample)
	inQuotes := false
	for {
		t, ok := tok.NextToken()
		if !ok {
			return
		}
		if t.Kind() == tokenizer.TokenQuote {
			inQuotes = !inQuotes
		}
		if !fn(t.Kind(), t.ValueString(), inQuotes) {
			return
		}
	}
}

// detectQuote picks the candidate that most often opens a field.
func (s *Sniffer) detectQuote() rune {
	best, bestScore := '"', 0
	for _, q := range candidateQuotes {
		score := 0
		fieldStart := true
		s.tokens(',', q, func(kind, value string, inQuotes bool) bool {
			switch kind {
			case tokenizer.TokenQuote:
				// inQuotes already accounts for this quote.
				if inQuotes && fieldStart {
					score++
				}
				fieldStart = false
			case tokenizer.TokenComma, tokenizer.TokenNewline:
				fieldStart = !inQuotes
			default:
				// Fields may also be split by a delimiter other than comma.
				fieldStart = !inQuotes && strings.ContainsAny(value[len(value)-1:], "\t;|")
			}
			return true
		})
		if score > bestScore {
			best, bestScore = q, score
		}
	}
	return best
}

// detectDelimiter scores each candidate by how consistently it splits the
// sample's lines, ignoring quoted sections.
func (s *Sniffer) detectDelimiter() rune {
	if s.sample == "" {
		return ','
	}

	scores := make(map[rune]int)
	for _, delim := range candidateDelimiters {
		counts := s.delimiterCounts(delim)

		// Score based on consistency across lines
		if len(counts) > 0 && counts[0] > 0 {
			consistent := true
			for i := 1; i < len(counts); i++ {
				if counts[i] != counts[0] {
					consistent = false
					break
				}
			}
			if consistent {
				scores[delim] = counts[0] * 10 // Bonus for consistency
			} else {
				scores[delim] = counts[0]
			}
		}
	}

	// Return delimiter with highest score; ties go to the earlier candidate.
	best := ','
	bestScore := 0
	for _, delim := range candidateDelimiters {
		if score := scores[delim]; score > bestScore {
			best = delim
			bestScore = score
		}
	}
	return best
}

// delimiterCounts returns, per non-blank line, how many times delim occurs
// outside quotes.
func (s *Sniffer) delimiterCounts(delim rune) []int {
	var counts []int
	count, blank := 0, true
	s.tokens(delim, s.quote, func(kind, _ string, inQuotes bool) bool {
		switch {
		case kind == tokenizer.TokenNewline && !inQuotes:
			if !blank {
				counts = append(counts, count)
			}
			count, blank = 0, true
		case kind == tokenizer.TokenComma && !inQuotes:
			count++
			blank = false
		default:
			blank = false
		}
		return true
	})
	if !blank {
		counts = append(counts, count)
	}
	return counts
}

// detectRowSeparator returns the first newline token outside quotes.
func (s *Sniffer) detectRowSeparator() RowSeparator {
	sep := SeparatorUnset
	s.tokens(s.delimiter, s.quote, func(kind, value string, inQuotes bool) bool {
		if kind != tokenizer.TokenNewline || inQuotes {
			return true
		}
		switch value {
		case "\r\n":
			sep = SeparatorCRLF
		case "\r":
			sep = SeparatorCR
		default:
			sep = SeparatorLF
		}
		return false
	})
	return sep
}

// detectHeader uses heuristics to determine if first row is a header.
func (s *Sniffer) detectHeader() bool {
	opts := DefaultOptions()
	opts.FieldSep = string(s.delimiter)
	opts.QuoteChar = string(s.quote)
	opts.BufferSize = 512

	// The sample may stop mid-row, so only complete leading rows are used.
	scanner, err := NewScannerWithOptions(strings.NewReader(s.sample), opts)
	if err != nil {
		return false
	}
	defer scanner.Close()
	var rows []Row
	for len(rows) < 2 && scanner.Scan() {
		rows = append(rows, scanner.Row())
	}
	if len(rows) < 2 {
		return false // Need at least 2 rows to compare
	}

	// Heuristics:
	// 1. Headers are typically non-numeric
	// 2. Headers often contain underscores or are camelCase
	// 3. Headers don't usually contain special characters like @ or #
	headerScore := 0
	dataScore := 0
	for _, field := range rows[0].Strings() {
		field = strings.TrimSpace(field)
		if isLikelyHeader(field) {
			headerScore++
		}
		if isLikelyData(field) {
			dataScore++
		}
	}
	return headerScore > dataScore
}

// isLikelyHeader checks if a field looks like a header name.
func isLikelyHeader(s string) bool {
	if s == "" || isNumeric(s) {
		return false
	}
	for _, pattern := range headerPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isLikelyData checks if a field looks like data rather than a header.
func isLikelyData(s string) bool {
	if s == "" {
		return false
	}
	if isNumeric(s) || strings.Contains(s, "@") {
		return true
	}
	for _, pattern := range datePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isNumeric checks if a string represents a number.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	// Allow leading minus for negative numbers
	if s[0] == '-' {
		s = s[1:]
	}

	hasDot := false
	for _, ch := range s {
		if ch == '.' {
			if hasDot {
				return false
			}
			hasDot = true
		} else if !unicode.IsDigit(ch) {
			return false
		}
	}
	return len(s) > 0
}

// HeaderConverter is a function that transforms header names.
type HeaderConverter func(string) string

// LowercaseHeader converts headers to lowercase.
func LowercaseHeader(s string) string {
	return strings.ToLower(s)
}

// UppercaseHeader converts headers to uppercase.
func UppercaseHeader(s string) string {
	return strings.ToUpper(s)
}

// SnakeCaseHeader converts headers to snake_case.
func SnakeCaseHeader(s string) string {
	var result strings.Builder
	prevWasSpace := false
	for i, ch := range s {
		if ch == ' ' {
			if result.Len() > 0 && !prevWasSpace {
				result.WriteRune('_')
			}
			prevWasSpace = true
			continue
		}
		if unicode.IsUpper(ch) && i > 0 && !prevWasSpace {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(ch))
		prevWasSpace = false
	}
	return result.String()
}
