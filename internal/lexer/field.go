package lexer

// Field is one optional text value of a row.
//
// An unquoted zero-length field is absent (nil). A quoted empty field ("")
// is present with an empty value. The zero Field is nil.
type Field struct {
	value string
	ok    bool
}

// NilField returns the absent field produced by an empty unquoted field.
func NilField() Field {
	return Field{}
}

// TextField returns a present field holding s.
func TextField(s string) Field {
	return Field{value: s, ok: true}
}

// Value returns the field text and whether the field is present.
func (f Field) Value() (string, bool) {
	return f.value, f.ok
}

// IsNil reports whether the field is absent.
func (f Field) IsNil() bool {
	return !f.ok
}

// String returns the field text, or "" for an absent field.
func (f Field) String() string {
	return f.value
}

// GoString renders nil fields distinctly so test failures stay readable.
func (f Field) GoString() string {
	if !f.ok {
		return "nil"
	}
	return "\"" + f.value + "\""
}

// Row is an ordered sequence of fields; index order is column order.
type Row []Field

// Strings returns the row's values, mapping absent fields to "".
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.value
	}
	return out
}
