// Package csv provides a user-friendly DOM API for CSV manipulation.
//
// # Document Type
//
// Document represents a CSV file with optional headers and data records:
//
//	doc := csv.NewDocument().
//		SetHeaders([]string{"name", "age"}).
//		AddRecord([]string{"Alice", "30"}).
//		AddRow(csv.Row{csv.Text("Bob"), csv.Nil()})
//
// # Record Type
//
// Record represents a single row with access by index or header name:
//
//	record, _ := doc.GetRecord(0)
//	name, _ := record.Get(0)           // Get by index
//	age, ok := record.GetByName("age") // ok is false for an absent field
//
// # Round-trip Support
//
// Parse CSV and render back to CSV. Absent and empty fields survive the
// round trip:
//
//	doc, _ := csv.ParseDocument("name,age\nAlice,\nBob,\"\"\n")
//	csvStr, _ := doc.CSV()
package csv

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Document represents a CSV file with a fluent API for manipulation.
// All setter methods return *Document to enable method chaining.
type Document struct {
	headers []string
	rows    []Row
}

// Record represents a single row of a CSV file.
// It provides access to field values by index or by header name.
type Record struct {
	fields  Row
	headers []string // Reference to document headers for name-based access
}

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	return &Document{
		headers: []string{},
		rows:    make([]Row, 0),
	}
}

// ParseDocument parses a CSV string into a Document.
// All rows become data records; use SetHeaders or ParseDocumentWithHeaders
// to name the columns.
func ParseDocument(input string) (*Document, error) {
	rows, err := Parse(input)
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	doc.rows = rows
	return doc, nil
}

// ParseDocumentWithHeaders parses a CSV string whose first row names the columns.
//
// Example:
//
//	doc, err := csv.ParseDocumentWithHeaders("name,age\nAlice,30", csv.DefaultOptions())
//	rec, _ := doc.GetRecord(0)
//	age, _ := rec.GetByName("age") // "30"
func ParseDocumentWithHeaders(input string, opts Options) (*Document, error) {
	rows, err := ParseWithOptions(input, opts)
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	if len(rows) > 0 {
		doc.headers = headerNames(rows[0], nil)
		doc.rows = rows[1:]
	}
	return doc, nil
}

// SetHeaders sets the column headers for this CSV document.
// Headers are used by Record.GetByName() to access fields by name.
// Returns the Document for method chaining.
func (d *Document) SetHeaders(headers []string) *Document {
	d.headers = headers
	return d
}

// AddRecord adds a record whose fields are all present.
// Returns the Document for method chaining.
func (d *Document) AddRecord(fields []string) *Document {
	row := make(Row, len(fields))
	for i, f := range fields {
		row[i] = Text(f)
	}
	return d.AddRow(row)
}

// AddRow adds a row as is, absent fields included.
// Returns the Document for method chaining.
func (d *Document) AddRow(row Row) *Document {
	d.rows = append(d.rows, row)
	return d
}

// Headers returns the column headers.
// Returns an empty slice if no headers have been set.
func (d *Document) Headers() []string {
	return d.headers
}

// Rows returns the data rows.
func (d *Document) Rows() []Row {
	return d.rows
}

// Records returns all data records as Record objects.
func (d *Document) Records() []Record {
	records := make([]Record, len(d.rows))
	for i, row := range d.rows {
		records[i] = Record{fields: row, headers: d.headers}
	}
	return records
}

// RecordCount returns the number of data records in the document.
// This does not include the header row.
func (d *Document) RecordCount() int {
	return len(d.rows)
}

// GetRecord returns the record at the specified index.
// Returns (Record, false) if the index is out of bounds.
// Index is 0-based (0 = first data record, not the header).
func (d *Document) GetRecord(index int) (Record, bool) {
	if index < 0 || index >= len(d.rows) {
		return Record{}, false
	}
	return Record{fields: d.rows[index], headers: d.headers}, true
}

// CSV renders the Document back to a CSV string: headers, if set, then
// every data row.
func (d *Document) CSV() (string, error) {
	var sb strings.Builder
	w := NewWriter(&sb)
	if len(d.headers) > 0 {
		header := make(Row, len(d.headers))
		for i, h := range d.headers {
			header[i] = Text(h)
		}
		if err := w.Write(header); err != nil {
			return "", err
		}
	}
	if err := w.WriteAll(d.rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Get returns the text of the field at index.
// ok is false if the index is out of bounds or the field is absent.
func (r Record) Get(index int) (value string, ok bool) {
	return r.Field(index).Value()
}

// Field returns the field at index, or an absent field if the index is out of bounds.
func (r Record) Field(index int) Field {
	if index < 0 || index >= len(r.fields) {
		return Nil()
	}
	return r.fields[index]
}

// GetByName returns the text of the field under the header name.
// ok is false if no such header exists, no headers are set, or the field is absent.
func (r Record) GetByName(name string) (string, bool) {
	for i, header := range r.headers {
		if header == name {
			return r.Get(i)
		}
	}
	return "", false
}

// Row returns the record's fields.
func (r Record) Row() Row {
	return r.fields
}

// Strings returns all field values, with absent fields as "".
func (r Record) Strings() []string {
	return r.fields.Strings()
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.fields)
}

// ToAST converts the Document to an AST ArrayDataNode. Headers, if set,
// become the first record. Absent fields are literals with a nil value.
func (d *Document) ToAST() (*ast.ArrayDataNode, error) {
	allRecords := make([]ast.SchemaNode, 0, len(d.rows)+1)
	if len(d.headers) > 0 {
		headerNodes := make([]ast.SchemaNode, len(d.headers))
		for i, h := range d.headers {
			headerNodes[i] = ast.NewLiteralNode(h, ast.ZeroPosition())
		}
		allRecords = append(allRecords, ast.NewArrayDataNode(headerNodes, ast.ZeroPosition()))
	}
	for _, row := range d.rows {
		allRecords = append(allRecords, rowNode(row, ast.ZeroPosition()))
	}
	return ast.NewArrayDataNode(allRecords, ast.ZeroPosition()), nil
}

// FromAST creates a Document from an AST ArrayDataNode such as ParseAST returns.
func FromAST(node ast.SchemaNode) (*Document, error) {
	arrayNode, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	doc := NewDocument()
	for _, elem := range arrayNode.Elements() {
		row, err := nodeRow(elem)
		if err != nil {
			return nil, err
		}
		doc.AddRow(row)
	}
	return doc, nil
}
