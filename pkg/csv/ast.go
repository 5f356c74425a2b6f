package csv

import (
	"errors"
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-fastcsv/internal/lexer"
)

// ParseAST parses CSV into Shape's unified AST.
//
// Returns an *ast.ArrayDataNode for the file whose elements are one
// *ast.ArrayDataNode per row, positioned at the row's first byte. Each field
// is an *ast.LiteralNode holding a string, or nil for an absent field.
//
// Example:
//
//	node, err := csv.ParseAST("name,age\nAlice,30")
//	records := node.(*ast.ArrayDataNode).Elements()
func ParseAST(input string) (ast.SchemaNode, error) {
	return buildAST(lexer.NewStringSource(input), DefaultOptions())
}

// ParseASTWithOptions parses CSV into Shape's unified AST with custom options.
func ParseASTWithOptions(input string, opts Options) (ast.SchemaNode, error) {
	return buildAST(lexer.NewStringSource(input), opts)
}

// ParseReaderAST parses CSV from an io.Reader into Shape's unified AST.
func ParseReaderAST(reader io.Reader) (ast.SchemaNode, error) {
	return buildAST(lexer.NewReaderSource(reader), DefaultOptions())
}

func buildAST(src lexer.Source, opts Options) (ast.SchemaNode, error) {
	s, err := newSession(src, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	records := make([]ast.SchemaNode, 0, 16)
	for {
		row, err := s.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		pos := ast.NewPosition(int(s.RowOffset()), s.RowLine(), 1)
		records = append(records, rowNode(row, pos))
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition()), nil
}

// rowNode converts a row to a record node. Absent fields become nil literals.
func rowNode(row Row, pos ast.Position) *ast.ArrayDataNode {
	fields := make([]ast.SchemaNode, len(row))
	for i, f := range row {
		if v, ok := f.Value(); ok {
			fields[i] = ast.NewLiteralNode(v, pos)
		} else {
			fields[i] = ast.NewLiteralNode(nil, pos)
		}
	}
	return ast.NewArrayDataNode(fields, pos)
}

// nodeRow converts a record node back to a row.
func nodeRow(node ast.SchemaNode) (Row, error) {
	record, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected record to be *ast.ArrayDataNode, got %T", node)
	}
	elements := record.Elements()
	row := make(Row, len(elements))
	for i, elem := range elements {
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			return nil, fmt.Errorf("expected field to be *ast.LiteralNode, got %T", elem)
		}
		row[i] = literalField(lit)
	}
	return row, nil
}

// literalField maps a literal to a field: nil is absent, anything else is
// text formatted with %v.
func literalField(lit *ast.LiteralNode) Field {
	switch v := lit.Value().(type) {
	case nil:
		return Nil()
	case string:
		return Text(v)
	default:
		return Text(fmt.Sprintf("%v", v))
	}
}
