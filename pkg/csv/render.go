// Package csv provides AST rendering to CSV bytes.
package csv

import (
	"bytes"
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node to CSV bytes.
//
// The node should be the result of ParseAST or ParseReaderAST, or a single
// record node. Rendering quotes fields that need it, doubles embedded
// quotes, writes nil literals as nothing and empty strings as "", and ends
// every row with LF.
//
// Example:
//
//	node, _ := csv.ParseAST("name,age\nAlice,\n")
//	bytes, _ := csv.Render(node)
//	// bytes: name,age\nAlice,\n
func Render(node ast.SchemaNode) ([]byte, error) {
	return RenderWithOptions(node, DefaultWriterOptions())
}

// RenderWithOptions converts an AST node to CSV bytes with custom options.
//
// Example:
//
//	opts := csv.DefaultWriterOptions()
//	opts.Comma = '\t'
//	opts.UseCRLF = true
//	bytes, err := csv.RenderWithOptions(node, opts)
func RenderWithOptions(node ast.SchemaNode, opts WriterOptions) ([]byte, error) {
	if node == nil {
		return []byte{}, nil
	}
	rows, err := astRows(node)
	if err != nil {
		return nil, err
	}
	return RenderRows(rows, opts)
}

// astRows flattens a file or record node into rows.
func astRows(node ast.SchemaNode) ([]Row, error) {
	switch n := node.(type) {
	case *ast.ArrayDataNode:
		elements := n.Elements()
		if len(elements) == 0 {
			return nil, nil
		}
		switch elements[0].(type) {
		case *ast.ArrayDataNode:
			// File level - array of records
			rows := make([]Row, 0, len(elements))
			for _, elem := range elements {
				row, err := nodeRow(elem)
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
			}
			return rows, nil
		case *ast.LiteralNode:
			// Record level - array of fields
			row, err := nodeRow(n)
			if err != nil {
				return nil, err
			}
			return []Row{row}, nil
		default:
			return nil, fmt.Errorf("unexpected element type in array: %T", elements[0])
		}
	case *ast.LiteralNode:
		return []Row{{literalField(n)}}, nil
	default:
		return nil, fmt.Errorf("unsupported node type for CSV rendering: %T", node)
	}
}

// RenderRows serializes rows to CSV bytes.
func RenderRows(rows []Row, opts WriterOptions) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriterWithOptions(&buf, opts)
	if err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
