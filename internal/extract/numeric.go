package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vvka-141/cadpost/internal/xmltree"
	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// ExtractMatrix reads a rows×cols grid from the Rows/Row/Column@Value cells
// under node. Cells are addressed by position. The grid must be dense:
// a missing row or cell, an extra one, or a non-numeric value is an error.
func ExtractMatrix(file string, node *xmltree.Element, rows, cols int) (cadpost.Matrix, error) {
	if node == nil {
		return nil, &cadpost.DocumentError{File: file, Message: "matrix element is missing"}
	}

	rowEls := node.FindAll("Rows/Row")
	if len(rowEls) != rows {
		return nil, &cadpost.DocumentError{
			File:    file,
			Line:    node.Line,
			Element: node.Name,
			Message: fmt.Sprintf("expected %d matrix rows, found %d", rows, len(rowEls)),
			Hint:    "Matrices are written as <Rows><Row><Column Value=\"...\"/>...</Row>...</Rows>.",
		}
	}

	m := cadpost.NewMatrix(rows, cols)
	for r, rowEl := range rowEls {
		colEls := rowEl.ChildrenNamed("Column")
		if len(colEls) != cols {
			return nil, &cadpost.DocumentError{
				File:    file,
				Line:    rowEl.Line,
				Element: node.Name,
				Message: fmt.Sprintf("matrix row %d: expected %d columns, found %d", r, cols, len(colEls)),
			}
		}
		for c, colEl := range colEls {
			v, err := floatAttr(file, colEl, "Value")
			if err != nil {
				return nil, err
			}
			m[r][c] = v
		}
	}
	return m, nil
}

// ExtractMatrix3 reads a 3×3 matrix.
func ExtractMatrix3(file string, node *xmltree.Element) (cadpost.Matrix, error) {
	return ExtractMatrix(file, node, 3, 3)
}

// ExtractXYZVector reads the X, Y and Z attributes of node.
func ExtractXYZVector(file string, node *xmltree.Element) (cadpost.Vector3, error) {
	var v cadpost.Vector3
	if node == nil {
		return v, &cadpost.DocumentError{File: file, Message: "vector element is missing"}
	}
	for i, axis := range [3]string{"X", "Y", "Z"} {
		f, err := floatAttr(file, node, axis)
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

// ExtractXYZPoint reads a point. Points and vectors share the X/Y/Z layout.
func ExtractXYZPoint(file string, node *xmltree.Element) (cadpost.Vector3, error) {
	return ExtractXYZVector(file, node)
}

// ScalarByName looks up Scalars/Scalar[@Name=name]/@Value under node.
// A scalar that is not listed yields (nil, nil).
func ScalarByName(file string, node *xmltree.Element, name string) (*float64, error) {
	for _, scalar := range node.FindAll("Scalars/Scalar") {
		if n, _ := scalar.Attr("Name"); n != name {
			continue
		}
		v, err := floatAttr(file, scalar, "Value")
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	return nil, nil
}

// ParseTriple parses "x;y;z" into a vector.
func ParseTriple(text string) (cadpost.Vector3, error) {
	var v cadpost.Vector3
	parts := strings.Split(text, cadpost.ArrayValueSeparator)
	if len(parts) != 3 {
		return v, fmt.Errorf("expected 3 values separated by %q, found %d", cadpost.ArrayValueSeparator, len(parts))
	}
	for i, p := range parts {
		f, err := parseFloat(p)
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func floatAttr(file string, el *xmltree.Element, name string) (float64, error) {
	raw, ok := el.Attr(name)
	if !ok {
		return 0, &cadpost.DocumentError{
			File:      file,
			Line:      el.Line,
			Element:   el.Name,
			Attribute: name,
			Message:   "required numeric attribute is missing",
		}
	}
	v, err := parseFloat(raw)
	if err != nil {
		return 0, &cadpost.DocumentError{
			File:      file,
			Line:      el.Line,
			Element:   el.Name,
			Attribute: name,
			Message:   err.Error(),
		}
	}
	return v, nil
}

// parseFloat accepts any finite decimal. NaN and infinities are rejected
// because JSON has no representation for them.
func parseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}
