package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// Parse reads a complete XML document and returns its root element.
// name is used only for error reporting. Any syntax problem is returned as a
// *cadpost.DocumentError carrying the line number when the decoder knows it.
func Parse(r io.Reader, name string) (*Element, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = true

	var (
		root  *Element
		stack []*Element
		text  []*strings.Builder
	)

	for {
		line, _ := decoder.InputPos()
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapSyntaxError(err, name)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, &cadpost.DocumentError{
					File:    name,
					Line:    line,
					Element: t.Name.Local,
					Message: "unexpected element after the document root",
				}
			}
			el := &Element{Name: t.Name.Local, Line: line}
			if len(t.Attr) > 0 {
				el.Attrs = make([]Attr, 0, len(t.Attr))
				for _, a := range t.Attr {
					if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
						continue
					}
					el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
				}
			}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
			text = append(text, &strings.Builder{})

		case xml.EndElement:
			top := len(stack) - 1
			stack[top].Text = strings.TrimSpace(text[top].String())
			stack = stack[:top]
			text = text[:top]

		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}
		}
	}

	if root == nil {
		return nil, &cadpost.DocumentError{
			File:    name,
			Message: "document has no root element",
			Hint:    "The file is empty or contains only a prolog/comments.",
		}
	}
	return root, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(content []byte, name string) (*Element, error) {
	return Parse(bytes.NewReader(content), name)
}

func wrapSyntaxError(err error, name string) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &cadpost.DocumentError{
			File:    name,
			Line:    syntaxErr.Line,
			Message: syntaxErr.Msg,
			Hint:    "Check that all XML tags are properly closed and attributes are quoted.",
		}
	}
	return &cadpost.DocumentError{
		File:    name,
		Message: fmt.Sprintf("failed to read XML: %v", err),
	}
}
