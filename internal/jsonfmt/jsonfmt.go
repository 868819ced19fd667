// Package jsonfmt renders values as canonical, diff-friendly JSON.
//
// Output rules:
//   - object keys sorted lexicographically
//   - one member per line, indented by Options.Indent, with ": " after keys
//   - numbers keep the shortest text that round-trips the float64 exactly
//   - arrays made only of scalars are written on one line as "[ 1, 2.5 ]"
//     when Options.InlineScalarArrays is set; any array holding an array or
//     object is expanded one element per line
//   - no HTML escaping
//
// Inlining is decided while the tree is rendered, never by rewriting
// already-formatted text.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Options controls rendering.
type Options struct {
	Indent             string
	InlineScalarArrays bool
}

// DefaultOptions matches the layout of the emitted component files.
var DefaultOptions = Options{
	Indent:             "    ",
	InlineScalarArrays: true,
}

// Marshal renders v with DefaultOptions.
func Marshal(v any) ([]byte, error) {
	return MarshalWithOptions(v, DefaultOptions)
}

// MarshalWithOptions renders v as canonical JSON. v is first encoded with
// encoding/json so struct tags and omitempty apply, then decoded into a
// generic tree with numbers kept as their exact text.
func MarshalWithOptions(v any, opts Options) ([]byte, error) {
	raw, err := encode(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to build JSON tree: %w", err)
	}

	p := &printer{opts: opts}
	if err := p.value(tree, 0); err != nil {
		return nil, err
	}
	return p.buf.Bytes(), nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

type printer struct {
	buf  bytes.Buffer
	opts Options
}

func (p *printer) newline(depth int) {
	p.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		p.buf.WriteString(p.opts.Indent)
	}
}

func (p *printer) value(v any, depth int) error {
	switch t := v.(type) {
	case map[string]any:
		return p.object(t, depth)
	case []any:
		return p.array(t, depth)
	default:
		tok, err := scalar(t)
		if err != nil {
			return err
		}
		p.buf.WriteString(tok)
		return nil
	}
}

func (p *printer) object(m map[string]any, depth int) error {
	if len(m) == 0 {
		p.buf.WriteString("{}")
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p.buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			p.buf.WriteByte(',')
		}
		p.newline(depth + 1)
		key, err := scalar(k)
		if err != nil {
			return err
		}
		p.buf.WriteString(key)
		p.buf.WriteString(": ")
		if err := p.value(m[k], depth+1); err != nil {
			return err
		}
	}
	p.newline(depth)
	p.buf.WriteByte('}')
	return nil
}

func (p *printer) array(items []any, depth int) error {
	if len(items) == 0 {
		p.buf.WriteString("[]")
		return nil
	}

	if p.opts.InlineScalarArrays {
		if tokens, ok := inlineTokens(items); ok {
			p.buf.WriteString("[ ")
			p.buf.WriteString(strings.Join(tokens, ", "))
			p.buf.WriteString(" ]")
			return nil
		}
	}

	p.buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			p.buf.WriteByte(',')
		}
		p.newline(depth + 1)
		if err := p.value(item, depth+1); err != nil {
			return err
		}
	}
	p.newline(depth)
	p.buf.WriteByte(']')
	return nil
}

// inlineTokens returns the rendered elements when every element is a scalar
// whose text has no whitespace.
func inlineTokens(items []any) ([]string, bool) {
	tokens := make([]string, 0, len(items))
	for _, item := range items {
		switch item.(type) {
		case map[string]any, []any:
			return nil, false
		}
		tok, err := scalar(item)
		if err != nil || strings.IndexFunc(tok, unicode.IsSpace) >= 0 {
			return nil, false
		}
		tokens = append(tokens, tok)
	}
	return tokens, true
}

func scalar(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case bool:
		if t {
			return "true", nil
		}
		return "false", nil
	case json.Number:
		return t.String(), nil
	case string:
		b, err := encode(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("jsonfmt: unexpected value of type %T", v)
	}
}
