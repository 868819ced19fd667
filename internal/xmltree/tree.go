package xmltree

import "strings"

// Attr is a single attribute. Namespace prefixes are dropped; the
// analysis tool's documents do not use namespaces.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of a parsed document.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
	Line     int
}

// Attr returns the value of the named attribute and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute, or def when it is absent.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// Child returns the first direct child with the given name, or nil.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given name.
func (e *Element) ChildrenNamed(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildWhere returns the first direct child named name whose attribute attr
// equals value, or nil.
func (e *Element) ChildWhere(name, attr, value string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name != name {
			continue
		}
		if v, ok := c.Attr(attr); ok && v == value {
			return c
		}
	}
	return nil
}

// FindAll follows a slash-separated path of child names and returns every
// element reached, in document order. An empty path returns e itself.
func (e *Element) FindAll(path string) []*Element {
	if e == nil {
		return nil
	}
	current := []*Element{e}
	for _, step := range splitPath(path) {
		var next []*Element
		for _, el := range current {
			next = append(next, el.ChildrenNamed(step)...)
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// Find returns the first element reached by path, or nil.
func (e *Element) Find(path string) *Element {
	found := e.FindAll(path)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// Iter returns e and all of its descendants named name, depth first in
// document order.
func (e *Element) Iter(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	var walk func(*Element)
	walk = func(el *Element) {
		if el.Name == name {
			out = append(out, el)
		}
		for _, c := range el.Children {
			walk(c)
		}
	}
	walk(e)
	return out
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" || path == "." {
		return nil
	}
	parts := strings.Split(path, "/")
	steps := parts[:0]
	for _, p := range parts {
		if p != "" && p != "." {
			steps = append(steps, p)
		}
	}
	return steps
}
