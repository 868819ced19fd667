// Package xmltree parses XML documents into a small generic element tree.
//
// The analysis tool's documents are attribute-heavy and nest the same element
// names at arbitrary depth (CADComponent inside CADComponent, Metric under
// several wrappers), so the extractors walk a generic tree instead of
// unmarshalling into fixed structs.
//
// Lookups mirror the handful of path forms the extractors need:
//   - Child / ChildrenNamed: direct children by name
//   - ChildWhere: first direct child with a matching attribute value
//   - Find / FindAll: slash-separated child paths such as "Rows/Row"
//   - Iter: every descendant (and self) with a given name, in document order
package xmltree
