package extract

import (
	"strings"

	"github.com/vvka-141/cadpost/internal/xmltree"
	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// ComputedIndex holds the named reference points read from ComputedValues.xml.
type ComputedIndex struct {
	Points map[cadpost.ComponentID]map[string]cadpost.Vector3
}

// Records returns one partial record per component that declared at least
// one point.
func (c *ComputedIndex) Records() map[cadpost.ComponentID]cadpost.ComponentRecord {
	out := make(map[cadpost.ComponentID]cadpost.ComponentRecord, len(c.Points))
	for comp, points := range c.Points {
		copied := make(map[string]cadpost.Vector3, len(points))
		for name, v := range points {
			copied[name] = v
		}
		out[comp] = cadpost.ComponentRecord{Points: copied}
	}
	return out
}

// Computed reads a ComputedValues.xml tree.
//
// A Metric is a reference point only when its MetricID contains the ":"
// separator and it carries a non-empty ArrayValue; the point name is the text
// after the last separator. Scalar metrics are ignored.
func Computed(root *xmltree.Element) (*ComputedIndex, error) {
	const file = cadpost.ComputedValuesFile

	idx := &ComputedIndex{Points: make(map[cadpost.ComponentID]map[string]cadpost.Vector3)}

	for _, el := range root.Iter("Component") {
		id, err := requiredAttr(file, el, "ComponentInstanceID")
		if err != nil {
			return nil, err
		}

		points := make(map[string]cadpost.Vector3)
		for _, metric := range el.Iter("Metric") {
			name, ok := pointName(metric)
			if !ok {
				continue
			}
			raw, _ := metric.Attr("ArrayValue")
			v, err := ParseTriple(raw)
			if err != nil {
				return nil, &cadpost.DocumentError{
					File:      file,
					Line:      metric.Line,
					Element:   metric.Name,
					Attribute: "ArrayValue",
					Message:   err.Error(),
					Hint:      `Reference points are written as ArrayValue="x;y;z".`,
				}
			}
			points[name] = v
		}

		if len(points) == 0 {
			continue
		}
		comp := cadpost.ComponentID(id)
		if existing, ok := idx.Points[comp]; ok {
			for k, v := range points {
				existing[k] = v
			}
			continue
		}
		idx.Points[comp] = points
	}

	return idx, nil
}

func pointName(metric *xmltree.Element) (string, bool) {
	id, _ := metric.Attr("MetricID")
	if !strings.Contains(id, cadpost.PointSeparator) {
		return "", false
	}
	if raw, ok := metric.Attr("ArrayValue"); !ok || strings.TrimSpace(raw) == "" {
		return "", false
	}
	return id[strings.LastIndex(id, cadpost.PointSeparator)+len(cadpost.PointSeparator):], true
}
