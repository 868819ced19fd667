package extract

import (
	"github.com/vvka-141/cadpost/internal/xmltree"
	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// ConstraintFeature is one side of a constraint pair.
type ConstraintFeature struct {
	ComponentID     cadpost.ComponentID
	FeatureName     string
	OrientationType string
}

// ConstraintPair joins two or more features with one alignment rule.
type ConstraintPair struct {
	AlignmentType string
	GeometryType  string
	InterfaceType string
	Features      []ConstraintFeature
}

// Constraint is a geometric constraint placing a component in its assembly.
type Constraint struct {
	Pairs []ConstraintPair
}

// AssemblyIndex is the result of reading CADAssembly.xml.
type AssemblyIndex struct {
	// Components holds one partial record per ComponentID with identity fields only.
	Components map[cadpost.ComponentID]cadpost.ComponentRecord

	// Constraints are parsed for diagnostics and are not part of the record.
	Constraints map[cadpost.ComponentID][]Constraint
}

// Assembly reads component identity from a CADAssembly.xml tree.
// Every CADComponent element, at any depth, must carry a ComponentID.
func Assembly(root *xmltree.Element) (*AssemblyIndex, error) {
	const file = cadpost.CADAssemblyFile

	idx := &AssemblyIndex{
		Components:  make(map[cadpost.ComponentID]cadpost.ComponentRecord),
		Constraints: make(map[cadpost.ComponentID][]Constraint),
	}

	for _, el := range root.Iter("CADComponent") {
		id, err := requiredAttr(file, el, "ComponentID")
		if err != nil {
			return nil, err
		}
		comp := cadpost.ComponentID(id)

		idx.Components[comp] = cadpost.ComponentRecord{
			ComponentName:       el.AttrOr("DisplayName", ""),
			CADFilenameOriginal: el.AttrOr("Name", ""),
			CADType:             cadpost.CADType(el.AttrOr("Type", "")),
		}

		constraints := readConstraints(el)
		if len(constraints) > 0 {
			idx.Constraints[comp] = constraints
		}
	}

	return idx, nil
}

func readConstraints(el *xmltree.Element) []Constraint {
	var out []Constraint
	for _, c := range el.ChildrenNamed("Constraint") {
		var constraint Constraint
		for _, p := range c.ChildrenNamed("Pair") {
			pair := ConstraintPair{
				AlignmentType: p.AttrOr("FeatureAlignmentType", ""),
				GeometryType:  p.AttrOr("FeatureGeometryType", ""),
				InterfaceType: p.AttrOr("FeatureInterfaceType", ""),
			}
			for _, f := range p.ChildrenNamed("ConstraintFeature") {
				pair.Features = append(pair.Features, ConstraintFeature{
					ComponentID:     cadpost.ComponentID(f.AttrOr("ComponentID", "")),
					FeatureName:     f.AttrOr("FeatureName", ""),
					OrientationType: f.AttrOr("FeatureOrientationType", ""),
				})
			}
			constraint.Pairs = append(constraint.Pairs, pair)
		}
		out = append(out, constraint)
	}
	return out
}

func requiredAttr(file string, el *xmltree.Element, name string) (string, error) {
	v, ok := el.Attr(name)
	if !ok || v == "" {
		return "", &cadpost.DocumentError{
			File:      file,
			Line:      el.Line,
			Element:   el.Name,
			Attribute: name,
			Message:   "required identifier is missing",
		}
	}
	return v, nil
}
