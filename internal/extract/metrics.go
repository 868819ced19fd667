package extract

import (
	"github.com/vvka-141/cadpost/internal/xmltree"
	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// Inertia tensor evaluation frames (InertiaTensor@At).
const (
	AtDefaultCSYS     = "DEFAULT_CSYS"
	AtCenterOfGravity = "CENTER_OF_GRAVITY"
)

const (
	scalarSurfaceArea = "SurfaceArea"
	scalarVolume      = "Volume"
	scalarMass        = "Mass"
)

// Transform places a child component under the root assembly.
type Transform struct {
	Rotation    cadpost.Matrix
	Translation cadpost.Vector3
}

// MetricBundle holds everything one MetricComponent reports.
type MetricBundle struct {
	CoordinateSystem string
	CADName          cadpost.CADName
	BoundingBox      *cadpost.BoundingBox
	CenterOfGravity  *cadpost.Vector3
	Inertia          cadpost.Inertia
	SurfaceArea      *float64
	Volume           *float64
	Mass             *float64
	Units            *cadpost.Units
}

// MetricsIndex holds the translation tables built from CADAssembly_metrics.xml.
type MetricsIndex struct {
	componentMetric map[cadpost.ComponentID]cadpost.MetricID
	transforms      map[cadpost.ComponentID]Transform
	bundles         map[cadpost.MetricID]MetricBundle
	cadNames        map[cadpost.CADName]cadpost.MetricID
}

// MetricFor translates a component id into its metric id.
func (m *MetricsIndex) MetricFor(id cadpost.ComponentID) (cadpost.MetricID, bool) {
	met, ok := m.componentMetric[id]
	return met, ok
}

// MetricForCADName translates a CAD-generated name into its metric id.
func (m *MetricsIndex) MetricForCADName(name cadpost.CADName) (cadpost.MetricID, bool) {
	met, ok := m.cadNames[name]
	return met, ok
}

// Bundle returns the attributes reported for a metric id.
func (m *MetricsIndex) Bundle(id cadpost.MetricID) (MetricBundle, bool) {
	b, ok := m.bundles[id]
	return b, ok
}

// Transform returns the placement of a direct child of the root assembly.
func (m *MetricsIndex) Transform(id cadpost.ComponentID) (Transform, bool) {
	t, ok := m.transforms[id]
	return t, ok
}

// Records joins the tables on metric id and returns one partial record per
// component listed in the metrics document.
func (m *MetricsIndex) Records() map[cadpost.ComponentID]cadpost.ComponentRecord {
	out := make(map[cadpost.ComponentID]cadpost.ComponentRecord, len(m.componentMetric))
	for comp, met := range m.componentMetric {
		rec := cadpost.ComponentRecord{MetricID: met}

		if t, ok := m.transforms[comp]; ok {
			rec.Rotation = t.Rotation.Clone()
			translation := t.Translation
			rec.Translation = &translation
		}

		if b, ok := m.bundles[met]; ok {
			rec.CoordinateSystem = b.CoordinateSystem
			rec.CADFilenameGenerated = string(b.CADName)
			rec.BoundingBox = b.BoundingBox
			rec.CenterOfGravity = b.CenterOfGravity
			if !b.Inertia.IsZero() {
				inertia := b.Inertia
				rec.Inertia = &inertia
			}
			rec.SurfaceArea = b.SurfaceArea
			rec.Volume = b.Volume
			rec.Mass = b.Mass
			rec.Units = b.Units
		}

		out[comp] = rec
	}
	return out
}

// Metrics reads a CADAssembly_metrics.xml tree.
//
// Component ids are mapped to metric ids from every CADComponent element.
// Rotation and translation are taken only from the ChildMetric entries of the
// root MetricComponent (MetricID "1"); transforms anywhere else are ignored.
func Metrics(root *xmltree.Element) (*MetricsIndex, error) {
	const file = cadpost.CADAssemblyMetricsFile

	idx := &MetricsIndex{
		componentMetric: make(map[cadpost.ComponentID]cadpost.MetricID),
		transforms:      make(map[cadpost.ComponentID]Transform),
		bundles:         make(map[cadpost.MetricID]MetricBundle),
		cadNames:        make(map[cadpost.CADName]cadpost.MetricID),
	}

	for _, el := range root.Iter("CADComponent") {
		comp, err := requiredAttr(file, el, "ComponentInstanceID")
		if err != nil {
			return nil, err
		}
		met, err := requiredAttr(file, el, "MetricID")
		if err != nil {
			return nil, err
		}
		idx.componentMetric[cadpost.ComponentID(comp)] = cadpost.MetricID(met)
	}

	if rootMetric := root.Find("MetricComponents").ChildWhere("MetricComponent", "MetricID", string(cadpost.RootMetricID)); rootMetric != nil {
		for _, child := range rootMetric.FindAll("Children/ChildMetric") {
			comp, err := requiredAttr(file, child, "ComponentInstanceID")
			if err != nil {
				return nil, err
			}
			rotationEl, err := requiredChild(file, child, "RotationMatrix")
			if err != nil {
				return nil, err
			}
			rotation, err := ExtractMatrix3(file, rotationEl)
			if err != nil {
				return nil, err
			}
			translationEl, err := requiredChild(file, child, "Translation")
			if err != nil {
				return nil, err
			}
			translation, err := ExtractXYZVector(file, translationEl)
			if err != nil {
				return nil, err
			}
			idx.transforms[cadpost.ComponentID(comp)] = Transform{Rotation: rotation, Translation: translation}
		}
	}

	for _, el := range root.Iter("MetricComponent") {
		met, err := requiredAttr(file, el, "MetricID")
		if err != nil {
			return nil, err
		}
		bundle, err := readBundle(file, el)
		if err != nil {
			return nil, err
		}
		idx.bundles[cadpost.MetricID(met)] = bundle
		if bundle.CADName != "" {
			idx.cadNames[bundle.CADName] = cadpost.MetricID(met)
		}
	}

	return idx, nil
}

func readBundle(file string, el *xmltree.Element) (MetricBundle, error) {
	b := MetricBundle{
		CoordinateSystem: el.AttrOr("CoordinateSystem", ""),
		CADName:          cadpost.CADName(el.AttrOr("Name", "")),
	}

	if bbox := el.Child("BoundingBox"); bbox != nil {
		extents, err := ExtractXYZVector(file, bbox)
		if err != nil {
			return b, err
		}
		points := make([]cadpost.Vector3, 0, 8)
		for _, pt := range bbox.FindAll("OutlinePoints/Point") {
			p, err := ExtractXYZPoint(file, pt)
			if err != nil {
				return b, err
			}
			points = append(points, p)
		}
		b.BoundingBox = &cadpost.BoundingBox{Extents: extents, OutlinePoints: points}
	}

	if cg := el.Child("CG"); cg != nil {
		v, err := ExtractXYZPoint(file, cg)
		if err != nil {
			return b, err
		}
		b.CenterOfGravity = &v
	}

	if t := el.ChildWhere("InertiaTensor", "At", AtDefaultCSYS); t != nil {
		m, err := ExtractMatrix3(file, t)
		if err != nil {
			return b, err
		}
		b.Inertia.AtDefaultCSYS = m
	}

	if t := el.ChildWhere("InertiaTensor", "At", AtCenterOfGravity); t != nil {
		m, err := ExtractMatrix3(file, t)
		if err != nil {
			return b, err
		}
		b.Inertia.AtCenterOfGravity = m
	}

	if pm := el.Child("PrincipleMomentsOfInertia"); pm != nil {
		rotationEl, err := requiredChild(file, pm, "RotationMatrix")
		if err != nil {
			return b, err
		}
		rotation, err := ExtractMatrix3(file, rotationEl)
		if err != nil {
			return b, err
		}
		moments, err := ExtractMatrix(file, pm, 3, 1)
		if err != nil {
			return b, err
		}
		b.Inertia.PrincipalMoments = &cadpost.PrincipalMoments{RotationMatrix: rotation, Moments: moments}
	}

	var err error
	if b.SurfaceArea, err = ScalarByName(file, el, scalarSurfaceArea); err != nil {
		return b, err
	}
	if b.Volume, err = ScalarByName(file, el, scalarVolume); err != nil {
		return b, err
	}
	if b.Mass, err = ScalarByName(file, el, scalarMass); err != nil {
		return b, err
	}

	if u := el.Child("Units"); u != nil {
		b.Units = &cadpost.Units{
			Distance:    u.AttrOr("Distance", ""),
			Force:       u.AttrOr("Force", ""),
			Mass:        u.AttrOr("Mass", ""),
			Temperature: u.AttrOr("Temperature", ""),
			Time:        u.AttrOr("Time", ""),
		}
	}

	return b, nil
}

func requiredChild(file string, parent *xmltree.Element, name string) (*xmltree.Element, error) {
	if c := parent.Child(name); c != nil {
		return c, nil
	}
	return nil, &cadpost.DocumentError{
		File:    file,
		Line:    parent.Line,
		Element: parent.Name,
		Message: "required element " + name + " is missing",
	}
}
