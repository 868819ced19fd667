package cadpost

import "time"

// ComponentID identifies one CAD part or sub-assembly.
// CADAssembly.xml calls it ComponentID; the metrics and computed-values
// documents call it ComponentInstanceID.
type ComponentID string

// MetricID is the key the metrics document uses to bundle geometric and
// physical attributes. It only links a component to its metrics counterpart.
type MetricID string

// CADName is the CAD-generated name of a metric component.
type CADName string

// RootMetricID identifies the top-level assembly in the metrics document.
// Only its direct children carry placement transforms.
const RootMetricID MetricID = "1"

// CADType classifies a component as an assembly or a part.
type CADType string

const (
	CADTypeAssembly CADType = "ASSEMBLY"
	CADTypePart     CADType = "PART"
)

// Vector3 is an X, Y, Z triple.
type Vector3 [3]float64

// Matrix is a dense row-major matrix. A nil Matrix means the value was absent.
type Matrix [][]float64

// NewMatrix allocates a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// Dims returns the number of rows and columns.
func (m Matrix) Dims() (rows, cols int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// BoundingBox holds the extents of a component relative to its default
// coordinate system and the corner points outlining it.
type BoundingBox struct {
	Extents       Vector3   `json:"bounding_box"`
	OutlinePoints []Vector3 `json:"outline_points"`
}

// PrincipalMoments is the eigen-decomposition of an inertia tensor.
type PrincipalMoments struct {
	RotationMatrix Matrix `json:"rotation_matrix"`
	Moments        Matrix `json:"principle_moments"`
}

// Inertia groups the inertia tensors reported for a component.
type Inertia struct {
	AtDefaultCSYS     Matrix            `json:"inertia_tensor_at_default_csys,omitempty"`
	AtCenterOfGravity Matrix            `json:"inertia_tensor_at_center_of_gravity,omitempty"`
	PrincipalMoments  *PrincipalMoments `json:"principle_moments_of_inertia,omitempty"`
}

// IsZero reports whether no inertia data is present.
func (i *Inertia) IsZero() bool {
	return i == nil || (i.AtDefaultCSYS == nil && i.AtCenterOfGravity == nil && i.PrincipalMoments == nil)
}

// Units names the unit system the metrics were reported in.
type Units struct {
	Distance    string `json:"distance,omitempty"`
	Force       string `json:"force,omitempty"`
	Mass        string `json:"mass,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	Time        string `json:"time,omitempty"`
}

// ComponentRecord is the consolidated view of one component.
// Every field is optional; a zero value means the source documents did not
// provide it, and such fields are omitted from the JSON output.
type ComponentRecord struct {
	ComponentName        string  `json:"component_name,omitempty"`
	CADFilenameOriginal  string  `json:"cad_filename_original,omitempty"`
	CADFilenameGenerated string  `json:"cad_filename_generated,omitempty"`
	CADType              CADType `json:"cad_type,omitempty"`

	MetricID         MetricID `json:"metric_id,omitempty"`
	CoordinateSystem string   `json:"coordinate_system,omitempty"`

	Rotation    Matrix   `json:"rotation,omitempty"`
	Translation *Vector3 `json:"translation,omitempty"`

	BoundingBox     *BoundingBox `json:"bounding_box,omitempty"`
	CenterOfGravity *Vector3     `json:"center_of_gravity,omitempty"`
	Inertia         *Inertia     `json:"inertia,omitempty"`

	SurfaceArea *float64 `json:"surface_area,omitempty"`
	Volume      *float64 `json:"volume,omitempty"`
	Mass        *float64 `json:"mass,omitempty"`

	Units *Units `json:"units,omitempty"`

	Points map[string]Vector3 `json:"points,omitempty"`
}

// Clone returns a deep copy of the record.
func (r ComponentRecord) Clone() ComponentRecord {
	out := r
	out.Rotation = r.Rotation.Clone()
	if r.Translation != nil {
		v := *r.Translation
		out.Translation = &v
	}
	if r.BoundingBox != nil {
		bb := *r.BoundingBox
		if r.BoundingBox.OutlinePoints != nil {
			bb.OutlinePoints = make([]Vector3, len(r.BoundingBox.OutlinePoints))
			copy(bb.OutlinePoints, r.BoundingBox.OutlinePoints)
		}
		out.BoundingBox = &bb
	}
	if r.CenterOfGravity != nil {
		v := *r.CenterOfGravity
		out.CenterOfGravity = &v
	}
	if r.Inertia != nil {
		in := Inertia{
			AtDefaultCSYS:     r.Inertia.AtDefaultCSYS.Clone(),
			AtCenterOfGravity: r.Inertia.AtCenterOfGravity.Clone(),
		}
		if pm := r.Inertia.PrincipalMoments; pm != nil {
			in.PrincipalMoments = &PrincipalMoments{
				RotationMatrix: pm.RotationMatrix.Clone(),
				Moments:        pm.Moments.Clone(),
			}
		}
		out.Inertia = &in
	}
	out.SurfaceArea = cloneFloat(r.SurfaceArea)
	out.Volume = cloneFloat(r.Volume)
	out.Mass = cloneFloat(r.Mass)
	if r.Units != nil {
		u := *r.Units
		out.Units = &u
	}
	if r.Points != nil {
		out.Points = make(map[string]Vector3, len(r.Points))
		for k, v := range r.Points {
			out.Points[k] = v
		}
	}
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Document is the top-level shape of the emitted JSON.
type Document struct {
	Components map[ComponentID]ComponentRecord `json:"components"`
}

// InputFile describes one scanned input document.
type InputFile struct {
	Name        string    // Fixed document name, e.g. "CADAssembly.xml"
	Path        string    // Path the document was read from
	SizeBytes   int64     // Size in bytes
	ModifiedAt  time.Time // Last modification time reported by the filesystem
	Checksum    string    // SHA-256 of the normalized content
	ChecksumRaw string    // SHA-256 of the raw content
	Content     []byte    // Raw document bytes
}
