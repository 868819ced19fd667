// Package merge accumulates partial component records into one consolidated
// record per component id.
package merge

import (
	"sort"

	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// Merge returns existing with every present field of partial applied on top.
// Absent fields in partial never erase data; point maps are combined with
// partial's entries winning. Neither argument is modified.
func Merge(existing, partial cadpost.ComponentRecord) cadpost.ComponentRecord {
	out := existing

	if partial.ComponentName != "" {
		out.ComponentName = partial.ComponentName
	}
	if partial.CADFilenameOriginal != "" {
		out.CADFilenameOriginal = partial.CADFilenameOriginal
	}
	if partial.CADFilenameGenerated != "" {
		out.CADFilenameGenerated = partial.CADFilenameGenerated
	}
	if partial.CADType != "" {
		out.CADType = partial.CADType
	}
	if partial.MetricID != "" {
		out.MetricID = partial.MetricID
	}
	if partial.CoordinateSystem != "" {
		out.CoordinateSystem = partial.CoordinateSystem
	}
	if partial.Rotation != nil {
		out.Rotation = partial.Rotation
	}
	if partial.Translation != nil {
		out.Translation = partial.Translation
	}
	if partial.BoundingBox != nil {
		out.BoundingBox = partial.BoundingBox
	}
	if partial.CenterOfGravity != nil {
		out.CenterOfGravity = partial.CenterOfGravity
	}
	if !partial.Inertia.IsZero() {
		out.Inertia = mergeInertia(existing.Inertia, partial.Inertia)
	}
	if partial.SurfaceArea != nil {
		out.SurfaceArea = partial.SurfaceArea
	}
	if partial.Volume != nil {
		out.Volume = partial.Volume
	}
	if partial.Mass != nil {
		out.Mass = partial.Mass
	}
	if partial.Units != nil {
		out.Units = partial.Units
	}
	if len(partial.Points) > 0 {
		points := make(map[string]cadpost.Vector3, len(existing.Points)+len(partial.Points))
		for k, v := range existing.Points {
			points[k] = v
		}
		for k, v := range partial.Points {
			points[k] = v
		}
		out.Points = points
	}

	return out
}

func mergeInertia(existing, partial *cadpost.Inertia) *cadpost.Inertia {
	var out cadpost.Inertia
	if existing != nil {
		out = *existing
	}
	if partial.AtDefaultCSYS != nil {
		out.AtDefaultCSYS = partial.AtDefaultCSYS
	}
	if partial.AtCenterOfGravity != nil {
		out.AtCenterOfGravity = partial.AtCenterOfGravity
	}
	if partial.PrincipalMoments != nil {
		out.PrincipalMoments = partial.PrincipalMoments
	}
	return &out
}

// Table is the accumulating component-id to record mapping.
type Table map[cadpost.ComponentID]cadpost.ComponentRecord

// Apply merges one pass of partial records into the table. Ids not yet
// present are added; ids missing from partials are left untouched.
func (t Table) Apply(partials map[cadpost.ComponentID]cadpost.ComponentRecord) {
	for id, partial := range partials {
		t[id] = Merge(t[id], partial)
	}
}

// IDs returns the component ids in sorted order.
func (t Table) IDs() []cadpost.ComponentID {
	ids := make([]cadpost.ComponentID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Build applies passes strictly in order to an empty table.
func Build(passes ...map[cadpost.ComponentID]cadpost.ComponentRecord) Table {
	t := make(Table)
	for _, p := range passes {
		t.Apply(p)
	}
	return t
}
