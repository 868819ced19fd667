package reader

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vvka-141/cadpost/internal/extract"
	"github.com/vvka-141/cadpost/internal/files/filesystem"
	"github.com/vvka-141/cadpost/internal/jsonfmt"
	"github.com/vvka-141/cadpost/internal/merge"
	"github.com/vvka-141/cadpost/internal/xmltree"
	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// Data is the consolidated model of one parsed directory.
// It is immutable; accessors return copies.
type Data struct {
	table     merge.Table
	trees     map[string]*xmltree.Element
	inputs    []cadpost.InputFile
	datasetID uuid.UUID
	assembly  *extract.AssemblyIndex
	metrics   *extract.MetricsIndex
	computed  *extract.ComputedIndex

	format     jsonfmt.Options
	fsProvider filesystem.FileSystemProvider
}

// Components returns a copy of the component table.
func (d *Data) Components() map[cadpost.ComponentID]cadpost.ComponentRecord {
	out := make(map[cadpost.ComponentID]cadpost.ComponentRecord, len(d.table))
	for id, rec := range d.table {
		out[id] = rec.Clone()
	}
	return out
}

// Component returns one record.
func (d *Data) Component(id cadpost.ComponentID) (cadpost.ComponentRecord, bool) {
	rec, ok := d.table[id]
	if !ok {
		return cadpost.ComponentRecord{}, false
	}
	return rec.Clone(), true
}

// ComponentIDs returns every component id in sorted order.
func (d *Data) ComponentIDs() []cadpost.ComponentID {
	return d.table.IDs()
}

// CADAssembly returns the parsed CADAssembly.xml tree.
func (d *Data) CADAssembly() *xmltree.Element {
	return d.trees[cadpost.CADAssemblyFile]
}

// CADAssemblyMetrics returns the parsed CADAssembly_metrics.xml tree.
func (d *Data) CADAssemblyMetrics() *xmltree.Element {
	return d.trees[cadpost.CADAssemblyMetricsFile]
}

// ComputedValues returns the parsed ComputedValues.xml tree.
func (d *Data) ComputedValues() *xmltree.Element {
	return d.trees[cadpost.ComputedValuesFile]
}

// Inputs describes the documents the model was built from, in merge order.
func (d *Data) Inputs() []cadpost.InputFile {
	return append([]cadpost.InputFile(nil), d.inputs...)
}

// DatasetID identifies the input documents by content.
func (d *Data) DatasetID() uuid.UUID {
	return d.datasetID
}

// MetricFor returns the metric id assigned to a component.
func (d *Data) MetricFor(id cadpost.ComponentID) (cadpost.MetricID, bool) {
	return d.metrics.MetricFor(id)
}

// MetricForCADName returns the metric id reported for a generated CAD name.
func (d *Data) MetricForCADName(name cadpost.CADName) (cadpost.MetricID, bool) {
	return d.metrics.MetricForCADName(name)
}

// Constraints returns the assembly constraints declared on a component.
// They are not part of the emitted JSON.
func (d *Data) Constraints(id cadpost.ComponentID) []extract.Constraint {
	return d.assembly.Constraints[id]
}

// Source names reported by Data.Sources.
const (
	SourceAssembly = "assembly"
	SourceMetrics  = "metrics"
	SourceComputed = "computed"
)

// Sources lists which documents contributed to a component, in merge order.
func (d *Data) Sources(id cadpost.ComponentID) []string {
	var out []string
	if _, ok := d.assembly.Components[id]; ok {
		out = append(out, SourceAssembly)
	}
	if _, ok := d.metrics.MetricFor(id); ok {
		out = append(out, SourceMetrics)
	}
	if _, ok := d.computed.Points[id]; ok {
		out = append(out, SourceComputed)
	}
	return out
}

// Document returns the top-level output shape.
func (d *Data) Document() cadpost.Document {
	return cadpost.Document{Components: d.Components()}
}

// Dump renders the model as canonical JSON.
func (d *Data) Dump() ([]byte, error) {
	out, err := jsonfmt.MarshalWithOptions(d.Document(), d.format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cadpost.ErrOutputFailed, err)
	}
	return out, nil
}

// Write renders the model to path using the reader's filesystem.
func (d *Data) Write(path string) error {
	return d.WriteFS(d.fsProvider, path)
}

// WriteFS renders the model to path on fsProvider. The file is closed on
// every path, and a failing close is reported.
func (d *Data) WriteFS(fsProvider filesystem.FileSystemProvider, path string) (err error) {
	out, err := d.Dump()
	if err != nil {
		return err
	}

	w, err := fsProvider.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", cadpost.ErrOutputFailed, path, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close %s: %w", cadpost.ErrOutputFailed, path, cerr)
		}
	}()

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", cadpost.ErrOutputFailed, path, err)
	}
	return nil
}
