package reader

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/cadpost/internal/files/filesystem"
	"github.com/vvka-141/cadpost/internal/jsonfmt"
	"github.com/vvka-141/cadpost/pkg/cadpost"
)

const (
	sampleDir                       = "../../testdata/sample"
	topAssembly cadpost.ComponentID = "{272a6594-975d-4c4f-8cbe-b4f6e4d2b8f0}|1"
)

// sampleFS loads the sample documents into an in-memory filesystem rooted at /analysis.
func sampleFS(t *testing.T) *filesystem.MemoryFileSystem {
	t.Helper()
	mfs := filesystem.NewMemoryFileSystem("/analysis")
	for _, name := range cadpost.InputFiles {
		content, err := os.ReadFile(filepath.Join(sampleDir, name))
		require.NoError(t, err)
		mfs.AddFile(name, string(content))
	}
	return mfs
}

func parseSample(t *testing.T) *Data {
	t.Helper()
	r, err := NewReader(sampleDir, WithParse())
	require.NoError(t, err)
	require.NotNil(t, r.CADData())
	return r.CADData()
}

func TestParse_UnionOfAllDocuments(t *testing.T) {
	data := parseSample(t)

	assert.Equal(t, []cadpost.ComponentID{"A1", "B2", "C3", "D4", "P9", topAssembly}, data.ComponentIDs())
	assert.Len(t, data.Components(), 6)
}

func TestParse_BracketScenario(t *testing.T) {
	data := parseSample(t)

	rec, ok := data.Component("A1")
	require.True(t, ok)

	assert.Equal(t, "Bracket", rec.ComponentName)
	assert.Equal(t, "bracket_prt", rec.CADFilenameOriginal)
	assert.Equal(t, "BRACKET_PRT", rec.CADFilenameGenerated)
	assert.Equal(t, cadpost.CADTypePart, rec.CADType)
	assert.Equal(t, cadpost.MetricID("2"), rec.MetricID)
	assert.Equal(t, "DEFAULT", rec.CoordinateSystem)

	require.NotNil(t, rec.Mass)
	assert.Equal(t, 12.5, *rec.Mass)
	require.NotNil(t, rec.Volume)
	assert.Equal(t, 300.0, *rec.Volume)
	assert.Nil(t, rec.SurfaceArea)

	require.NotNil(t, rec.Units)
	assert.Equal(t, cadpost.Units{
		Distance:    "millimeter",
		Force:       "kg mm/sec2",
		Mass:        "kilogram",
		Temperature: "centigrade",
		Time:        "second",
	}, *rec.Units)

	assert.Equal(t, cadpost.Matrix{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}}, rec.Rotation)
	require.NotNil(t, rec.Translation)
	assert.Equal(t, cadpost.Vector3{12.5, -3.25, 1e-07}, *rec.Translation)

	assert.Nil(t, rec.Points)
}

func TestParse_DefaultCSYSOnlyInertia(t *testing.T) {
	data := parseSample(t)

	rec, _ := data.Component("A1")
	require.NotNil(t, rec.Inertia)
	assert.Equal(t, cadpost.Matrix{{0.1, 0, 0}, {0, 0.2, 0}, {0, 0, 0.30000000000000004}}, rec.Inertia.AtDefaultCSYS)
	assert.Nil(t, rec.Inertia.AtCenterOfGravity)
	assert.Nil(t, rec.Inertia.PrincipalMoments)

	out, err := data.Dump()
	require.NoError(t, err)
	var doc map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	inertia := doc["components"]["A1"]["inertia"].(map[string]any)
	assert.Contains(t, inertia, "inertia_tensor_at_default_csys")
	assert.NotContains(t, inertia, "inertia_tensor_at_center_of_gravity")
	assert.NotContains(t, inertia, "principle_moments_of_inertia")
}

func TestParse_TransformsOnlyFromRootMetric(t *testing.T) {
	data := parseSample(t)

	bolt, ok := data.Component("C3")
	require.True(t, ok)
	assert.Equal(t, cadpost.MetricID("4"), bolt.MetricID)
	assert.Nil(t, bolt.Rotation, "C3 is placed by B2, not by the root assembly")
	assert.Nil(t, bolt.Translation)

	plate, _ := data.Component("B2")
	require.NotNil(t, plate.Translation)
	assert.Equal(t, cadpost.Vector3{0, 100, 0}, *plate.Translation)

	root, _ := data.Component(topAssembly)
	assert.Nil(t, root.Rotation)
	assert.Nil(t, root.Translation)
}

func TestParse_RootAssemblyMetrics(t *testing.T) {
	data := parseSample(t)

	root, ok := data.Component(topAssembly)
	require.True(t, ok)
	assert.Equal(t, "TestModel_1", root.ComponentName)
	assert.Equal(t, cadpost.CADTypeAssembly, root.CADType)
	require.NotNil(t, root.Mass)
	assert.Equal(t, 20.786552812349075, *root.Mass)
	require.NotNil(t, root.BoundingBox)
	assert.Equal(t, cadpost.Vector3{400.0, 486.2793604000001, 345.14999999999975}, root.BoundingBox.Extents)
	assert.Len(t, root.BoundingBox.OutlinePoints, 2)
	require.NotNil(t, root.Inertia)
	assert.NotNil(t, root.Inertia.AtCenterOfGravity)
	require.NotNil(t, root.Inertia.PrincipalMoments)
	assert.Equal(t, cadpost.Matrix{{914498.5113436849}, {2542791.8616092685}, {3285409.484247029}},
		root.Inertia.PrincipalMoments.Moments)
	assert.Nil(t, root.Points, "scalar-only computed values add nothing")
}

func TestParse_ComputedPoints(t *testing.T) {
	data := parseSample(t)

	bolt, _ := data.Component("C3")
	assert.Equal(t, map[string]cadpost.Vector3{
		"PT_TIP":  {0, 0, 20},
		"PT_HEAD": {0, 0, 0},
	}, bolt.Points)
	assert.Equal(t, "Bolt", bolt.ComponentName, "points merge onto earlier fields")
	require.NotNil(t, bolt.BoundingBox)
	assert.Empty(t, bolt.BoundingBox.OutlinePoints)

	sensor, ok := data.Component("P9")
	require.True(t, ok)
	assert.Equal(t, cadpost.ComponentRecord{
		Points: map[string]cadpost.Vector3{"PT_ORIGIN": {-1.5, 2.25, 3.125e-05}},
	}, sensor)
}

func TestParse_FieldIsolation(t *testing.T) {
	data := parseSample(t)

	label, ok := data.Component("D4")
	require.True(t, ok)
	assert.Equal(t, cadpost.ComponentRecord{
		ComponentName:       "Label",
		CADFilenameOriginal: "label_prt",
		CADType:             cadpost.CADTypePart,
	}, label, "assembly-only component carries no metric or point fields")
	_, hasMetric := data.MetricFor("D4")
	assert.False(t, hasMetric)
}

func TestData_Lookups(t *testing.T) {
	data := parseSample(t)

	met, ok := data.MetricFor("B2")
	assert.True(t, ok)
	assert.Equal(t, cadpost.MetricID("3"), met)

	met, ok = data.MetricForCADName("BOLT_M6")
	assert.True(t, ok)
	assert.Equal(t, cadpost.MetricID("4"), met)

	require.Len(t, data.Constraints("A1"), 1)
	assert.Empty(t, data.Constraints("D4"))

	assert.Equal(t, "Assemblies", data.CADAssembly().Name)
	assert.Equal(t, "CADMetrics", data.CADAssemblyMetrics().Name)
	assert.Equal(t, "Components", data.ComputedValues().Name)

	assert.Equal(t, []string{SourceAssembly, SourceMetrics, SourceComputed}, data.Sources("C3"))
	assert.Equal(t, []string{SourceAssembly}, data.Sources("D4"))
	assert.Equal(t, []string{SourceComputed}, data.Sources("P9"))
	assert.Empty(t, data.Sources("missing"))

	inputs := data.Inputs()
	require.Len(t, inputs, 3)
	assert.Equal(t, cadpost.CADAssemblyFile, inputs[0].Name)
	assert.NotEqual(t, uuid.Nil, data.DatasetID())
}

func TestData_AccessorsReturnCopies(t *testing.T) {
	data := parseSample(t)

	rec, _ := data.Component("A1")
	*rec.Mass = 99
	rec.Rotation[0][0] = 99

	comps := data.Components()
	delete(comps, "A1")

	again, ok := data.Component("A1")
	require.True(t, ok)
	assert.Equal(t, 12.5, *again.Mass)
	assert.Equal(t, 1.0, again.Rotation[0][0])
}

func TestDump_Idempotent(t *testing.T) {
	first := parseSample(t)
	second := parseSample(t)

	a, err := first.Dump()
	require.NoError(t, err)
	b, err := first.Dump()
	require.NoError(t, err)
	c, err := second.Dump()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	assert.Equal(t, first.DatasetID(), second.DatasetID())
}

func TestDump_NumericFidelity(t *testing.T) {
	data := parseSample(t)

	out, err := data.Dump()
	require.NoError(t, err)

	var doc cadpost.Document
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, data.Components(), doc.Components)
}

func TestDump_Layout(t *testing.T) {
	data := parseSample(t)

	out, err := data.Dump()
	require.NoError(t, err)
	s := string(out)

	assert.True(t, len(s) > 0 && s[0] == '{')
	assert.NotEqual(t, byte('\n'), out[len(out)-1])
	assert.Contains(t, s, "\n    \"components\": {\n")
	assert.Contains(t, s, `"mass": 12.5`)
	assert.Contains(t, s, "\"volume\": 300\n")
	assert.Contains(t, s, `"PT_TIP": [ 0, 0, 20 ]`)
	assert.Contains(t, s, `"outline_points": []`)
	assert.NotContains(t, s, "null")
}

func TestDump_CustomFormat(t *testing.T) {
	r, err := NewReader(sampleDir, WithParse(), WithFormat(jsonfmt.Options{Indent: "  "}))
	require.NoError(t, err)

	out, err := r.CADData().Dump()
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  \"components\": {\n")
	assert.NotContains(t, string(out), "[ 0, 0, 20 ]")
}

func TestParse_EmptyDocuments(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/analysis")
	mfs.AddFile(cadpost.CADAssemblyFile, "<Assemblies/>")
	mfs.AddFile(cadpost.CADAssemblyMetricsFile, "<CADMetrics/>")
	mfs.AddFile(cadpost.ComputedValuesFile, "<Components/>")

	r, err := NewReader("/analysis", WithFileSystem(mfs))
	require.NoError(t, err)
	data, err := r.Parse("")
	require.NoError(t, err)

	out, err := data.Dump()
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"components\": {}\n}", string(out))
}

func TestParse_MissingInput(t *testing.T) {
	mfs := sampleFS(t)
	mfs.Remove(cadpost.ComputedValuesFile)

	r, err := NewReader("/analysis", WithFileSystem(mfs))
	require.NoError(t, err)

	data, err := r.Parse("")
	require.Error(t, err)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, cadpost.ErrMissingInput)
	assert.Nil(t, r.CADData())
}

func TestNewReader_WithParseReturnsError(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/analysis")

	r, err := NewReader("/analysis", WithFileSystem(mfs), WithParse())
	assert.Nil(t, r)
	assert.ErrorIs(t, err, cadpost.ErrMissingInput)
}

func TestParse_MalformedKeepsPreviousModel(t *testing.T) {
	mfs := sampleFS(t)
	r, err := NewReader("/analysis", WithFileSystem(mfs), WithParse())
	require.NoError(t, err)
	before := r.CADData()

	mfs.AddFile(cadpost.CADAssemblyMetricsFile, "<CADMetrics><MetricComponents></CADMetrics>")
	_, err = r.Parse("")
	require.Error(t, err)
	assert.ErrorIs(t, err, cadpost.ErrMalformedDocument)
	assert.Equal(t, cadpost.ExitMalformedDocument, cadpost.ExitCodeForError(err))

	var docErr *cadpost.DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, cadpost.CADAssemblyMetricsFile, docErr.File)

	assert.Same(t, before, r.CADData())
}

func TestParse_MissingRequiredAttribute(t *testing.T) {
	mfs := sampleFS(t)
	mfs.AddFile(cadpost.ComputedValuesFile, `<Components><Component><Metrics/></Component></Components>`)

	r, err := NewReader("/analysis", WithFileSystem(mfs))
	require.NoError(t, err)

	_, err = r.Parse("")
	assert.ErrorIs(t, err, cadpost.ErrMalformedDocument)
	assert.Contains(t, err.Error(), "ComponentInstanceID")
}

func TestParse_ExplicitDirOverridesReaderDir(t *testing.T) {
	mfs := sampleFS(t)
	r, err := NewReader("/elsewhere", WithFileSystem(mfs))
	require.NoError(t, err)

	_, err = r.Parse("")
	require.ErrorIs(t, err, cadpost.ErrMissingInput)

	data, err := r.Parse("/analysis")
	require.NoError(t, err)
	assert.Len(t, data.Components(), 6)
	assert.Equal(t, "/elsewhere", r.Dir())
}

func TestNewReader_EmptyDirUsesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	r, err := NewReader("")
	require.NoError(t, err)
	assert.Equal(t, wd, r.Dir())
	assert.Nil(t, r.CADData())
}

func TestWrite_MemoryFileSystem(t *testing.T) {
	mfs := sampleFS(t)
	r, err := NewReader("/analysis", WithFileSystem(mfs), WithParse())
	require.NoError(t, err)

	require.NoError(t, r.CADData().Write("/analysis/cad_data.json"))

	written, err := mfs.ReadFile("/analysis/cad_data.json")
	require.NoError(t, err)
	expected, err := r.CADData().Dump()
	require.NoError(t, err)
	assert.Equal(t, expected, written)
}

func TestWriteFS_OSFileSystem(t *testing.T) {
	data := parseSample(t)
	target := filepath.Join(t.TempDir(), cadpost.DefaultOutputFile)

	require.NoError(t, data.WriteFS(filesystem.NewOSFileSystem(), target))

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	expected, err := data.Dump()
	require.NoError(t, err)
	assert.Equal(t, expected, written)
}

type failingFS struct {
	filesystem.FileSystemProvider
	createErr error
	writeErr  error
	closeErr  error
	closed    bool
}

func (f *failingFS) Create(string) (io.WriteCloser, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &failingWriter{fs: f}, nil
}

type failingWriter struct{ fs *failingFS }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.fs.writeErr != nil {
		return 0, w.fs.writeErr
	}
	return len(p), nil
}

func (w *failingWriter) Close() error {
	w.fs.closed = true
	return w.fs.closeErr
}

func TestWriteFS_Failures(t *testing.T) {
	data := parseSample(t)
	boom := errors.New("disk full")

	tests := []struct {
		name        string
		fs          *failingFS
		expectClose bool
	}{
		{"create", &failingFS{createErr: boom}, false},
		{"write", &failingFS{writeErr: boom}, true},
		{"close", &failingFS{closeErr: boom}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := data.WriteFS(tt.fs, "/out/cad_data.json")
			require.Error(t, err)
			assert.ErrorIs(t, err, cadpost.ErrOutputFailed)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, cadpost.ExitOutputFailed, cadpost.ExitCodeForError(err))
			assert.Equal(t, tt.expectClose, tt.fs.closed)
		})
	}
}
