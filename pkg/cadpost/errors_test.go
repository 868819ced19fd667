package cadpost

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", fmt.Errorf("%w: too many arguments", ErrUsage), ExitUsageError},
		{"config", fmt.Errorf("load: %w", ErrInvalidConfig), ExitConfigError},
		{"missing input", fmt.Errorf("%w: CADAssembly.xml", ErrMissingInput), ExitMissingInput},
		{"document error", &DocumentError{File: "ComputedValues.xml", Message: "bad"}, ExitMalformedDocument},
		{"wrapped document error", fmt.Errorf("parse: %w", &DocumentError{Message: "bad"}), ExitMalformedDocument},
		{"output", fmt.Errorf("%w: disk full", ErrOutputFailed), ExitOutputFailed},
		{"unknown", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

func TestDocumentError_Error(t *testing.T) {
	err := &DocumentError{
		File:      "CADAssembly_metrics.xml",
		Line:      42,
		Element:   "CG",
		Attribute: "Y",
		Message:   "attribute is missing",
		Hint:      "CG needs X, Y and Z",
	}

	msg := err.Error()
	assert.Contains(t, msg, "CADAssembly_metrics.xml (line 42)")
	assert.Contains(t, msg, "[CG@Y]")
	assert.Contains(t, msg, "attribute is missing")
	assert.Contains(t, msg, "Hint: CG needs X, Y and Z")
	assert.True(t, errors.Is(err, ErrMalformedDocument))
}

func TestDocumentError_NoLocation(t *testing.T) {
	err := &DocumentError{Message: "unexpected EOF"}
	assert.Equal(t, "malformed document <document>: unexpected EOF", err.Error())
}

func TestMatrix_CloneIsDeep(t *testing.T) {
	m := NewMatrix(2, 2)
	m[0][0] = 1
	c := m.Clone()
	c[0][0] = 5

	assert.Equal(t, 1.0, m[0][0])
	rows, cols := c.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Nil(t, Matrix(nil).Clone())
}

func TestComponentRecord_CloneIsDeep(t *testing.T) {
	mass := 12.5
	orig := ComponentRecord{
		ComponentName:   "Bracket",
		Rotation:        Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Translation:     &Vector3{1, 2, 3},
		BoundingBox:     &BoundingBox{Extents: Vector3{4, 5, 6}, OutlinePoints: []Vector3{{0, 0, 0}}},
		CenterOfGravity: &Vector3{7, 8, 9},
		Inertia:         &Inertia{AtDefaultCSYS: Matrix{{1}}, PrincipalMoments: &PrincipalMoments{Moments: Matrix{{2}}}},
		Mass:            &mass,
		Units:           &Units{Mass: "kilogram"},
		Points:          map[string]Vector3{"PT": {1, 1, 1}},
	}

	c := orig.Clone()
	c.Rotation[0][0] = 9
	c.Translation[0] = 9
	c.BoundingBox.OutlinePoints[0][0] = 9
	c.CenterOfGravity[0] = 9
	c.Inertia.AtDefaultCSYS[0][0] = 9
	c.Inertia.PrincipalMoments.Moments[0][0] = 9
	*c.Mass = 9
	c.Units.Mass = "gram"
	c.Points["PT"] = Vector3{9, 9, 9}

	assert.Equal(t, 1.0, orig.Rotation[0][0])
	assert.Equal(t, 1.0, orig.Translation[0])
	assert.Equal(t, 0.0, orig.BoundingBox.OutlinePoints[0][0])
	assert.Equal(t, 7.0, orig.CenterOfGravity[0])
	assert.Equal(t, 1.0, orig.Inertia.AtDefaultCSYS[0][0])
	assert.Equal(t, 2.0, orig.Inertia.PrincipalMoments.Moments[0][0])
	assert.Equal(t, 12.5, *orig.Mass)
	assert.Equal(t, "kilogram", orig.Units.Mass)
	assert.Equal(t, Vector3{1, 1, 1}, orig.Points["PT"])
	assert.Equal(t, ComponentRecord{}.Clone(), ComponentRecord{})
}
