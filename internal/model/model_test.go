package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSketchValidateRequiresAdditiveShape(t *testing.T) {
	s := Sketch{
		Name:  "s1",
		Plane: PlaneXY,
		Shapes: []Shape2D{
			{Kind: ShapeCircle, Op: OpSubtract, Radius: 3},
		},
	}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "additive")
}

func TestSketchValidateOK(t *testing.T) {
	s := Sketch{
		Name:  "s1",
		Plane: PlaneXY,
		Shapes: []Shape2D{
			{Kind: ShapeRectangle, Op: OpAdd, Width: 50, Height: 20},
			{Kind: ShapeCircle, Op: OpSubtract, Radius: 3},
		},
	}
	assert.NoError(t, s.Validate())
}

func TestPolygonRequiresThreePoints(t *testing.T) {
	s := Shape2D{Kind: ShapePolygon, Op: OpAdd, Points: [][2]float64{{0, 0}, {1, 0}}}
	require.Error(t, s.Validate())
}

func TestMetadataPropagate(t *testing.T) {
	source := Metadata{"color": "red", "primitive_type": "box"}
	opSpecific := Metadata{"operation_type": "union"}
	overrides := Metadata{"color": "blue"}

	out := Propagate(source, opSpecific, overrides)

	assert.Equal(t, "blue", out["color"])
	assert.Equal(t, "union", out["operation_type"])
	_, hasPrimitiveType := out["primitive_type"]
	assert.False(t, hasPrimitiveType, "operation-specific keys must not propagate from source")
}

func TestAppendFinishingOpGrowsByOne(t *testing.T) {
	m := Metadata{}
	m.AppendFinishingOp(map[string]any{"op": "fillet", "radius": 2.0})
	ops, _ := m["finishing_ops"].([]map[string]any)
	require.Len(t, ops, 1)

	m.AppendFinishingOp(map[string]any{"op": "chamfer", "length": 1.0})
	ops, _ = m["finishing_ops"].([]map[string]any)
	assert.Len(t, ops, 2)
}

func TestRotateRodriguesAboutZAxis(t *testing.T) {
	p := Vec3{X: 1, Y: 0, Z: 0}
	origin := Vec3{}
	axis := Vec3{Z: 1}

	got := RotateRodrigues(p, origin, axis, math.Pi/2)

	assert.InDelta(t, 0, got.X, 1e-9)
	assert.InDelta(t, 1, got.Y, 1e-9)
	assert.InDelta(t, 0, got.Z, 1e-9)
}

func TestPartCloneDuplicatesHistoryNotAliased(t *testing.T) {
	p := NewPart("box1", fakeHandle{"h1"}, Metadata{"color": "red"}, Vec3{})
	p.RecordTransform("translate", Vec3{X: 1}, map[string]any{"offset": []float64{1, 0, 0}})

	clone := p.Clone("box1_0", fakeHandle{"h2"})
	clone.RecordTransform("translate", Vec3{X: 2}, nil)

	assert.Len(t, p.History, 1)
	assert.Len(t, clone.History, 2)
	assert.Equal(t, Vec3{X: 1}, p.Position)
	assert.Equal(t, Vec3{X: 2}, clone.Position)
}

type fakeHandle struct{ id string }

func (h fakeHandle) HandleID() string { return h.id }
