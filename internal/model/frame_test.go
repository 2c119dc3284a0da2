package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromNormalProducesOrthonormalFrame(t *testing.T) {
	f := FromNormal(Vec3{}, Vec3{Z: 1})

	assert.InDelta(t, 1, f.X.Length(), 1e-9)
	assert.InDelta(t, 1, f.Y.Length(), 1e-9)
	assert.InDelta(t, 1, f.Z.Length(), 1e-9)
	assert.InDelta(t, 0, f.X.Dot(f.Y), 1e-9)
	assert.InDelta(t, 0, f.Y.Dot(f.Z), 1e-9)
	assert.InDelta(t, 0, f.X.Dot(f.Z), 1e-9)
}

func TestFromNormalTangentOrthogonalizes(t *testing.T) {
	f := FromNormalTangent(Vec3{}, Vec3{Z: 1}, Vec3{X: 1, Z: 0.5})

	assert.InDelta(t, 0, f.X.Dot(f.Z), 1e-9)
	assert.InDelta(t, 1, f.X.Length(), 1e-9)
}

func TestFrameToWorldAndToLocalRoundTrip(t *testing.T) {
	f := FromNormal(Vec3{X: 1, Y: 2, Z: 3}, Vec3{Z: 1})
	local := Vec3{X: 2, Y: -1, Z: 0.5}

	world := f.ToWorld(local)
	back := f.ToLocal(world)

	assert.InDelta(t, local.X, back.X, 1e-9)
	assert.InDelta(t, local.Y, back.Y, 1e-9)
	assert.InDelta(t, local.Z, back.Z, 1e-9)
}

func TestSpatialRefWorldAlignedWithoutOrientation(t *testing.T) {
	ref := NewSpatialRef(RefPoint, Vec3{X: 5}, nil, nil)
	f := ref.Frame()

	assert.Equal(t, Vec3{X: 1}, f.X)
	assert.Equal(t, Vec3{Y: 1}, f.Y)
	assert.Equal(t, Vec3{Z: 1}, f.Z)
}

func TestFrameMatrixEncodesOrigin(t *testing.T) {
	f := FromNormal(Vec3{X: 1, Y: 2, Z: 3}, Vec3{Z: 1})
	m := f.Matrix()

	assert.Equal(t, 1.0, m[0][3])
	assert.Equal(t, 2.0, m[1][3])
	assert.Equal(t, 3.0, m[2][3])
	assert.Equal(t, [4]float64{0, 0, 0, 1}, m[3])
}
