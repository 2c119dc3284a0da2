package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

func TestMockCreatePrimitiveBoundingBox(t *testing.T) {
	m := NewMock()

	h, err := m.CreatePrimitive(PrimitiveParams{Kind: "box", Box: struct{ X, Y, Z float64 }{X: 10, Y: 20, Z: 30}})
	require.NoError(t, err)

	box, err := m.BoundingBox(h)
	require.NoError(t, err)
	assert.Equal(t, model.Vec3{X: -5, Y: -10, Z: -15}, box.Min)
	assert.Equal(t, model.Vec3{X: 5, Y: 10, Z: 15}, box.Max)
	assert.Equal(t, model.Vec3{}, box.Center())
}

func TestMockUnknownHandleIsBackendError(t *testing.T) {
	m := NewMock()
	_, err := m.BoundingBox(mockHandle{id: "does-not-exist"})
	require.Error(t, err)

	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.BackendError, buildErr.Kind)
}

func TestMockCombineUnionsBoundingBoxes(t *testing.T) {
	m := NewMock()
	a, _ := m.CreatePrimitive(PrimitiveParams{Kind: "box", Box: struct{ X, Y, Z float64 }{X: 2, Y: 2, Z: 2}})
	b, err := m.CreatePrimitive(PrimitiveParams{Kind: "box", Box: struct{ X, Y, Z float64 }{X: 2, Y: 2, Z: 2}})
	require.NoError(t, err)
	b2, err := m.Translate(b, model.Vec3{X: 10})
	require.NoError(t, err)

	combined, err := m.Combine(OpUnion, a, b2)
	require.NoError(t, err)

	box, err := m.BoundingBox(combined)
	require.NoError(t, err)
	assert.Equal(t, 11.0, box.Max.X)
}

func TestMockRecordsOperationLog(t *testing.T) {
	m := NewMock()
	_, err := m.CreatePrimitive(PrimitiveParams{Kind: "sphere", Radius: 5})
	require.NoError(t, err)

	require.Len(t, m.Log, 1)
	assert.Equal(t, "createPrimitive", m.Log[0].Name)
}

func TestMockExtrudeGrowsZBound(t *testing.T) {
	m := NewMock()
	sketch, err := m.CreatePrimitive(PrimitiveParams{Kind: "box", Box: struct{ X, Y, Z float64 }{X: 1, Y: 1, Z: 0}})
	require.NoError(t, err)

	solid, err := m.Extrude(sketch, 12, model.Vec3{Z: 1}, 0)
	require.NoError(t, err)

	box, err := m.BoundingBox(solid)
	require.NoError(t, err)
	assert.Equal(t, 12.0, box.Max.Z)
}

func TestMockSelectFacesRejectsMalformedSelector(t *testing.T) {
	m := NewMock()
	h, err := m.CreatePrimitive(PrimitiveParams{Kind: "box", Box: struct{ X, Y, Z float64 }{X: 1, Y: 1, Z: 1}})
	require.NoError(t, err)

	_, err = m.SelectFaces(h, "invalid")
	require.Error(t, err)

	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.SelectorError, buildErr.Kind)
}

func TestMockTessellateVerticesReturnsEightCorners(t *testing.T) {
	m := NewMock()
	h, err := m.CreatePrimitive(PrimitiveParams{Kind: "box", Box: struct{ X, Y, Z float64 }{X: 2, Y: 2, Z: 2}})
	require.NoError(t, err)

	verts, err := m.TessellateVertices(h)
	require.NoError(t, err)
	assert.Len(t, verts, 8)
}

func TestUnavailableReturnsBackendErrorForEveryCall(t *testing.T) {
	u := Unavailable{Reason: "test"}
	_, err := u.CreatePrimitive(PrimitiveParams{Kind: "box"})
	require.Error(t, err)

	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.BackendError, buildErr.Kind)
}

func TestSelectFallsBackToUnavailableWhenNoKernelConfigured(t *testing.T) {
	b := Select(nil, "no kernel installed")
	_, isUnavailable := b.(Unavailable)
	assert.True(t, isUnavailable)
}
