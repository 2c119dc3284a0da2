package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

type fakeParts struct {
	handles map[string]backend.Handle
}

func (f fakeParts) PartHandle(name string) (backend.Handle, bool) {
	h, ok := f.handles[name]
	return h, ok
}

func (f fakeParts) PartNames() []string {
	names := make([]string, 0, len(f.handles))
	for n := range f.handles {
		names = append(names, n)
	}
	return names
}

func newTestBox(t *testing.T, b *backend.Mock) backend.Handle {
	t.Helper()
	h, err := b.CreatePrimitive(backend.PrimitiveParams{Kind: "box", Box: struct{ X, Y, Z float64 }{X: 10, Y: 10, Z: 10}})
	require.NoError(t, err)
	return h
}

func TestParseSimpleRejectsBadInput(t *testing.T) {
	_, err := ParseSimple(">")
	require.Error(t, err)

	_, err = ParseSimple("?X")
	require.Error(t, err)

	s, err := ParseSimple(">Z")
	require.NoError(t, err)
	assert.Equal(t, OpMax, s.Op)
	assert.Equal(t, AxisZ, s.Axis)
}

func TestResolveSimpleSelector(t *testing.T) {
	b := backend.NewMock()
	h := newTestBox(t, b)

	features, err := Resolve(b, h, backend.FeatureFace, ">Z")
	require.NoError(t, err)
	assert.Len(t, features, 1)
}

func TestResolveOrUnion(t *testing.T) {
	b := backend.NewMock()
	h := newTestBox(t, b)

	features, err := Resolve(b, h, backend.FeatureFace, ">Z or <Z")
	require.NoError(t, err)
	assert.Len(t, features, 2)
}

func TestResolveAndIntersectionIsEmpty(t *testing.T) {
	b := backend.NewMock()
	h := newTestBox(t, b)

	_, err := Resolve(b, h, backend.FeatureFace, ">Z and <Z")
	require.Error(t, err)
	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.NoMatchingFeature, buildErr.Kind)
}

func TestResolveNotComplement(t *testing.T) {
	b := backend.NewMock()
	h := newTestBox(t, b)

	features, err := Resolve(b, h, backend.FeatureFace, "not >Z")
	require.NoError(t, err)
	assert.Len(t, features, 11) // 12 simple tokens minus the one excluded
}

func TestResolveRejectsMultipleAnds(t *testing.T) {
	b := backend.NewMock()
	h := newTestBox(t, b)

	// Falls through to resolveSimple since splitOnce refuses >1 occurrence,
	// and the combined string isn't a valid 2-char token either.
	_, err := Resolve(b, h, backend.FeatureFace, ">Z and >X and >Y")
	require.Error(t, err)
}

func TestPointResolverAbsolute(t *testing.T) {
	r := &PointResolver{}
	v, err := r.Resolve([]any{1.0, 2.0, 3.0})
	require.NoError(t, err)
	assert.Equal(t, model.Vec3{X: 1, Y: 2, Z: 3}, v)
}

func TestPointResolverOffset(t *testing.T) {
	r := &PointResolver{}
	v, err := r.Resolve(map[string]any{
		"from":   []any{1.0, 1.0, 1.0},
		"offset": []any{1.0, 0.0, 0.0},
	})
	require.NoError(t, err)
	assert.Equal(t, model.Vec3{X: 2, Y: 1, Z: 1}, v)
}

func TestPointResolverNamedPoint(t *testing.T) {
	r := &PointResolver{NamedPoints: map[string]model.Vec3{"origin": {X: 5, Y: 5, Z: 5}}}
	v, err := r.Resolve("origin")
	require.NoError(t, err)
	assert.Equal(t, model.Vec3{X: 5, Y: 5, Z: 5}, v)
}

func TestPointResolverDottedFeatureCenter(t *testing.T) {
	b := backend.NewMock()
	h := newTestBox(t, b)
	r := &PointResolver{Backend: b, Parts: fakeParts{handles: map[string]backend.Handle{"base": h}}}

	v, err := r.Resolve("base.face('>Z').center")
	require.NoError(t, err)
	assert.Equal(t, 5.0, v.Z)
}

func TestPointResolverGeometricMapping(t *testing.T) {
	b := backend.NewMock()
	h := newTestBox(t, b)
	r := &PointResolver{Backend: b, Parts: fakeParts{handles: map[string]backend.Handle{"base": h}}}

	v, err := r.Resolve(map[string]any{"part": "base", "face": ">Z", "at": "max"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, v.Z)
}

func TestPointResolverUnknownPartSurfacesKnownNames(t *testing.T) {
	b := backend.NewMock()
	r := &PointResolver{Backend: b, Parts: fakeParts{handles: map[string]backend.Handle{"base": newTestBox(t, b)}}}

	_, err := r.Resolve("missing.face('>Z').center")
	require.Error(t, err)
	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.PartNotFound, buildErr.Kind)
	assert.Contains(t, buildErr.KnownNames, "base")
}

func TestPointResolverStartEndOnlyValidForEdges(t *testing.T) {
	b := backend.NewMock()
	h := newTestBox(t, b)
	r := &PointResolver{Backend: b, Parts: fakeParts{handles: map[string]backend.Handle{"base": h}}}

	_, err := r.Resolve("base.face('>Z').start")
	require.Error(t, err)
	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.InvalidLocation, buildErr.Kind)
}

func TestResolveSpatialRefDerivesAxisOrientation(t *testing.T) {
	b := backend.NewMock()
	h := newTestBox(t, b)
	r := &PointResolver{Backend: b, Parts: fakeParts{handles: map[string]backend.Handle{"base": h}}}

	ref, err := r.ResolveSpatialRef("base", backend.FeatureFace, ">Z", "center")
	require.NoError(t, err)
	assert.True(t, ref.HasOrient)
	assert.Equal(t, model.Vec3{Z: 1}, ref.Orientation)
	assert.Equal(t, model.RefFace, ref.Kind)
}
