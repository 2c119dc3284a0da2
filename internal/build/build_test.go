package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// passthroughEnv is a no-op Env for tests whose specs carry no ${...}
// expressions.
type passthroughEnv struct{}

func (passthroughEnv) Resolve(v any) (any, error) { return v, nil }

func newTestContext() *Context {
	return &Context{
		Backend:     backend.NewMock(),
		Parts:       NewRegistry(),
		Sketches:    NewSketches(),
		NamedPoints: map[string]model.Vec3{},
		References:  map[string]model.SpatialRef{},
		Params:      passthroughEnv{},
	}
}

func TestPrimitiveBox(t *testing.T) {
	c := newTestContext()
	names, err := Primitive(c, "base", model.Spec{"kind": "box", "size": []any{10.0, 10.0, 10.0}})
	require.NoError(t, err)
	assert.Equal(t, []string{"base"}, names)

	p, ok := c.Parts.Get("base")
	require.True(t, ok)
	assert.Equal(t, model.Vec3{}, p.Position) // mock boxes are centered at the origin
}

func TestPrimitiveRejectsNonPositiveDimension(t *testing.T) {
	c := newTestContext()
	_, err := Primitive(c, "bad", model.Spec{"kind": "box", "size": []any{0.0, 1.0, 1.0}})
	require.Error(t, err)
}

func TestSketchAndExtrude(t *testing.T) {
	c := newTestContext()
	err := BuildSketch(c, "profile", model.Spec{
		"plane": "XY",
		"shapes": []any{
			map[string]any{"type": "rectangle", "width": 5.0, "height": 5.0, "op": "add"},
		},
	})
	require.NoError(t, err)

	names, err := Extrude(c, "extruded", model.Spec{"input": "profile", "distance": 3.0})
	require.NoError(t, err)
	assert.Equal(t, []string{"extruded"}, names)
	_, ok := c.Parts.Get("extruded")
	assert.True(t, ok)
}

func TestExtrudeRejectsUnknownSketch(t *testing.T) {
	c := newTestContext()
	_, err := Extrude(c, "extruded", model.Spec{"input": "missing", "distance": 3.0})
	require.Error(t, err)
}

func TestUnionFoldsInputs(t *testing.T) {
	c := newTestContext()
	_, err := Primitive(c, "a", model.Spec{"kind": "box", "size": []any{2.0, 2.0, 2.0}})
	require.NoError(t, err)
	_, err = Primitive(c, "b", model.Spec{"kind": "box", "size": []any{2.0, 2.0, 2.0}})
	require.NoError(t, err)

	names, err := Union(c, "combined", model.Spec{"op": "union", "inputs": []any{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"combined"}, names)
}

func TestDifferenceRequiresSubtract(t *testing.T) {
	c := newTestContext()
	_, err := Primitive(c, "a", model.Spec{"kind": "box", "size": []any{2.0, 2.0, 2.0}})
	require.NoError(t, err)

	_, err = Difference(c, "cut", model.Spec{"op": "difference", "base": "a", "subtract": []any{}})
	require.Error(t, err)
}

func TestBooleanAcceptsOperationShorthand(t *testing.T) {
	c := newTestContext()
	_, err := Primitive(c, "plate", model.Spec{"kind": "box", "size": []any{20.0, 20.0, 5.0}})
	require.NoError(t, err)
	_, err = Primitive(c, "hole_0", model.Spec{"kind": "cylinder", "radius": 1.0, "height": 5.0})
	require.NoError(t, err)

	names, err := Boolean(c, "drilled", model.Spec{"operation": "difference", "base": "plate", "subtract": []any{"hole_0"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"drilled"}, names)
}

func TestTransformTranslateUpdatesPosition(t *testing.T) {
	c := newTestContext()
	_, err := Primitive(c, "a", model.Spec{"kind": "box", "size": []any{2.0, 2.0, 2.0}})
	require.NoError(t, err)

	_, err = Transform(c, "move", model.Spec{
		"input": "a",
		"steps": []any{
			map[string]any{"type": "translate", "offset": []any{1.0, 0.0, 0.0}},
		},
	})
	require.NoError(t, err)

	p, _ := c.Parts.Get("a")
	assert.Equal(t, 1.0, p.Position.X)
	assert.Len(t, p.History, 1)
}

func TestTransformRotateRequiresExplicitOrigin(t *testing.T) {
	c := newTestContext()
	_, err := Primitive(c, "a", model.Spec{"kind": "box", "size": []any{2.0, 2.0, 2.0}})
	require.NoError(t, err)

	_, err = Transform(c, "spin", model.Spec{
		"input": "a",
		"steps": []any{
			map[string]any{"type": "rotate", "angle": 90.0, "axis": "Z"},
		},
	})
	require.Error(t, err)
}

func TestLoftRuledFlagReachesBackend(t *testing.T) {
	c := newTestContext()
	require.NoError(t, BuildSketch(c, "bottom", model.Spec{
		"plane": "XY",
		"shapes": []any{
			map[string]any{"type": "rectangle", "width": 5.0, "height": 5.0, "op": "add"},
		},
	}))
	require.NoError(t, BuildSketch(c, "top", model.Spec{
		"plane":  "XY",
		"origin": []any{0.0, 0.0, 3.0},
		"shapes": []any{
			map[string]any{"type": "rectangle", "width": 2.0, "height": 2.0, "op": "add"},
		},
	}))

	_, err := Loft(c, "tapered", model.Spec{"profiles": []any{"bottom", "top"}, "ruled": true})
	require.NoError(t, err)

	mock := c.Backend.(*backend.Mock)
	var lastLoft backend.Operation
	for _, op := range mock.Log {
		if op.Name == "loft" {
			lastLoft = op
		}
	}
	assert.Equal(t, true, lastLoft.Args["ruled"])
}

func TestPatternLinearEmitsNamedParts(t *testing.T) {
	c := newTestContext()
	_, err := Primitive(c, "a", model.Spec{"kind": "box", "size": []any{1.0, 1.0, 1.0}})
	require.NoError(t, err)

	names, err := Pattern(c, "row", model.Spec{
		"pattern": "linear", "input": "a", "axis": "X", "spacing": 2.0, "count": 3.0,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"row_0", "row_1", "row_2"}, names)
}

func TestFinishingFilletMutatesInPlace(t *testing.T) {
	c := newTestContext()
	_, err := Primitive(c, "a", model.Spec{"kind": "box", "size": []any{2.0, 2.0, 2.0}})
	require.NoError(t, err)

	names, err := Finishing(c, "round", model.Spec{
		"op": "fillet", "input": "a", "radius": 0.2, "edges": "all",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names)

	p, _ := c.Parts.Get("a")
	assert.Len(t, p.Metadata["finishing_ops"].([]map[string]any), 1)
}

func TestFinishingAcceptsFinishAlias(t *testing.T) {
	c := newTestContext()
	_, err := Primitive(c, "base", model.Spec{"kind": "box", "size": []any{20.0, 20.0, 5.0}})
	require.NoError(t, err)

	names, err := Finishing(c, "round", model.Spec{
		"finish": "fillet", "input": "base", "radius": 2.0, "edges": "all",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"base"}, names)

	p, _ := c.Parts.Get("base")
	assert.Len(t, p.Metadata["finishing_ops"].([]map[string]any), 1)
}

func TestReferenceComputesSpatialRef(t *testing.T) {
	c := newTestContext()
	_, err := Primitive(c, "a", model.Spec{"kind": "box", "size": []any{10.0, 10.0, 10.0}})
	require.NoError(t, err)

	err = Reference(c, "top", model.Spec{"part": "a", "face": ">Z", "at": "center"})
	require.NoError(t, err)

	ref, ok := c.References["top"]
	require.True(t, ok)
	assert.Equal(t, 5.0, ref.Position.Z)
}

func TestExpandPartRefsWildcard(t *testing.T) {
	c := newTestContext()
	for _, n := range []string{"row_0", "row_1", "row_2"} {
		_, err := Primitive(c, n, model.Spec{"kind": "box", "size": []any{1.0, 1.0, 1.0}})
		require.NoError(t, err)
	}
	names, err := ExpandPartRefs(c.Parts, []any{"row_*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"row_0", "row_1", "row_2"}, names)
}

func TestExpandPartRefsRangeMissingPartFails(t *testing.T) {
	c := newTestContext()
	_, err := ExpandPartRefs(c.Parts, []any{map[string]any{"range": "row[0..2]"}})
	require.Error(t, err)
}
