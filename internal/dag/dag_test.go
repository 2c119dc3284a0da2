package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

func sampleDoc() *model.Document {
	doc := model.NewDocument()
	doc.Parameters["width"] = 10.0
	doc.Parameters["height"] = "${width * 2}"
	doc.Sketches["profile"] = model.Spec{"plane": "XY", "origin": []any{0.0, 0.0, 0.0}, "shapes": []any{
		map[string]any{"rectangle": map[string]any{"width": "${width}", "height": "${height}"}, "op": "add"},
	}}
	doc.Parts["base"] = model.Spec{"sketch": "profile"}
	doc.Operations["extruded"] = model.Spec{"type": "extrude", "input": "base", "distance": "${height}"}
	doc.References["top"] = model.Spec{"part": "extruded", "face": ">Z", "at": "center"}
	return doc
}

func TestBuildProducesNodesAndEdges(t *testing.T) {
	doc := sampleDoc()
	g, err := Build(doc)
	require.NoError(t, err)

	counts := g.CountsByKind()
	assert.Equal(t, 2, counts[KindParameter])
	assert.Equal(t, 1, counts[KindSketch])
	assert.Equal(t, 1, counts[KindPart])
	assert.Equal(t, 1, counts[KindOperation])
	assert.Equal(t, 1, counts[KindReference])

	assert.Contains(t, g.Successors(ID(KindParameter, "height")), ID(KindParameter, "width"))
	assert.Contains(t, g.Successors(ID(KindPart, "base")), ID(KindSketch, "profile"))
	assert.Contains(t, g.Successors(ID(KindOperation, "extruded")), ID(KindPart, "base"))
	assert.Contains(t, g.Successors(ID(KindOperation, "extruded")), ID(KindParameter, "height"))
	assert.Contains(t, g.Successors(ID(KindReference, "top")), ID(KindOperation, "extruded"))
}

func TestBuildContentHashIsOrderIndependent(t *testing.T) {
	a := map[string]any{"x": 1.0, "y": 2.0}
	b := map[string]any{"y": 2.0, "x": 1.0}
	ha, err := ContentHash(a)
	require.NoError(t, err)
	hb, err := ContentHash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
}

func TestBuildContentHashDiffersOnChange(t *testing.T) {
	ha, err := ContentHash(map[string]any{"x": 1.0})
	require.NoError(t, err)
	hb, err := ContentHash(map[string]any{"x": 2.0})
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestAncestorsAndDescendants(t *testing.T) {
	doc := sampleDoc()
	g, err := Build(doc)
	require.NoError(t, err)

	desc := g.Descendants(ID(KindParameter, "width"))
	assert.Contains(t, desc, ID(KindParameter, "height"))
	assert.Contains(t, desc, ID(KindOperation, "extruded"))
	assert.Contains(t, desc, ID(KindReference, "top"))

	anc := g.Ancestors(ID(KindSketch, "profile"))
	assert.Contains(t, anc, ID(KindParameter, "width"))
	assert.Contains(t, anc, ID(KindParameter, "height"))
}

func TestTopoSortRespectsDependencies(t *testing.T) {
	doc := sampleDoc()
	g, err := Build(doc)
	require.NoError(t, err)

	order := g.TopoSort()
	pos := make(map[NodeID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	assert.Less(t, pos[ID(KindParameter, "width")], pos[ID(KindParameter, "height")])
	assert.Less(t, pos[ID(KindSketch, "profile")], pos[ID(KindPart, "base")])
	assert.Less(t, pos[ID(KindPart, "base")], pos[ID(KindOperation, "extruded")])
	assert.Less(t, pos[ID(KindOperation, "extruded")], pos[ID(KindReference, "top")])
}

func TestBuildRejectsCycle(t *testing.T) {
	doc := model.NewDocument()
	doc.Parameters["a"] = "${b}"
	doc.Parameters["b"] = "${a}"

	_, err := Build(doc)
	require.Error(t, err)
	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.CircularDependency, buildErr.Kind)
}

func TestFindCycleDetectsSelfEdge(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "a", Kind: KindParameter, Name: "a"})
	g.AddEdge("a", "a")
	cyc := g.FindCycle()
	require.NotNil(t, cyc)
	assert.Equal(t, Cycle{"a"}, cyc)
}

func TestInvalidateAndValidate(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "a", Kind: KindParameter, Name: "a", Valid: true})
	g.Invalidate("a")
	n, ok := g.Node("a")
	require.True(t, ok)
	assert.False(t, n.Valid)
}

func TestMaxDepth(t *testing.T) {
	doc := sampleDoc()
	g, err := Build(doc)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, g.MaxDepth(), 3)
}

func TestIndependentGroupsRespectsOrder(t *testing.T) {
	doc := sampleDoc()
	g, err := Build(doc)
	require.NoError(t, err)

	groups := g.IndependentGroups()
	level := map[NodeID]int{}
	for i, group := range groups {
		for _, id := range group {
			level[id] = i
		}
	}
	assert.Less(t, level[ID(KindParameter, "width")], level[ID(KindParameter, "height")])
	assert.Less(t, level[ID(KindOperation, "extruded")], level[ID(KindReference, "top")])
}

func TestIsPatternFlag(t *testing.T) {
	doc := model.NewDocument()
	doc.Operations["ring"] = model.Spec{"type": "circular", "count": 6.0}
	g, err := Build(doc)
	require.NoError(t, err)
	n, ok := g.Node(ID(KindOperation, "ring"))
	require.True(t, ok)
	assert.True(t, n.IsPattern)
}
