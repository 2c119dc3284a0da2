package orchestrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

func sampleDoc() *model.Document {
	doc := model.NewDocument()
	doc.Parameters["size"] = 4.0
	doc.Parameters["doubled"] = "${size * 2}"
	doc.Parts["base"] = model.Spec{"kind": "box", "size": []any{"${size}", "${size}", "${doubled}"}}
	doc.Operations["moved"] = model.Spec{
		"type": "transform", "input": "base",
		"steps": []any{map[string]any{"type": "translate", "offset": []any{1.0, 0.0, 0.0}}},
	}
	doc.References["top"] = model.Spec{"part": "base", "face": ">Z", "at": "center"}
	return doc
}

func TestEngineBuildSucceeds(t *testing.T) {
	e := New(backend.NewMock())
	result, err := e.Build(sampleDoc())
	require.NoError(t, err)

	_, ok := result.Parts.Get("base")
	assert.True(t, ok)
	_, ok = result.References["top"]
	assert.True(t, ok)
}

func TestEngineBuildSurfacesNodeContextOnFailure(t *testing.T) {
	doc := model.NewDocument()
	doc.Operations["bad"] = model.Spec{"type": "transform", "input": "missing"}

	e := New(backend.NewMock())
	_, err := e.Build(doc)
	require.Error(t, err)
	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "operation:bad", buildErr.NodeID)
}

func TestEngineRejectsUnknownOperationType(t *testing.T) {
	doc := model.NewDocument()
	doc.Parts["base"] = model.Spec{"kind": "box", "size": []any{1.0, 1.0, 1.0}}
	doc.Operations["weird"] = model.Spec{"type": "nonexistent", "input": "base"}

	e := New(backend.NewMock())
	_, err := e.Build(doc)
	require.Error(t, err)
}

func TestRebuildDetectsChangedParameter(t *testing.T) {
	e := New(backend.NewMock())
	doc := sampleDoc()
	first, err := e.Build(doc)
	require.NoError(t, err)

	doc2 := sampleDoc()
	doc2.Parameters["size"] = 8.0
	_, invalid, err := e.Rebuild(first.Graph, doc2)
	require.NoError(t, err)
	assert.NotEmpty(t, invalid)
}
