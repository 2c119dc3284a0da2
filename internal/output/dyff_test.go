package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffYAML_NoChanges(t *testing.T) {
	doc := []byte("name: base\nsize: {x: 10, y: 10, z: 10}\n")
	out, err := DiffYAML(doc, doc)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestDiffYAML_BothEmpty(t *testing.T) {
	out, err := DiffYAML(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestDiffYAML_ReportsChange(t *testing.T) {
	prev := []byte("name: base\nsize: {x: 10, y: 10, z: 10}\n")
	next := []byte("name: base\nsize: {x: 20, y: 10, z: 10}\n")
	out, err := DiffYAML(prev, next)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestIndentDiff_Empty(t *testing.T) {
	assert.Equal(t, "", IndentDiff("", "  "))
}
