package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
parameters:
  size: 4
  doubled: "${size * 2}"
parts:
  base:
    kind: box
    size: [size, size, doubled]
operations:
  moved:
    type: transform
    input: base
    steps:
      - type: translate
        offset: [1, 0, 0]
references:
  top:
    part: base
    face: ">Z"
    at: center
export:
  default_part: moved
  formats: [stl, step]
  color_mode: per_part
`

func TestParseDecodesAllSections(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML), "sample.yaml")
	require.NoError(t, err)

	assert.Equal(t, 4.0, doc.Parameters["size"])
	assert.Equal(t, "${size * 2}", doc.Parameters["doubled"])

	base, ok := doc.Parts["base"]
	require.True(t, ok)
	assert.Equal(t, "box", base["kind"])

	moved, ok := doc.Operations["moved"]
	require.True(t, ok)
	assert.Equal(t, "transform", moved["type"])

	top, ok := doc.References["top"]
	require.True(t, ok)
	assert.Equal(t, "base", top["part"])

	assert.Equal(t, "moved", doc.Export.DefaultPart)
	assert.Equal(t, []string{"stl", "step"}, doc.Export.Formats)
	assert.Equal(t, "per_part", doc.Export.ColorMode)
}

func TestParseRecordsSourcePositions(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML), "sample.yaml")
	require.NoError(t, err)

	pos, ok := doc.Positions["part:base"]
	require.True(t, ok)
	assert.Equal(t, "sample.yaml", pos.File)
	assert.Greater(t, pos.Line, 0)
}

func TestParseEmptyDocumentYieldsEmptySections(t *testing.T) {
	doc, err := Parse([]byte(""), "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, doc.Parameters)
	assert.Empty(t, doc.Parts)
}

func TestParseRejectsNonMappingRoot(t *testing.T) {
	_, err := Parse([]byte("- 1\n- 2\n"), "bad.yaml")
	require.Error(t, err)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/path/does-not-exist.yaml")
	require.Error(t, err)
}
