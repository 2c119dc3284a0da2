package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBuildReport() *BuildReportInfo {
	return &BuildReportInfo{
		Document: "box.yaml",
		Backend:  "mock",
		Nodes: []NodeReportInfo{
			{ID: "part:base", Kind: "part", Name: "base", Hash: "abcd1234abcd1234", Valid: true},
			{ID: "operation:moved", Kind: "operation", Name: "moved", Hash: "ef001234ef001234", Valid: true},
		},
		Parts:      []string{"base", "moved"},
		References: []string{"top"},
	}
}

func TestWriteVerboseBuild_Human(t *testing.T) {
	var buf bytes.Buffer
	err := WriteVerboseBuild(sampleBuildReport(), VerboseOptions{Writer: &buf})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "box.yaml")
	assert.Contains(t, out, "mock")
	assert.Contains(t, out, "part/base")
	assert.Contains(t, out, "operation/moved")
	assert.Contains(t, out, "Parts: base, moved")
	assert.Contains(t, out, "References: top")
}

func TestWriteVerboseBuild_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteVerboseBuild(sampleBuildReport(), VerboseOptions{JSON: true, Writer: &buf})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"document": "box.yaml"`)
	assert.Contains(t, buf.String(), `"parts"`)
}

func TestWriteVerboseBuild_RendersErrorsAndWarnings(t *testing.T) {
	info := sampleBuildReport()
	info.Warnings = []string{"pattern expanded to zero copies"}
	info.Errors = []error{errors.New("unknown name: ${bogus}")}

	var buf bytes.Buffer
	err := WriteVerboseBuild(info, VerboseOptions{Writer: &buf})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "pattern expanded to zero copies")
	assert.Contains(t, out, "unknown name: ${bogus}")
}

func TestWriteVerboseBuild_MarksInvalidNodes(t *testing.T) {
	info := sampleBuildReport()
	info.Nodes[1].Valid = false

	var buf bytes.Buffer
	err := WriteVerboseBuild(info, VerboseOptions{Writer: &buf})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✗ operation/moved")
}
