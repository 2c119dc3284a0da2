package output

// Dyff integration utilities for YAML-aware diffing between two documents
// across a rebuild (spec.md §4.6's rebuild flow).

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// DiffRenderer renders added/removed/modified resource lines with styles.
type DiffRenderer struct {
	styles *Styles
}

// NewDiffRenderer creates a new DiffRenderer with default styles.
func NewDiffRenderer() *DiffRenderer {
	return &DiffRenderer{
		styles: GetStyles(),
	}
}

// NewDiffRendererWithStyles creates a DiffRenderer with custom styles.
func NewDiffRendererWithStyles(styles *Styles) *DiffRenderer {
	return &DiffRenderer{
		styles: styles,
	}
}

// RenderAdded renders an added resource line.
func (r *DiffRenderer) RenderAdded(name string) string {
	return "  + " + r.styles.Success.Render(name)
}

// RenderRemoved renders a removed resource line.
func (r *DiffRenderer) RenderRemoved(name string) string {
	return "  - " + r.styles.Error.Render(name)
}

// RenderModified renders a modified resource header.
func (r *DiffRenderer) RenderModified(name string) string {
	return "  ~ " + r.styles.Warning.Render(name)
}

// RenderAddedHeader renders the "Added:" section header.
func (r *DiffRenderer) RenderAddedHeader() string {
	return r.styles.Success.Render("Added:")
}

// RenderRemovedHeader renders the "Removed:" section header.
func (r *DiffRenderer) RenderRemovedHeader() string {
	return r.styles.Error.Render("Removed:")
}

// RenderModifiedHeader renders the "Modified:" section header.
func (r *DiffRenderer) RenderModifiedHeader() string {
	return r.styles.Warning.Render("Modified:")
}

// DiffYAML computes a structural YAML diff between a node's previous and
// rebuilt rendering (e.g. two yaml.v3-marshaled snapshots of a part's
// dimensions or transform) using dyff, rather than a line-oriented text
// diff. Returns "" with a nil error when the two renderings are identical.
func DiffYAML(prev, next []byte) (string, error) {
	if len(bytes.TrimSpace(prev)) == 0 && len(bytes.TrimSpace(next)) == 0 {
		return "", nil
	}

	prevInput, err := parseYAMLInput("previous", prev)
	if err != nil {
		return "", fmt.Errorf("parsing previous rendering: %w", err)
	}
	nextInput, err := parseYAMLInput("rebuilt", next)
	if err != nil {
		return "", fmt.Errorf("parsing rebuilt rendering: %w", err)
	}

	report, err := dyff.CompareInputFiles(prevInput, nextInput)
	if err != nil {
		return "", fmt.Errorf("comparing renderings: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}
	return renderDyffReport(report)
}

func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}
	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

func renderDyffReport(report dyff.Report) (string, error) {
	var buf bytes.Buffer
	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      true,
		OmitHeader:        true,
	}
	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// IndentDiff indents a diff string for display under a resource name.
func IndentDiff(diff string, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	lines := strings.Split(diff, "\n")
	for _, line := range lines {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
