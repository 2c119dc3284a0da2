package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// VerboseOptions controls verbose output.
type VerboseOptions struct {
	// JSON outputs structured JSON instead of human-readable text.
	JSON bool
	// Writer is the output destination.
	Writer io.Writer
}

// verboseResult is the structured verbose output for a completed build.
type verboseResult struct {
	Document   string        `json:"document"`
	Backend    string        `json:"backend"`
	Nodes      []verboseNode `json:"nodes"`
	Parts      []string      `json:"parts"`
	References []string      `json:"references,omitempty"`
	Errors     []string      `json:"errors,omitempty"`
	Warnings   []string      `json:"warnings,omitempty"`
}

// verboseNode describes one DAG node's outcome.
type verboseNode struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Hash  string `json:"hash"`
	Valid bool   `json:"valid"`
}

// BuildReportInfo carries the data WriteVerboseBuild needs without this
// package importing internal/orchestrate or internal/dag — the same
// decoupling the teacher draws between internal/output and internal/core
// via ResourceInfo.
type BuildReportInfo struct {
	Document   string
	Backend    string
	Nodes      []NodeReportInfo
	Parts      []string
	References []string
	Errors     []error
	Warnings   []string
}

// NodeReportInfo describes one DAG node for verbose reporting.
type NodeReportInfo struct {
	ID    string
	Kind  string
	Name  string
	Hash  string
	Valid bool
}

// WriteVerboseBuild writes a verbose build report, either as structured
// JSON or human-readable text.
func WriteVerboseBuild(info *BuildReportInfo, opts VerboseOptions) error {
	result := buildVerboseResultFromInfo(info)
	if opts.JSON {
		return writeVerboseJSON(result, opts.Writer)
	}
	return writeVerboseHuman(result, opts.Writer)
}

func buildVerboseResultFromInfo(info *BuildReportInfo) *verboseResult {
	vr := &verboseResult{
		Document:   info.Document,
		Backend:    info.Backend,
		Parts:      info.Parts,
		References: info.References,
		Warnings:   info.Warnings,
	}
	for _, n := range info.Nodes {
		vr.Nodes = append(vr.Nodes, verboseNode{ID: n.ID, Kind: n.Kind, Name: n.Name, Hash: n.Hash, Valid: n.Valid})
	}
	for _, err := range info.Errors {
		vr.Errors = append(vr.Errors, err.Error())
	}
	return vr
}

func writeVerboseJSON(result *verboseResult, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeVerboseHuman(result *verboseResult, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Document:\n")
	fmt.Fprintf(&sb, "  Path:    %s\n", result.Document)
	fmt.Fprintf(&sb, "  Backend: %s\n", result.Backend)
	sb.WriteString("\n")

	if len(result.Nodes) > 0 {
		sb.WriteString("Nodes:\n")
		for _, n := range result.Nodes {
			mark := "✓"
			if !n.Valid {
				mark = "✗"
			}
			fmt.Fprintf(&sb, "  %s %s/%s  %s\n", mark, n.Kind, n.Name, n.Hash)
		}
		sb.WriteString("\n")
	}

	if len(result.Parts) > 0 {
		fmt.Fprintf(&sb, "Parts: %s\n\n", strings.Join(result.Parts, ", "))
	}

	if len(result.References) > 0 {
		fmt.Fprintf(&sb, "References: %s\n\n", strings.Join(result.References, ", "))
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&sb, "  ⚠ %s\n", warning)
		}
		sb.WriteString("\n")
	}

	if len(result.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range result.Errors {
			fmt.Fprintf(&sb, "  ✗ %s\n", e)
		}
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}
