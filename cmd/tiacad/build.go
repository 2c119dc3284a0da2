package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/document"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/orchestrate"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/output"
)

var flagBuildJSON bool

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <document.yaml>",
		Short: "Build a document's DAG and construct its parts against the selected backend",
		Args:  cobra.ExactArgs(1),
		RunE:  runBuild,
	}
	cmd.Flags().BoolVar(&flagBuildJSON, "json", false, "emit the build report as JSON")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	path := args[0]
	doc, err := document.Load(path)
	if err != nil {
		return err
	}

	b := selectBackend(cfg.Backend)
	engine := orchestrate.New(b)
	result, err := engine.Build(doc)
	if err != nil {
		return renderBuildError(err, path)
	}

	report := buildReportFromResult(path, cfg.Backend, result)
	return output.WriteVerboseBuild(report, output.VerboseOptions{JSON: flagBuildJSON, Writer: cmd.OutOrStdout()})
}

// selectBackend resolves the configured backend name to a concrete
// backend.Backend (spec.md §4.2's capability interface).
func selectBackend(name string) backend.Backend {
	if name == "kernel" {
		return backend.Select(nil, "no CAD kernel binary compiled in")
	}
	return backend.NewMock()
}

func buildReportFromResult(docPath, backendName string, result *orchestrate.Result) *output.BuildReportInfo {
	report := &output.BuildReportInfo{
		Document: docPath,
		Backend:  backendName,
		Parts:    result.Parts.PartNames(),
	}
	for name := range result.References {
		report.References = append(report.References, name)
	}
	for _, n := range result.Graph.Nodes() {
		report.Nodes = append(report.Nodes, output.NodeReportInfo{
			ID:    string(n.ID),
			Kind:  string(n.Kind),
			Name:  n.Name,
			Hash:  n.Hash,
			Valid: n.Valid,
		})
	}
	return report
}

// renderBuildError renders err with source context when it carries a
// model.SourcePos and the document file can still be read (spec §7).
func renderBuildError(err error, path string) error {
	var buildErr *builderrors.BuildError
	if be, ok := err.(*builderrors.BuildError); ok {
		buildErr = be
	}
	if buildErr == nil || buildErr.Pos.IsZero() {
		return err
	}

	data, readErr := readSourceLines(path)
	if readErr != nil {
		return err
	}
	return fmt.Errorf("%s", builderrors.Render(buildErr, data))
}

func readSourceLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}
