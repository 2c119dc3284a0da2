package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/document"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/orchestrate"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/output"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document.yaml>",
		Short: "Parse and build a document without exporting, reporting any errors",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatVetCheck(fmt.Sprintf("%s valid", path), ""))
	fmt.Fprintln(cmd.OutOrStdout(), output.RenderStatusTable(nodeStatuses(result)))
	return nil
}

func nodeStatuses(result *orchestrate.Result) []output.NodeStatus {
	var statuses []output.NodeStatus
	for _, n := range result.Graph.Nodes() {
		status := output.StatusValid
		if !n.Valid {
			status = output.StatusUnchanged
		}
		statuses = append(statuses, output.NodeStatus{
			Kind:   string(n.Kind),
			Name:   n.Name,
			Status: status,
		})
	}
	return statuses
}
