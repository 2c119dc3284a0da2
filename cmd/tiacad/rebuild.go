package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/dag"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/document"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/orchestrate"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/output"
)

func newRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild <previous.yaml> <next.yaml>",
		Short: "Rebuild a document against a prior version, reporting invalidated nodes and their changes",
		Long: `Builds previous.yaml, then rebuilds against next.yaml: nodes whose
content hash changed (and their descendants) are invalidated and
re-evaluated. Reports which nodes were invalidated and, for each
invalidated node present in both graphs, a structural diff of its
declared spec.`,
		Args: cobra.ExactArgs(2),
		RunE: runRebuild,
	}
}

func runRebuild(cmd *cobra.Command, args []string) error {
	prevPath, nextPath := args[0], args[1]

	prevDoc, err := document.Load(prevPath)
	if err != nil {
		return err
	}
	nextDoc, err := document.Load(nextPath)
	if err != nil {
		return err
	}

	b := selectBackend(cfg.Backend)
	engine := orchestrate.New(b)

	prevResult, err := engine.Build(prevDoc)
	if err != nil {
		return renderBuildError(err, prevPath)
	}

	result, invalid, err := engine.Rebuild(prevResult.Graph, nextDoc)
	if err != nil {
		return renderBuildError(err, nextPath)
	}

	if len(invalid) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), output.FormatVetCheck(fmt.Sprintf("%s unchanged against %s", nextPath, prevPath), ""))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d node(s) invalidated:\n", len(invalid))
	for _, id := range invalid {
		n, ok := result.Graph.Node(id)
		if !ok {
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), output.FormatResourceLine(string(n.Kind), "", n.Name, statusLabel(n.Valid)))

		old, existed := prevResult.Graph.Node(id)
		if !existed {
			continue
		}
		diff, err := diffNodeSpecs(old, n)
		if err != nil {
			return fmt.Errorf("diffing node %s: %w", id, err)
		}
		if diff != "" {
			fmt.Fprintln(cmd.OutOrStdout(), output.IndentDiff(diff, "    "))
		}
	}

	return nil
}

func statusLabel(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

func diffNodeSpecs(prev, next *dag.Node) (string, error) {
	prevYAML, err := yaml.Marshal(prev.Spec)
	if err != nil {
		return "", err
	}
	nextYAML, err := yaml.Marshal(next.Spec)
	if err != nil {
		return "", err
	}
	return output.DiffYAML(prevYAML, nextYAML)
}
