package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show CLI version information",
		Long:  `Display version information for the tiacad CLI and detect an installed CAD kernel binary.`,
		RunE:  runVersion,
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.Get()
	fmt.Fprintln(cmd.OutOrStdout(), info.String())

	kernelInfo := version.DetectKernelBinary()
	if kernelInfo.Found {
		fmt.Fprintf(cmd.OutOrStdout(), "kernel binary: %s (%s)\n", kernelInfo.Path, kernelInfo.Version)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "kernel binary: not found (backend=kernel will be unavailable)")
	}
	return nil
}
