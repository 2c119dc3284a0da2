// Package main is the entry point for the tiacad CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var buildErr *builderrors.BuildError
		if errors.As(err, &buildErr) {
			fmt.Fprintln(os.Stderr, builderrors.Render(buildErr, nil))
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
