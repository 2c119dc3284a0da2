package main

import (
	"github.com/spf13/cobra"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/config"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/output"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/version"
)

var (
	flagConfig  string
	flagBackend string
	flagVerbose bool

	// cfg is the resolved configuration, populated by PersistentPreRunE
	// before any subcommand's RunE runs.
	cfg *config.Config
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tiacad",
		Short: "tiacad builds parametric CAD models from declarative documents",
		Long: `tiacad reads a YAML document describing parameters, sketches, parts,
and operations, builds a dependency graph of the described geometry, and
drives it through a CAD backend to produce exportable parts.`,
		PersistentPreRunE: initializeGlobals,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file (env: TIACAD_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "CAD backend to build against: mock or kernel (env: TIACAD_BACKEND)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "increase output verbosity")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newRebuildCmd())

	return rootCmd
}

// initializeGlobals resolves configuration and sets up logging before any
// subcommand runs.
func initializeGlobals(cmd *cobra.Command, _ []string) error {
	output.SetupLogging(output.LogConfig{Verbose: flagVerbose})

	resolved, err := config.Load(config.LoaderOptions{
		ConfigFlag:  flagConfig,
		BackendFlag: flagBackend,
	})
	if err != nil {
		return err
	}
	if err := config.Validate(resolved); err != nil {
		return err
	}
	cfg = resolved

	info := version.Get()
	output.Debug("tiacad started", "version", info.Version, "backend", cfg.Backend)

	if cfg.Backend == "kernel" {
		kernelInfo := version.DetectKernelBinary()
		if !kernelInfo.Found {
			output.Warn("no CAD kernel binary detected on PATH; falling back to an unavailable backend stub",
				"expected", version.KernelBinaryName)
		}
	}

	return nil
}
