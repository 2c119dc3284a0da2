package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// LoaderOptions carries the CLI flag values that should take precedence
// over the config file and environment.
type LoaderOptions struct {
	// ConfigFlag is the --config flag value (empty if not set).
	ConfigFlag string
	// BackendFlag is the --backend flag value (empty if not set).
	BackendFlag string
}

// Load resolves Config using flag > env (TIACAD_*) > config file > default
// precedence. Grounded on the teacher's multi-source resolution shape
// (flag/env/config/default, in that priority), delegated to spf13/viper's
// native layering (SetDefault + AutomaticEnv + explicit Set for flags)
// instead of the teacher's hand-rolled per-field resolver, since viper
// already does this precedence natively and the teacher lists it as a
// dependency for exactly this purpose.
func Load(opts LoaderOptions) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TIACAD")
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("backend", def.Backend)
	v.SetDefault("export.dir", def.Export.Dir)
	v.SetDefault("export.formats", def.Export.Formats)
	v.SetDefault("export.color_mode", def.Export.ColorMode)
	v.SetDefault("export.default_color", def.Export.DefaultColor)

	path, err := resolveConfigPath(opts.ConfigFlag)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("reading config file %s: %w", path, err)
			}
		}
	}

	if opts.BackendFlag != "" {
		v.Set("backend", opts.BackendFlag)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// resolveConfigPath applies --config flag > TIACAD_CONFIG env > default
// path precedence, returning "" only if no config file exists at the
// resolved default location (a missing explicit flag/env path is instead
// surfaced by ReadInConfig).
func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	paths, err := PathsFromEnv()
	if err != nil {
		return "", err
	}
	if os.Getenv("TIACAD_CONFIG") == "" {
		if _, err := os.Stat(paths.ConfigFile); err != nil {
			return "", nil
		}
	}
	return paths.ConfigFile, nil
}
