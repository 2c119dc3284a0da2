// Package config loads the engine's runtime configuration: which backend
// to build against and default export settings for cmd/tiacad. The core
// packages (model/expr/backend/dag/build/orchestrate) take every option
// as an explicit argument and never read this package — it exists purely
// for the CLI boundary, the same separation the teacher draws between its
// CLI config and its CUE-module core.
package config

// Config is the CLI's resolved runtime configuration.
type Config struct {
	// Backend selects which backend.Backend implementation the engine
	// builds against: "mock" or "kernel" (spec.md §4.2).
	Backend string `mapstructure:"backend"`

	// Export carries the CLI's fallback export defaults, used when a
	// document's own export: section (model.ExportConfig) leaves a field
	// unset.
	Export ExportDefaults `mapstructure:"export"`
}

// ExportDefaults are engine-level export defaults (spec.md §6 scopes these
// outside the core document model).
type ExportDefaults struct {
	Dir          string   `mapstructure:"dir"`
	Formats      []string `mapstructure:"formats"`
	ColorMode    string   `mapstructure:"color_mode"`
	DefaultColor string   `mapstructure:"default_color"`
}

// DefaultConfig returns a Config with every field populated.
func DefaultConfig() *Config {
	return &Config{
		Backend: "mock",
		Export: ExportDefaults{
			Dir:          ".",
			Formats:      []string{"stl"},
			ColorMode:    "per_part",
			DefaultColor: "#cccccc",
		},
	}
}

// ResolvedValue tracks a configuration value and the source it came from,
// for --verbose resolution logging (teacher's ResolvedValue shape, carried
// over unchanged).
type ResolvedValue struct {
	Key      string
	Value    any
	Source   string
	Shadowed map[string]any
}
