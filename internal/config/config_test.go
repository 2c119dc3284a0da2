package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "mock", cfg.Backend)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, []string{"stl"}, cfg.Export.Formats)
	assert.Equal(t, "per_part", cfg.Export.ColorMode)
	assert.Equal(t, "#cccccc", cfg.Export.DefaultColor)
}

func TestConfig_Fields(t *testing.T) {
	cfg := &Config{
		Backend: "kernel",
		Export: ExportDefaults{
			Dir:          "/out",
			Formats:      []string{"step"},
			ColorMode:    "single",
			DefaultColor: "#ff0000",
		},
	}

	assert.Equal(t, "kernel", cfg.Backend)
	assert.Equal(t, "/out", cfg.Export.Dir)
	assert.Equal(t, "single", cfg.Export.ColorMode)
}

func TestResolvedValue(t *testing.T) {
	rv := ResolvedValue{
		Key:    "backend",
		Value:  "kernel",
		Source: "env",
		Shadowed: map[string]any{
			"config":  "mock",
			"default": "mock",
		},
	}

	assert.Equal(t, "backend", rv.Key)
	assert.Equal(t, "kernel", rv.Value)
	assert.Equal(t, "env", rv.Source)
	assert.Len(t, rv.Shadowed, 2)
}
