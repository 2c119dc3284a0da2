package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultsPass(t *testing.T) {
	require.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_RejectsUnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "opencascade"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend")
}

func TestValidate_RejectsUnknownFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Export.Formats = []string{"obj"}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export.formats")
}

func TestValidate_RejectsUnknownColorMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Export.ColorMode = "rainbow"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color_mode")
}
