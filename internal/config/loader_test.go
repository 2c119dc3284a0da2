package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/testutil"
)

func withTempHome(t *testing.T) string {
	t.Helper()
	tmpHome, cleanup := testutil.TempDir(t)
	t.Cleanup(cleanup)

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpHome)
	t.Cleanup(func() { os.Setenv("HOME", origHome) })
	return tmpHome
}

func TestLoad_NoConfigFileReturnsDefaults(t *testing.T) {
	withTempHome(t)
	os.Unsetenv("TIACAD_BACKEND")
	os.Unsetenv("TIACAD_CONFIG")

	cfg, err := Load(LoaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.Backend)
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	withTempHome(t)
	os.Setenv("TIACAD_BACKEND", "kernel")
	defer os.Unsetenv("TIACAD_BACKEND")
	os.Unsetenv("TIACAD_CONFIG")

	cfg, err := Load(LoaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "kernel", cfg.Backend)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	withTempHome(t)
	os.Setenv("TIACAD_BACKEND", "kernel")
	defer os.Unsetenv("TIACAD_BACKEND")
	os.Unsetenv("TIACAD_CONFIG")

	cfg, err := Load(LoaderOptions{BackendFlag: "mock"})
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.Backend)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	tmpHome := withTempHome(t)
	os.Unsetenv("TIACAD_BACKEND")

	configPath := testutil.WriteFile(t, tmpHome, "config.yaml", "backend: kernel\nexport:\n  dir: /tmp/out\n")

	cfg, err := Load(LoaderOptions{ConfigFlag: configPath})
	require.NoError(t, err)
	assert.Equal(t, "kernel", cfg.Backend)
	assert.Equal(t, "/tmp/out", cfg.Export.Dir)
}
