package config

import (
	"os"
	"path/filepath"
)

// Paths holds standard filesystem locations for the CLI.
type Paths struct {
	// ConfigFile is the path to the config file (~/.tiacad/config.yaml).
	ConfigFile string

	// CacheDir is the path to the cache directory (~/.tiacad/cache).
	CacheDir string

	// HomeDir is the tiacad home directory (~/.tiacad).
	HomeDir string
}

// DefaultPaths returns the default paths, rooted at the user's home
// directory.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	root := filepath.Join(homeDir, ".tiacad")
	return &Paths{
		ConfigFile: filepath.Join(root, "config.yaml"),
		CacheDir:   filepath.Join(root, "cache"),
		HomeDir:    root,
	}, nil
}

// PathsFromEnv returns DefaultPaths with TIACAD_CONFIG / TIACAD_CACHE_DIR
// overrides applied.
func PathsFromEnv() (*Paths, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	if configPath := os.Getenv("TIACAD_CONFIG"); configPath != "" {
		paths.ConfigFile = configPath
	}
	if cacheDir := os.Getenv("TIACAD_CACHE_DIR"); cacheDir != "" {
		paths.CacheDir = cacheDir
	}

	return paths, nil
}

// ExpandTilde expands a leading "~" to the user's home directory. A
// username-form tilde ("~bob/...") or a tilde that isn't the first
// character is left untouched.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return homeDir
	}
	if path[1] != '/' {
		return path // "~username/..." form, not expanded
	}
	return filepath.Join(homeDir, path[1:])
}

// EnsureDir ensures a directory exists with the given permissions.
func EnsureDir(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
