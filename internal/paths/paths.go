package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// DefaultConfigPath returns the global lists config file location.
func DefaultConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "lists", "config.toml"), nil
}

// ResolveWithDefault returns path when set; otherwise it returns the result of
// fallback.
func ResolveWithDefault(path string, fallback func() (string, error)) (string, error) {
	if path != "" {
		return path, nil
	}
	return fallback()
}

// ResolveRelative anchors a relative path at base. Absolute paths are
// returned cleaned and empty paths are returned as is.
func ResolveRelative(base, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}
