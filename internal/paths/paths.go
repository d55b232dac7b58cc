// Package paths resolves the default locations mdtodo reads and writes.
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

// DefaultTodosDir returns the default root for todo list files.
func DefaultTodosDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".local", "share", "mdtodo"), nil
}

// GlobalConfigPath returns the path of the per-user config file.
func GlobalConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "mdtodo", "config.toml"), nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}

// ResolveWithDefault returns override when it is set and otherwise the
// result of fallback.
func ResolveWithDefault(override string, fallback func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	return fallback()
}
