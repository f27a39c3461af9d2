// Package filesystem holds small path helpers shared by the config loader and CLI.
package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// UserHomeDir returns the current user's home directory, or "." when unknown.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ExpandPath resolves a leading "~/" against the home directory and cleans the result.
func ExpandPath(path string) string {
	if path == "~" {
		return UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(path), perm)
}
