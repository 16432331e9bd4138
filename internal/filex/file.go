// Package filex prepares on-disk locations used by the local stores.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading "~" in path with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// EnsureDir expands dir and creates it, owner-only, if it does not exist.
// It returns the expanded path.
func EnsureDir(dir string) (string, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// EnsureParentDir makes sure the directory holding file exists and returns
// the expanded file path.
func EnsureParentDir(file string) (string, error) {
	file, err := ExpandHome(file)
	if err != nil {
		return "", err
	}
	if _, err := EnsureDir(filepath.Dir(file)); err != nil {
		return "", err
	}
	return file, nil
}
