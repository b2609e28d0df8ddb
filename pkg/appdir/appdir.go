// Package appdir locates the per-user state directory (~/.aescore).
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const Name = ".aescore"

var (
	once     sync.Once
	dirCache string
	dirErr   error
)

// AppDir returns the state directory path without creating it.
func AppDir() (string, error) {
	once.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			dirErr = fmt.Errorf("appdir: %w", err)
			return
		}
		dirCache = filepath.Join(home, Name)
	})
	return dirCache, dirErr
}

// Ensure creates the state directory if missing and returns its path.
func Ensure() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("appdir: create %s: %w", dir, err)
	}
	return dir, nil
}

// Resolve returns name unchanged when it is absolute, starts with "./" or
// has a directory component, and joins it onto the state directory otherwise.
func Resolve(name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "./") || filepath.Dir(name) != "." {
		return name, nil
	}
	dir, err := Ensure()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
