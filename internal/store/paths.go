package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDBPath resolves the database file path in priority order:
// 1. LUMEN_DB environment variable
// 2. $XDG_DATA_HOME/lumen/lumen.db
// 3. ~/.local/share/lumen/lumen.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LUMEN_DB"); p != "" {
		return p, EnsureDir(p)
	}
	dir, err := dataHome()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "lumen", "lumen.db")
	return p, EnsureDir(p)
}

// DefaultDataDir is the directory used by the file backend.
func DefaultDataDir() (string, error) {
	dir, err := dataHome()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "lumen", "data")
	return p, os.MkdirAll(p, 0o755)
}

func dataHome() (string, error) {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
