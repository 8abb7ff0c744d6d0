package config

import (
	"os"
	"path/filepath"
)

// DefaultOutputDir returns the directory results are written to when the user has not chosen one.
// It prefers ~/Pictures/Expanse, then ~/.expanse/output, then the temp directory.
func DefaultOutputDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	pictures := filepath.Join(homeDir, "Pictures")
	if info, err := os.Stat(pictures); err == nil && info.IsDir() {
		return filepath.Join(pictures, AppName)
	}
	return filepath.Join(homeDir, LogSubDir, "output")
}

// EnsureDir creates dir and its parents if they do not exist.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
