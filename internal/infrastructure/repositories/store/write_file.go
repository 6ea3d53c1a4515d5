package store

import (
	"fmt"
	"os"
	"path/filepath"
)

const fileMode = 0o644

// WriteFile replaces path with content through a temporary file in the same
// directory, so readers never observe a half-written config.
func WriteFile(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, writeErr := tmp.Write(content); writeErr != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %q: %w", path, writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %q: %w", path, closeErr)
	}
	if chmodErr := os.Chmod(tmpPath, fileMode); chmodErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %q: %w", path, chmodErr)
	}

	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename config file: %w", renameErr)
	}
	return nil
}
