package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvHome overrides the kb home directory.
const EnvHome = "KB_HOME"

// DefaultDir returns the kb home directory: $KB_HOME, else ~/.kb.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".kb"), nil
}
