// Package setup implements the first-run configuration wizard.
package setup

import (
	"os"
	"path/filepath"

	"golang.org/x/term"
)

// Status represents the current configuration state.
type Status struct {
	HasConfig  bool
	ConfigPath string
}

// DetectStatus checks whether a config file already exists in dataDir.
func DetectStatus(dataDir string) *Status {
	path := filepath.Join(dataDir, "config.yaml")
	info, err := os.Stat(path)
	return &Status{
		HasConfig:  err == nil && !info.IsDir() && info.Size() > 0,
		ConfigPath: path,
	}
}

// NeedsSetup returns true if interactive setup should run.
func NeedsSetup(dataDir string) bool {
	return !DetectStatus(dataDir).HasConfig
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// GetDataDir returns the emberwallet data directory path.
func GetDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".emberwallet"), nil
}
