package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.qahub)
	ConfigDir string

	// ConfigFile is the optional YAML settings file
	ConfigFile string

	// DatabasePath is the SQLite database file for call analytics
	DatabasePath string

	// LogFile receives diagnostics while the TUI owns the terminal
	LogFile string

	// ExportDir is where exported result sets are written by default
	ExportDir string
)

// Initialize sets up the configuration directories
// It creates ~/.qahub/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".qahub"))
}

// InitializeAt points every global path below dir and creates the directories
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "qahub.db")
	LogFile = filepath.Join(ConfigDir, "qahub.log")
	ExportDir = filepath.Join(ConfigDir, "exports")

	dirs := []string{ConfigDir, ExportDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	return nil
}
