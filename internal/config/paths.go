package config

import (
	"os"
	"path/filepath"
)

// Dir returns the config directory, respecting XDG_CONFIG_HOME.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "hogwarts")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "hogwarts.conf")
}

// LogPath returns the log file path. The TUI owns the terminal, so logs go
// beside the config.
func LogPath() string {
	return filepath.Join(Dir(), "hogwarts.log")
}

// DefaultTasksDir is the task directory used when none is configured.
func DefaultTasksDir() string {
	return filepath.Join(Dir(), "tasks")
}
