package commands

import (
	"os"
	"path/filepath"
	"runtime"
)

// Flags holds the global flag values bound by the root command.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "checklist", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "checklist")
}

// DefaultLogFile returns the default log file path using the system's state
// directory.
// On macOS: ~/Library/Logs/checklist/checklist.log
// On Linux: $XDG_STATE_HOME/checklist/checklist.log (defaults to
// ~/.local/state/checklist/checklist.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "checklist", "checklist.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "checklist", "checklist.log")
	}

	return filepath.Join(home, ".local", "state", "checklist", "checklist.log")
}
