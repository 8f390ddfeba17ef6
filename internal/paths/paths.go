// Package paths resolves where the board keeps its configuration, its
// database, and the preferences side file.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "kanban"

	// DefaultDataDirName is the CWD-relative data directory used when no
	// override is active.
	DefaultDataDirName = ".kanban-db"

	// DefaultPreferencesFile is the preferences file name inside the
	// config directory.
	DefaultPreferencesFile = "kanban_preferences.json"
)

// Environment variable names for overrides.
const (
	EnvConfigDir       = "KANBAN_CONFIG_DIR"
	EnvDataDir         = "KANBAN_DATA_DIR"
	EnvPreferencesFile = "KANBAN_PREFERENCES_FILE"
)

// platform holds OS lookups that tests can override.
var platform = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/kanban (fallback ~/.config/kanban)
// macOS:   ~/Library/Application Support/kanban
// Windows: %APPDATA%/kanban
func DefaultConfigDir() (string, error) {
	if platform.goos == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platform.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platform.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir picks the configuration directory:
// flag > KANBAN_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if p := firstSet(flag, os.Getenv(EnvConfigDir)); p != "" {
		return filepath.Abs(p)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the directory holding the database:
// flag > config.yaml data_dir > KANBAN_DATA_DIR > $(CWD)/.kanban-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	if p := firstSet(flag, configValue, os.Getenv(EnvDataDir)); p != "" {
		return filepath.Abs(p)
	}
	cwd, err := platform.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ResolvePreferencesFile picks the preferences file:
// flag > config.yaml preferences_file > KANBAN_PREFERENCES_FILE >
// <configDir>/kanban_preferences.json.
func ResolvePreferencesFile(flag, configValue, configDir string) (string, error) {
	if p := firstSet(flag, configValue, os.Getenv(EnvPreferencesFile)); p != "" {
		return filepath.Abs(p)
	}
	return filepath.Join(configDir, DefaultPreferencesFile), nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
