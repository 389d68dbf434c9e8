package config

import (
	"os"
	"path/filepath"
)

const (
	appName        = "histscope"
	configFileName = "config.yaml"

	// FallbackDBName is the demo database created in the data directory
	// when no database path is configured.
	FallbackDBName = "history_demo.db"
)

// Dirs holds the per-user directories histscope uses.
type Dirs struct {
	ConfigHome string
	DataHome   string
}

// GetDirs returns the XDG Base Directory paths for histscope:
// - $XDG_CONFIG_HOME/histscope (default: ~/.config/histscope)
// - $XDG_DATA_HOME/histscope (default: ~/.local/share/histscope)
func GetDirs() (*Dirs, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(homeDir, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	return &Dirs{
		ConfigHome: filepath.Join(configHome, appName),
		DataHome:   filepath.Join(dataHome, appName),
	}, nil
}

// DefaultConfigPath returns the config file location inside ConfigHome.
func DefaultConfigPath() (string, error) {
	dirs, err := GetDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.ConfigHome, configFileName), nil
}

// DefaultDataDir returns the application data directory.
func DefaultDataDir() (string, error) {
	dirs, err := GetDirs()
	if err != nil {
		return "", err
	}
	return dirs.DataHome, nil
}

// FallbackDBPath returns the demo database path inside dataDir.
func FallbackDBPath(dataDir string) string {
	return filepath.Join(dataDir, FallbackDBName)
}
