package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Top-N bounds for the stats overview.
const (
	MinTopSites = 1
	MaxTopSites = 50
)

// AppConfig is the persisted histscope configuration.
type AppConfig struct {
	DBPath        string `yaml:"db_path,omitempty" json:"db_path,omitempty"`
	BrowserDBPath string `yaml:"browser_db_path,omitempty" json:"browser_db_path,omitempty"`
	TopSitesCount int    `yaml:"top_sites_count" json:"top_sites_count"`
	LastUpdated   int64  `yaml:"last_updated" json:"last_updated"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// A hand-edited count outside the supported range falls back to the default.
	if cfg.TopSitesCount < MinTopSites || cfg.TopSitesCount > MaxTopSites {
		cfg.TopSitesCount = DefaultTopSitesCount
	}

	return cfg, nil
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*AppConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return Load(path)
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
