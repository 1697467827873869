// Package config provides configuration loading and structs for the sijil server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	Search  SearchConfig  `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatasetConfig says where the person records come from.
// Exactly one of Path or URL is used; URL wins when both are set.
type DatasetConfig struct {
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
	Format string `yaml:"format"` // json, xlsx or sqlite; inferred from the extension when empty
	Sheet  string `yaml:"sheet"`  // xlsx only; first sheet when empty
	Table  string `yaml:"table"`  // sqlite only
	// Watch reloads the dataset when the file at Path changes.
	Watch bool `yaml:"watch"`
	// LoadTimeoutSeconds bounds one load (mainly for URL sources).
	LoadTimeoutSeconds int `yaml:"load_timeout_seconds"`
}

// SearchConfig holds result and highlighting settings.
type SearchConfig struct {
	MaxResults     int    `yaml:"max_results"`
	HighlightOpen  string `yaml:"highlight_open"`
	HighlightClose string `yaml:"highlight_close"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if cfg.Dataset.Path != "" {
		cfg.Dataset.Path = expandPath(cfg.Dataset.Path, filepath.Dir(path))
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
