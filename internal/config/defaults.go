package config

import "github.com/hyperjump/sijil/internal/models"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Dataset.Path == "" && cfg.Dataset.URL == "" {
		cfg.Dataset.Path = "/usr/local/var/sijil/persons.json"
	}
	if cfg.Dataset.Table == "" {
		cfg.Dataset.Table = "persons"
	}
	if cfg.Dataset.LoadTimeoutSeconds == 0 {
		cfg.Dataset.LoadTimeoutSeconds = 30
	}
	// The cap is part of the result contract; configuration may only lower it.
	if cfg.Search.MaxResults <= 0 || cfg.Search.MaxResults > models.MaxResults {
		cfg.Search.MaxResults = models.MaxResults
	}
	if cfg.Search.HighlightOpen == "" && cfg.Search.HighlightClose == "" {
		cfg.Search.HighlightOpen = "<mark>"
		cfg.Search.HighlightClose = "</mark>"
	}
}
