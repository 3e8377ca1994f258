// Package config loads the service configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the HTTP service settings.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen"`
	// MaxUploadBytes caps the request body size. The engine itself does not
	// bound worksheet size, so this is the resource limit for uploads.
	MaxUploadBytes int `yaml:"max_upload_bytes"`
	// CORSOrigins lists the allowed CORS origins.
	CORSOrigins []string `yaml:"cors_origins"`
	// ProbeLimit overrides how many leading rows are scanned for the matrix
	// header row.
	ProbeLimit int `yaml:"probe_limit"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Listen:         ":8080",
		MaxUploadBytes: 25 << 20,
		CORSOrigins:    []string{"*"},
	}
}

// Load reads a YAML config file, filling unset fields with defaults. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 25 << 20
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	return cfg, nil
}
