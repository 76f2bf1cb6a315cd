// Package config loads the server configuration from a YAML file with
// sensible defaults when the file is absent.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Addr            string `yaml:"addr"`
	DatabasePath    string `yaml:"database_path"`
	LogPath         string `yaml:"log_path"`
	SessionTTLHours int    `yaml:"session_ttl_hours"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".juridesk")
	return &Config{
		Addr:            "127.0.0.1:8470",
		DatabasePath:    filepath.Join(dir, "juridesk.db"),
		LogPath:         filepath.Join(dir, "logs", "juridesk.log"),
		SessionTTLHours: 72,
	}
}

// Load reads the config file at path, falling back to defaults for the
// whole file when it does not exist and per-field when a field is unset.
// The JURIDESK_CONFIG environment variable overrides path when set.
func Load(path string) (*Config, error) {
	if env := os.Getenv("JURIDESK_CONFIG"); env != "" {
		path = env
	}

	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	defaults := Default()
	if config.Addr == "" {
		config.Addr = defaults.Addr
	}
	if config.DatabasePath == "" {
		config.DatabasePath = defaults.DatabasePath
	}
	if config.LogPath == "" {
		config.LogPath = defaults.LogPath
	}
	if config.SessionTTLHours <= 0 {
		config.SessionTTLHours = defaults.SessionTTLHours
	}
	return config, nil
}
