package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save persists the config to config.yaml in the user's config directory,
// so runtime choices (active curl backend, window size) survive restarts.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "config.yaml"))
}

// SaveTo writes the config as YAML to a specific path, creating parent
// directories as needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
