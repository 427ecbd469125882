// Package config loads optional CLI defaults from a YAML file, so flags
// like --credentials-file don't have to be repeated on every invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chroniclelabs/chronicle-cli/regions"
)

// Config represents the defaults file.
type Config struct {
	CredentialsFile string `yaml:"credentials_file,omitempty"`
	Region          string `yaml:"region,omitempty"`
}

// DefaultPath returns ~/.chronicle.yaml, or "" when no home is known.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chronicle.yaml")
}

// Load reads a defaults file. A missing file is not an error: the file is
// optional and an empty Config is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate ensures the fields that are set are usable.
func (c *Config) Validate() error {
	if c.Region != "" && !regions.Valid(c.Region) {
		return fmt.Errorf("unknown region %q (supported: %v)", c.Region, regions.Supported())
	}
	return nil
}
