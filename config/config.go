/*
config.go - Server configuration

PURPOSE:

	Loads server settings from an optional YAML file, with sane defaults
	for local development. Command-line flags in cmd/server override the
	file.

FILE FORMAT:

	port: 8080
	db_path: paperledger.db
	seed:
	  coverage: 0.4
	  seed: 137

SEE ALSO:
  - cmd/server/main.go: flag handling and startup
  - catalog/seed.go: how coverage/seed drive the sample inventory
*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed controls the deterministic sample inventory.
type Seed struct {
	Coverage float64 `yaml:"coverage"`
	Seed     int64   `yaml:"seed"`
}

// Config holds the server settings.
type Config struct {
	Port   int    `yaml:"port"`
	DBPath string `yaml:"db_path"`
	Seed   Seed   `yaml:"seed"`
}

// Default returns the development configuration.
func Default() Config {
	return Config{
		Port:   8080,
		DBPath: "paperledger.db",
		Seed: Seed{
			Coverage: 0.4,
			Seed:     137,
		},
	}
}

// Load reads a YAML config file on top of the defaults. Keys absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("config %s: invalid port %d", path, cfg.Port)
	}
	if cfg.Seed.Coverage <= 0 || cfg.Seed.Coverage > 1 {
		return cfg, fmt.Errorf("config %s: coverage must be in (0, 1], got %v", path, cfg.Seed.Coverage)
	}
	return cfg, nil
}
