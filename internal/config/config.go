// Package config holds the treesift CLI configuration: which documents
// to read, which terminal output to query, where to persist results,
// and the score coefficients of the built-in ruleset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of a treesift config file.
type Config struct {
	// Inputs are the HTML files to extract from. Command-line arguments
	// are appended to these.
	Inputs []string `yaml:"inputs"`

	// Output selects what to extract and where it goes.
	Output OutputConfig `yaml:"output"`

	// Rules tunes the built-in ruleset.
	Rules RulesConfig `yaml:"rules"`
}

// OutputConfig selects the terminal output and its destinations.
type OutputConfig struct {
	// Key is the outward rule to query. Defaults to "best".
	Key string `yaml:"key"`

	// DBPath, when set, persists extraction results to a SQLite
	// database at this path in addition to printing them.
	DBPath string `yaml:"db_path"`
}

// RulesConfig carries per-rule score coefficients, keyed by rule name.
// Missing coefficients default to 1.
type RulesConfig struct {
	Coefficients map[string]float64 `yaml:"coefficients"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Key: "best"},
	}
}

// Load reads a config file and applies defaults. An empty path yields
// Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks invariants a config file could break.
func (c *Config) Validate() error {
	if c.Output.Key == "" {
		return fmt.Errorf("output.key must not be empty")
	}
	for name, coeff := range c.Rules.Coefficients {
		if coeff < 0 {
			return fmt.Errorf("coefficient %q is negative (%v)", name, coeff)
		}
	}
	return nil
}

// Coefficient returns the coefficient for a named rule, defaulting to 1.
func (c *Config) Coefficient(name string) float64 {
	if v, ok := c.Rules.Coefficients[name]; ok {
		return v
	}
	return 1
}
