package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config bundles the engine settings read from a YAML file:
//
//	clone:
//	  transient_fields: true
//	  synthetic_fields: false
//	  immutable: false
//	  custom_operations: true
//	equals:
//	  deep_reflect: false
//	hash:
//	  deep_reflect: false
//	  seed: 17
//	  multiplier: 37
type Config struct {
	Clone  Clone  `yaml:"clone"`
	Equals Equals `yaml:"equals"`
	Hash   Hash   `yaml:"hash"`
}

// Default returns a Config holding every documented default.
func Default() Config {
	return Config{
		Clone:  DefaultClone(),
		Equals: DefaultEquals(),
		Hash:   DefaultHash(),
	}
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config. Keys absent from data keep their
// defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Hash.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hash section: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in values that YAML may have zeroed explicitly.
func applyDefaults(cfg *Config) {
	if cfg.Hash.Seed == 0 {
		cfg.Hash.Seed = DefaultSeed
	}
	if cfg.Hash.Multiplier == 0 {
		cfg.Hash.Multiplier = DefaultMultiplier
	}
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path.
func WriteFile(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
