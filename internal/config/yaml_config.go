package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Tuning that is easier to manage in YAML than env vars.
type YAMLConfig struct {
	Correction CorrectionConfig `yaml:"correction"`
}

// CorrectionConfig tunes the search term correction.
type CorrectionConfig struct {
	Threshold *int              `yaml:"threshold,omitempty"` // Overrides CORRECTION_THRESHOLD
	Aliases   map[string]string `yaml:"aliases,omitempty"`   // Raw term -> canonical term
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// CorrectionThreshold returns the YAML threshold if set, otherwise fallback.
func (c *YAMLConfig) CorrectionThreshold(fallback int) int {
	if c == nil || c.Correction.Threshold == nil {
		return fallback
	}
	return *c.Correction.Threshold
}

// Aliases returns the configured alias table, or nil.
func (c *YAMLConfig) Aliases() map[string]string {
	if c == nil {
		return nil
	}
	return c.Correction.Aliases
}
