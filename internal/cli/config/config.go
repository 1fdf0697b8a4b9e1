// Package config loads mediatorc project configuration from
// mediatorc.yml/mediatorc.yaml with environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the mediatorc configuration
type Config struct {
	// Manifest is the path to the declaration manifest
	Manifest string       `mapstructure:"manifest"`
	Output   OutputConfig `mapstructure:"output"`
}

// OutputConfig controls where and how artifacts are written
type OutputConfig struct {
	// Dir is the directory generated files are written into
	Dir string `mapstructure:"dir"`
	// Namespace overrides the namespace-grouping post-pass
	Namespace string `mapstructure:"namespace"`
}

// Load loads the configuration from mediatorc.yml or mediatorc.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("manifest", "mediator.manifest.json")
	v.SetDefault("output.dir", "gen/mediator")
	v.SetDefault("output.namespace", "")

	// Set config name and paths
	v.SetConfigName("mediatorc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.SetEnvPrefix("MEDIATORC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Manifest == "" {
		return fmt.Errorf("manifest path cannot be empty")
	}
	if cfg.Output.Dir == "" {
		return fmt.Errorf("output.dir cannot be empty")
	}
	return nil
}
