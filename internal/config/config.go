package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	GPU     GPUConfig     `mapstructure:"gpu"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type GPUConfig struct {
	// ID is the device identifier written into the output container.
	ID uint32 `mapstructure:"id"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		GPU: GPUConfig{
			ID: 205,
		},
		Logging: LoggingConfig{
			Level:   "info",
			File:    "",
			Console: true,
		},
	}
}

// Load builds the configuration from the viper state (config file,
// environment and bound flags), on top of the defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
