package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the CLI configuration. Every field can be set from a
// SIMPLEFS_* environment variable and overridden by the matching flag.
type Config struct {
	Root     string `envconfig:"ROOT" default:"."`
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
	Memory   bool   `envconfig:"MEMORY" default:"false"`
	Seed     string `envconfig:"SEED"`
}

// loadConfig loads configuration from environment variables.
func loadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("simplefs", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
