// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (gateway, session store) via
    constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the client is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Rentora client.
type Config struct {

	// APIBaseURL is the root of the marketplace REST API.
	APIBaseURL string `env:"RENTORA_API_URL" envDefault:"https://api.rentora.app"`

	// DataDir is where the session file and the catalog cache live.
	// Empty means "use ~/.rentora", resolved in Load.
	DataDir string `env:"RENTORA_DATA_DIR"`

	// HTTPTimeout bounds every marketplace API call. Expiry surfaces to the
	// user as a connectivity error.
	HTTPTimeout time.Duration `env:"RENTORA_HTTP_TIMEOUT" envDefault:"30s"`

	// RequestsPerSecond throttles outbound API calls so bulk operations
	// (catalog sync) stay polite.
	RequestsPerSecond float64 `env:"RENTORA_REQUESTS_PER_SECOND" envDefault:"10"`

	Debug bool `env:"RENTORA_DEBUG" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and resolves the
// default data directory.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Default the data directory to ~/.rentora when not set explicitly.
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: failed to resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".rentora")
	}

	return cfg, nil
}

// SessionPath returns the path of the persisted session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.json")
}

// CachePath returns the path of the local catalog cache database.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "catalog.db")
}
