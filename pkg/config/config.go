// Package config loads the small set of environment-driven settings the
// HTTP server needs.
package config

import (
	"os"

	"nonosolve/internal/search"
	"nonosolve/pkg/constants"
)

// Config holds server-wide settings loaded from the environment.
type Config struct {
	Port string

	// Switches seeds every request's search.Switches before the HTTP
	// layer applies its own per-request query overrides.
	Switches search.Switches
}

// Load reads configuration from environment variables, falling back to
// sensible defaults for everything (there is no required secret: this
// service has no notion of user sessions).
func Load() (*Config, error) {
	return &Config{
		Port:     getEnv("PORT", constants.DefaultPort),
		Switches: search.DefaultSwitches(),
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
