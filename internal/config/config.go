// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration for the web server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// APIBaseURL is the base URL of the remote Tripterrior REST backend,
	// e.g. "http://13.209.88.22:8080". Required.
	APIBaseURL string

	// BaseURL is the public URL of this server, used as the redirect
	// target after the auth bridge sets the session cookie.
	// Defaults to "http://localhost:<port>".
	BaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:     getEnv("TRIPTERRIOR_PORT", "8080"),
		LogLevel: getEnv("TRIPTERRIOR_LOG_LEVEL", "info"),
	}

	cfg.APIBaseURL = strings.TrimRight(os.Getenv("TRIPTERRIOR_API_URL"), "/")
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("required environment variable not set: TRIPTERRIOR_API_URL")
	}

	cfg.BaseURL = strings.TrimRight(getEnv("TRIPTERRIOR_BASE_URL", "http://localhost:"+cfg.Port), "/")

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
