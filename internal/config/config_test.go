package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tripterrior/tripterrior/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TRIPTERRIOR_API_URL", "http://backend.example.com")
	t.Setenv("TRIPTERRIOR_PORT", "")
	t.Setenv("TRIPTERRIOR_BASE_URL", "")
	t.Setenv("TRIPTERRIOR_LOG_LEVEL", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "http://backend.example.com", cfg.APIBaseURL)
	require.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRIPTERRIOR_API_URL", "http://13.209.88.22:8080/")
	t.Setenv("TRIPTERRIOR_PORT", "3000")
	t.Setenv("TRIPTERRIOR_BASE_URL", "https://tripterrior.example.com/")
	t.Setenv("TRIPTERRIOR_LOG_LEVEL", "debug")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	// Trailing slashes are trimmed so path joins stay predictable.
	require.Equal(t, "http://13.209.88.22:8080", cfg.APIBaseURL)
	require.Equal(t, "https://tripterrior.example.com", cfg.BaseURL)
}

func TestLoadMissingAPIURL(t *testing.T) {
	t.Setenv("TRIPTERRIOR_API_URL", "")

	_, err := config.Load()

	require.Error(t, err)
	require.Contains(t, err.Error(), "TRIPTERRIOR_API_URL")
}
