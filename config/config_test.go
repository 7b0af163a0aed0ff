package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5250", cfg.Addr)
	assert.Equal(t, "database/ultra.db", cfg.DatabasePath)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, "admin123", cfg.AdminPassword)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("API_KEY", "test-key")
	t.Setenv("CORS_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}
