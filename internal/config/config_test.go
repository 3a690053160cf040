package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"WAYPOINT_DB", "WAYPOINT_EXCHANGE_URL", "GEMINI_API_KEY", "WAYPOINT_MODEL", "WAYPOINT_SERVE_ADDR", "WAYPOINT_LOG"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, ":8765", cfg.ServeAddr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.HasGemini())
	assert.False(t, cfg.HasExchange())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WAYPOINT_DB", "/tmp/wp.db")
	t.Setenv("WAYPOINT_EXCHANGE_URL", "https://exchange.example.com")
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("WAYPOINT_LOG", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wp.db", cfg.DBPath)
	assert.True(t, cfg.HasExchange())
	assert.True(t, cfg.HasGemini())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty db path", Config{ServeAddr: ":1", LogLevel: "warn"}},
		{"bad log level", Config{DBPath: "x", ServeAddr: ":1", LogLevel: "loud"}},
		{"non-http exchange", Config{DBPath: "x", ServeAddr: ":1", LogLevel: "warn", ExchangeURL: "ftp://nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
