// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"waypoint/internal/storage"
)

// Config holds everything the CLI reads from the environment. A .env
// file in the working directory is loaded by main before this runs.
type Config struct {
	DBPath       string
	ExchangeURL  string
	GeminiAPIKey string
	GeminiModel  string
	ServeAddr    string
	LogLevel     string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	defaultDB, err := storage.DefaultDBPath()
	if err != nil {
		defaultDB = ".waypoint.db"
	}
	cfg := &Config{
		DBPath:       getEnv("WAYPOINT_DB", defaultDB),
		ExchangeURL:  getEnv("WAYPOINT_EXCHANGE_URL", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("WAYPOINT_MODEL", ""),
		ServeAddr:    getEnv("WAYPOINT_SERVE_ADDR", ":8765"),
		LogLevel:     getEnv("WAYPOINT_LOG", "warn"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields Load cannot default its way out of.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("WAYPOINT_DB cannot be empty")
	}
	if c.ServeAddr == "" {
		return fmt.Errorf("WAYPOINT_SERVE_ADDR cannot be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("WAYPOINT_LOG must be debug, info, warn, or error")
	}
	if c.ExchangeURL != "" && !strings.HasPrefix(c.ExchangeURL, "http://") && !strings.HasPrefix(c.ExchangeURL, "https://") {
		return fmt.Errorf("WAYPOINT_EXCHANGE_URL must be an http(s) URL")
	}
	return nil
}

// HasGemini reports whether the remote generator is configured.
func (c *Config) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

// HasExchange reports whether a remote exchange is configured.
func (c *Config) HasExchange() bool {
	return c.ExchangeURL != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
