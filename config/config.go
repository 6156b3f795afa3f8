// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration, read from the environment.
type Config struct {
	BotToken         string
	BaseURL          string
	ClientTimeout    time.Duration
	MaxRetries       int
	MetricsAddr      string
	LogLevel         string
	SessionSweepSpec string
}

// Load reads configuration from environment variables.
//
// MAX_RETRIES overrides DEFAULT_MAX_RETRIES when set; operators ship a
// deployment-wide default and may tune single instances.
func Load() (*Config, error) {
	cfg := &Config{
		BotToken:         getEnv("BOT_TOKEN", ""),
		BaseURL:          getEnv("URL_BASE", ""),
		ClientTimeout:    time.Duration(getEnvInt("CLIENT_TIMEOUT_SECS", 10)) * time.Second,
		MaxRetries:       getEnvInt("MAX_RETRIES", getEnvInt("DEFAULT_MAX_RETRIES", 5)),
		MetricsAddr:      getEnv("METRICS_ADDR", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SessionSweepSpec: getEnv("SESSION_SWEEP_SPEC", "*/5 * * * *"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("URL_BASE is required")
	}
	if c.ClientTimeout <= 0 {
		return fmt.Errorf("CLIENT_TIMEOUT_SECS must be positive")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("MAX_RETRIES must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
