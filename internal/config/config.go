// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	FrontendURL string

	MongoURI string
	MongoDB  string

	JWTSecret string

	// Text-generation provider (DashScope-compatible chat completions).
	DashScopeAPIURL string
	DashScopeAPIKey string

	// Image-generation provider. Optional: when empty, image generation
	// degrades to a placeholder instead of calling out.
	StabilityAPIKey string

	ProviderTimeout time.Duration
	ShutdownTimeout time.Duration
	HealthTimeout   time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8000"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "synthra_db"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		DashScopeAPIURL: getEnv("DASHSCOPE_API_URL", ""),
		DashScopeAPIKey: getEnv("DASHSCOPE_API_KEY", ""),
		StabilityAPIKey: getEnv("STABILITY_API_KEY", ""),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HealthTimeout:   getEnvDuration("HEALTH_TIMEOUT", 5*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set. Provider
// keys are deliberately not required here: a missing text key surfaces as a
// 503 at request time and a missing image key triggers the placeholder path.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI cannot be empty")
	}
	if c.MongoDB == "" {
		return fmt.Errorf("MONGO_DB cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
