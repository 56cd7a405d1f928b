// Package config provides configuration loading and validation for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for ingestion tuning knobs. Both are explicit configuration so
// tests can exercise the bounds.
const (
	DefaultIngestConcurrency = 4
	DefaultGatewayTimeout    = 45 * time.Second
)

// Config holds the process configuration. All values are read from the
// environment and validated eagerly at startup: a missing credential fails
// here, not on first use.
type Config struct {
	Port        int
	DatabaseURL string

	// AI gateway
	GeminiAPIKey   string
	GatewayTimeout time.Duration

	// File store
	DriveCredentialsFile string
	DriveFolderID        string

	// Ingestion pipeline
	IngestConcurrency int
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 8080,
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GatewayTimeout:       DefaultGatewayTimeout,
		DriveCredentialsFile: os.Getenv("DRIVE_CREDENTIALS_FILE"),
		DriveFolderID:        os.Getenv("DRIVE_FOLDER_ID"),
		IngestConcurrency:    DefaultIngestConcurrency,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if concStr := os.Getenv("INGEST_CONCURRENCY"); concStr != "" {
		conc, err := strconv.Atoi(concStr)
		if err != nil {
			return nil, fmt.Errorf("invalid INGEST_CONCURRENCY: %v", err)
		}
		cfg.IngestConcurrency = conc
	}

	if secStr := os.Getenv("GATEWAY_TIMEOUT_SECONDS"); secStr != "" {
		sec, err := strconv.Atoi(secStr)
		if err != nil {
			return nil, fmt.Errorf("invalid GATEWAY_TIMEOUT_SECONDS: %v", err)
		}
		cfg.GatewayTimeout = time.Duration(sec) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT out of range: %d", c.Port)
	}
	if c.IngestConcurrency < 1 {
		return fmt.Errorf("config error: INGEST_CONCURRENCY must be at least 1, got %d", c.IngestConcurrency)
	}
	if c.GatewayTimeout < time.Second {
		return fmt.Errorf("config error: GATEWAY_TIMEOUT_SECONDS must be at least 1 second")
	}
	if c.DriveCredentialsFile != "" {
		if _, err := os.Stat(c.DriveCredentialsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: drive credentials file not found: %s", c.DriveCredentialsFile)
		}
	}
	return nil
}
