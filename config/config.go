package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultMaxFileSize is the default maximum upload size (100MB)
	DefaultMaxFileSize = 100 * 1024 * 1024

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultUploadFolder is the default storage directory
	DefaultUploadFolder = "/tmp/pdf_uploads"
)

// Config holds application configuration. It is loaded once at startup and
// shared read-only by the handlers and the retention sweeper.
type Config struct {
	DebugMode         bool
	Port              string
	LogLevel          string
	GhostscriptBin    string
	UploadFolder      string
	MaxFileSize       int64
	CleanupDuration   time.Duration
	CleanupInterval   time.Duration
	ConversionTimeout time.Duration
}

// Load reads configuration from the environment, validates it and makes sure
// the upload folder exists.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("DEBUG_MODE", false)
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GHOSTSCRIPT_BIN", "gs")
	v.SetDefault("UPLOAD_FOLDER", DefaultUploadFolder)
	v.SetDefault("MAX_FILE_SIZE", DefaultMaxFileSize)
	v.SetDefault("CLEANUP_DURATION_SECONDS", 3600)
	v.SetDefault("CLEANUP_INTERVAL_SECONDS", 60)
	v.SetDefault("CONVERSION_TIMEOUT_SECONDS", 120)

	v.AutomaticEnv()

	cfg := &Config{
		DebugMode:         v.GetBool("DEBUG_MODE"),
		Port:              v.GetString("PORT"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		GhostscriptBin:    v.GetString("GHOSTSCRIPT_BIN"),
		UploadFolder:      v.GetString("UPLOAD_FOLDER"),
		MaxFileSize:       v.GetInt64("MAX_FILE_SIZE"),
		CleanupDuration:   time.Duration(v.GetInt64("CLEANUP_DURATION_SECONDS")) * time.Second,
		CleanupInterval:   time.Duration(v.GetInt64("CLEANUP_INTERVAL_SECONDS")) * time.Second,
		ConversionTimeout: time.Duration(v.GetInt64("CONVERSION_TIMEOUT_SECONDS")) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := os.MkdirAll(cfg.UploadFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload folder %s: %w", cfg.UploadFolder, err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.GhostscriptBin == "" {
		return fmt.Errorf("GHOSTSCRIPT_BIN must not be empty")
	}
	if c.UploadFolder == "" {
		return fmt.Errorf("UPLOAD_FOLDER must not be empty")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("invalid MAX_FILE_SIZE: %d", c.MaxFileSize)
	}
	if c.CleanupDuration <= 0 {
		return fmt.Errorf("invalid CLEANUP_DURATION_SECONDS: %v", c.CleanupDuration)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("invalid CLEANUP_INTERVAL_SECONDS: %v", c.CleanupInterval)
	}
	if c.ConversionTimeout <= 0 {
		return fmt.Errorf("invalid CONVERSION_TIMEOUT_SECONDS: %v", c.ConversionTimeout)
	}
	return nil
}

// ListenAddr returns the address to bind. Debug mode only listens on loopback.
func (c *Config) ListenAddr() string {
	if c.DebugMode {
		return "127.0.0.1:" + c.Port
	}
	return "0.0.0.0:" + c.Port
}
