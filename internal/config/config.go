package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/azure/newsroom-desk/internal/models"
	"github.com/robfig/cron/v3"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Dataset
	FixturesPath string

	// Fact check simulation
	FactCheckDelay         time.Duration
	FactCheckRatePerMinute int

	// Schedule configuration (cron expressions with seconds)
	DigestSchedule string
	UrgentSchedule string

	// Digest content
	DigestPreset       string
	DigestTimeframe    models.Timeframe
	DigestOnlyPriority bool
	UrgentTimeframe    models.Timeframe

	// Azure Storage configuration
	StorageAccount   string
	StorageContainer string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		FixturesPath: getEnv("FIXTURES_PATH", ""),

		FactCheckDelay:         getDurationEnv("FACTCHECK_DELAY", 1200*time.Millisecond),
		FactCheckRatePerMinute: getIntEnv("FACTCHECK_RATE_PER_MINUTE", 30),

		// Daily at 7:30 AM UTC, matching the newsletter preset cadence
		DigestSchedule: getEnv("DIGEST_SCHEDULE", "0 30 7 * * *"),
		UrgentSchedule: getEnv("URGENT_SCHEDULE", "0 */15 * * * *"),

		DigestPreset:       getEnv("DIGEST_PRESET", "preset-2"),
		DigestTimeframe:    models.Timeframe(getEnv("DIGEST_TIMEFRAME", "24h")),
		DigestOnlyPriority: getBoolEnv("DIGEST_ONLY_PRIORITY", false),
		UrgentTimeframe:    models.Timeframe(getEnv("URGENT_TIMEFRAME", "1h")),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "digests"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.FactCheckDelay <= 0 {
		return fmt.Errorf("FACTCHECK_DELAY must be positive")
	}

	if c.FactCheckRatePerMinute <= 0 {
		return fmt.Errorf("FACTCHECK_RATE_PER_MINUTE must be positive")
	}

	if !c.DigestTimeframe.Valid() {
		return fmt.Errorf("DIGEST_TIMEFRAME must be one of 1h, 6h, 24h, 7d")
	}

	if !c.UrgentTimeframe.Valid() {
		return fmt.Errorf("URGENT_TIMEFRAME must be one of 1h, 6h, 24h, 7d")
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.DigestSchedule); err != nil {
		return fmt.Errorf("DIGEST_SCHEDULE is not a valid cron expression: %w", err)
	}
	if _, err := parser.Parse(c.UrgentSchedule); err != nil {
		return fmt.Errorf("URGENT_SCHEDULE is not a valid cron expression: %w", err)
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// NotificationsEnabled reports whether any delivery channel is configured
func (c *Config) NotificationsEnabled() bool {
	return c.TeamsWebhookURL != "" || c.NotificationEmail != ""
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
