// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, the upstream course API client, and background refresh jobs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Upstream course API (Schedule of Classes)
	SOCBaseURL    string
	SOCTimeout    time.Duration
	SOCMaxRetries int

	// Snapshot refresh
	RefreshInterval time.Duration
	DefaultYear     string
	DefaultTerm     string
	DefaultCampus   string

	// Salary data
	DataDir       string // Directory for the SQLite salary database
	SalaryCSVPath string
	SalaryJSON    string

	// Rate limiting
	RateLimitPerMinute float64 // Per-client request budget (default: 100)

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Crash reporting
	SentryDSN string
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		SOCBaseURL:    getEnv("SOC_BASE_URL", "https://classes.rutgers.edu/soc/api/courses.json"),
		SOCTimeout:    getDurationEnv("SOC_TIMEOUT", UpstreamRequest),
		SOCMaxRetries: getIntEnv("SOC_MAX_RETRIES", 3),

		RefreshInterval: getDurationEnv("REFRESH_INTERVAL", 15*time.Minute),
		DefaultYear:     getEnv("DEFAULT_YEAR", "2025"),
		DefaultTerm:     getEnv("DEFAULT_TERM", "1"),
		DefaultCampus:   getEnv("DEFAULT_CAMPUS", "NB"),

		DataDir:       getEnv("DATA_DIR", "data"),
		SalaryCSVPath: getEnv("SALARY_CSV_PATH", "salaries.csv"),
		SalaryJSON:    getEnv("SALARY_JSON_PATH", "salaries.json"),

		RateLimitPerMinute: getFloatEnv("RATE_LIMIT_PER_MINUTE", 100),

		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		SentryDSN: getEnv("SENTRY_DSN", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks configuration consistency.
func (c *Config) validate() error {
	if c.SOCBaseURL == "" {
		return fmt.Errorf("SOC_BASE_URL must not be empty")
	}
	if c.SOCMaxRetries < 0 {
		return fmt.Errorf("SOC_MAX_RETRIES must be >= 0, got %d", c.SOCMaxRetries)
	}
	if c.RefreshInterval < time.Minute {
		return fmt.Errorf("REFRESH_INTERVAL must be >= 1m, got %s", c.RefreshInterval)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be > 0, got %f", c.RateLimitPerMinute)
	}
	return nil
}

// SQLitePath returns the path of the salary lookup database.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "salaries.db")
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv returns the environment variable as int or a default.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getFloatEnv returns the environment variable as float64 or a default.
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv returns the environment variable as duration or a default.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
