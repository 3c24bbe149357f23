package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	// Database configuration
	DatabaseDriver   string
	DatabasePath     string // SQLite file written by the collector
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Report files
	TemplatePath string
	OutputPath   string

	// Redis configuration
	Redis RedisConfig

	// Analysis windows
	Analysis AnalysisConfig

	LogLevel string
}

// RedisConfig holds the optional payload publisher settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	Key      string
	Channel  string
	TTLHours int
}

// AnalysisConfig holds the lookback windows and cut-offs used by the loader
type AnalysisConfig struct {
	NearTermMaxDTE int // Expiries at or below this DTE get a wheel view
	HVHistoryDays  int // HV20 samples used for the IV percentile
	HVChartPoints  int // Points in the per-symbol HV chart
	CandidateLimit int // CSP/CC shortlist size
}

// LoadDotEnv loads .env style files into the process environment.
// Missing files are skipped and variables already set are never overridden.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return &Config{
		DatabaseDriver:   strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverSQLite)),
		DatabasePath:     getEnvOrDefault("DB_PATH", "../iv-scanner/data/iv_scanner.db"),
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "iv_scanner"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "iv_scanner"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", ""),

		TemplatePath: getEnvOrDefault("TEMPLATE_PATH", "template.html"),
		OutputPath:   getEnvOrDefault("OUTPUT_PATH", "index.html"),

		Redis: RedisConfig{
			Enabled:  getEnvOrDefault("REDIS_ENABLED", "false") == "true",
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			Key:      getEnvOrDefault("REDIS_KEY", "ivtracker:dashboard"),
			Channel:  getEnvOrDefault("REDIS_CHANNEL", "ivtracker:updates"),
			TTLHours: getEnvInt("REDIS_TTL_HOURS", 24),
		},

		Analysis: AnalysisConfig{
			NearTermMaxDTE: getEnvInt("NEAR_TERM_MAX_DTE", 16),
			HVHistoryDays:  getEnvInt("HV_HISTORY_DAYS", 252),
			HVChartPoints:  getEnvInt("HV_CHART_POINTS", 130),
			CandidateLimit: getEnvInt("CANDIDATE_LIMIT", 5),
		},

		LogLevel: strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
	}
}

// Validate checks the values that would otherwise fail deep inside a query
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return &ValidationError{Field: "DB_PATH", Reason: "must not be empty"}
		}
	case DriverPostgres:
	default:
		return &ValidationError{Field: "DB_DRIVER", Reason: "unsupported driver", Value: c.DatabaseDriver}
	}

	if c.TemplatePath == "" {
		return &ValidationError{Field: "TEMPLATE_PATH", Reason: "must not be empty"}
	}
	if c.OutputPath == "" {
		return &ValidationError{Field: "OUTPUT_PATH", Reason: "must not be empty"}
	}

	windows := []struct {
		field string
		value int
	}{
		{"NEAR_TERM_MAX_DTE", c.Analysis.NearTermMaxDTE},
		{"HV_HISTORY_DAYS", c.Analysis.HVHistoryDays},
		{"HV_CHART_POINTS", c.Analysis.HVChartPoints},
		{"CANDIDATE_LIMIT", c.Analysis.CandidateLimit},
	}
	for _, w := range windows {
		if w.value <= 0 {
			return &ValidationError{Field: w.field, Reason: "must be positive", Value: w.value}
		}
	}

	if c.Redis.Enabled && c.Redis.TTLHours <= 0 {
		return &ValidationError{Field: "REDIS_TTL_HOURS", Reason: "must be positive", Value: c.Redis.TTLHours}
	}
	return nil
}

// ValidationError represents an invalid configuration value
type ValidationError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid config %s: %s (value: %v)", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
