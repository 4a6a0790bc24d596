// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hitchlog/backend/internal/stats"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RedisURL enables the shared country report cache when set,
	// e.g. "redis://localhost:6379/0". Empty disables caching.
	RedisURL string

	// ReportTTL is how long a cached country report stays valid. Defaults to 15m.
	ReportTTL time.Duration

	// ReportRefreshInterval is how often the country report is rebuilt in the
	// background. Defaults to 5m; 0 disables the background refresh.
	ReportRefreshInterval time.Duration

	// CountryPolicy decides which countries a multi-country trip counts
	// towards. Defaults to "primary".
	CountryPolicy stats.CountryPolicy

	// MigrateOnStart applies pending migrations before serving. Defaults to true.
	MigrateOnStart bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first variable that could not be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RedisURL:    os.Getenv("REDIS_URL"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.ReportTTL, err = getDuration("REPORT_TTL", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.ReportTTL <= 0 {
		return Config{}, fmt.Errorf("REPORT_TTL must be positive, got %s", cfg.ReportTTL)
	}
	if cfg.ReportRefreshInterval, err = getDuration("REPORT_REFRESH_INTERVAL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.CountryPolicy, err = stats.ParseCountryPolicy(getEnv("COUNTRY_POLICY", string(stats.PrimaryCountry))); err != nil {
		return Config{}, fmt.Errorf("COUNTRY_POLICY: %w", err)
	}
	if cfg.MigrateOnStart, err = strconv.ParseBool(getEnv("MIGRATE_ON_START", "true")); err != nil {
		return Config{}, fmt.Errorf("MIGRATE_ON_START: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses a Go duration such as "90s" or "15m".
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
