package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://canteen.example.com"

	// Search log storage. DatabaseURL takes precedence over SearchLogPath when set.
	SearchLogPath string
	DatabaseURL   string

	// Rate limiting
	RedisURL           string // Shared limiter storage; in-memory when empty
	RateLimitPerMinute int

	// Correction
	CorrectionThreshold int // A candidate must score strictly above this to replace the input
	SuggestLimit        int

	// Background integrity check of the search log; 0 disables it
	IntegrityCheckInterval time.Duration

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // text or json
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:                    getEnv("ENV", "development"),
		ServerAddr:             getEnv("SERVER_ADDR", ":3000"),
		BaseURL:                getEnv("BASE_URL", "http://localhost:3000"),
		CORSOrigins:            getEnv("CORS_ORIGINS", ""),
		SearchLogPath:          getEnv("SEARCH_LOG_PATH", "search_log/search_log.xlsx"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		RedisURL:               getEnv("REDIS_URL", ""),
		RateLimitPerMinute:     getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		CorrectionThreshold:    getEnvInt("CORRECTION_THRESHOLD", 70),
		SuggestLimit:           getEnvInt("SUGGEST_LIMIT", 5),
		IntegrityCheckInterval: getEnvDuration("INTEGRITY_CHECK_INTERVAL", 0),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// UsesDatabase returns true if the search log is kept in Postgres.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// LogLevelValue maps LogLevel to a slog level, defaulting to info.
func (c *Config) LogLevelValue() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
