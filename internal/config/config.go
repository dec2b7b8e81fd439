package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL        string
	DatabaseName       string
	Port               string
	CorsAllowedOrigins []string
	MaxBodyBytes       int64
	ShutdownTimeout    time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DatabaseName:       getEnv("DATABASE_NAME", "blog"),
		Port:               getEnv("PORT", "8000"),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MaxBodyBytes:       getEnvInt64("MAX_BODY_BYTES", 1<<20),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	n, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
