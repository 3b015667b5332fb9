package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	// DatabasePath is the SQLite database file path.
	DatabasePath string

	// HTTPPort is the port the HTTP API listens on.
	HTTPPort int

	// SecretKey is reserved for session signing. It is not consumed by the
	// task service itself.
	SecretKey string

	// CORSOrigins is a comma-separated list of allowed origins.
	CORSOrigins string
}

// Load returns configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		DatabasePath: getEnv("DB_PATH", "tasks.db"),
		HTTPPort:     getEnvInt("HTTP_PORT", 8080),
		SecretKey:    getEnv("SECRET_KEY", "my_default_secret_key"),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
