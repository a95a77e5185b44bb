package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer    string        // Issuer claim for tokens (default: taskflow)
	JWTSecret string        // Required: HS256 signing secret, at least 32 bytes
	TokenTTL  time.Duration // Access token lifetime (default: 30m)

	DatabaseFile string // Path to SQLite database file (default: ./taskflow.db)
	RedisURL     string // Optional: Redis URL for task notifications; empty falls back to log delivery

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:              getEnvOrDefault("TASKFLOW_ISSUER", "taskflow"),
		JWTSecret:           os.Getenv("TASKFLOW_JWT_SECRET"),
		TokenTTL:            getEnvDurationOrDefault("TASKFLOW_TOKEN_TTL", 30*time.Minute),
		DatabaseFile:        getEnvOrDefault("TASKFLOW_DATABASE_FILE", "taskflow.db"),
		RedisURL:            os.Getenv("TASKFLOW_REDIS_URL"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
