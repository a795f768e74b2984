package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer     string        // Required: issuer claim for session tokens
	SessionTTL time.Duration // Optional: lifetime of a manager session token (default: 30m)

	DatabaseFile string // Optional: path to SQLite database file (default: ./claimdesk.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	// BootstrapUsername/BootstrapPassword seed the first manager account when
	// the user table is empty. Both must be set for bootstrap to run.
	BootstrapUsername string
	BootstrapPassword string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:              os.Getenv("CLAIMDESK_ISSUER"),
		SessionTTL:          getEnvDurationOrDefault("CLAIMDESK_SESSION_TTL", 30*time.Minute),
		DatabaseFile:        getEnvOrDefault("CLAIMDESK_DATABASE_FILE", "claimdesk.db"),
		PepperFile:          getEnvOrDefault("CLAIMDESK_PEPPER_FILE", "pepper"),
		BootstrapUsername:   os.Getenv("CLAIMDESK_BOOTSTRAP_USERNAME"),
		BootstrapPassword:   os.Getenv("CLAIMDESK_BOOTSTRAP_PASSWORD"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.Issuer == "" {
		cfg.Issuer = "claimdesk"
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

	// Bare integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
