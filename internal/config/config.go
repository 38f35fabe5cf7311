package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Cascade modes. A deployment runs exactly one of them.
const (
	CascadeModeArchive = "archive"
	CascadeModeDelete  = "delete"
)

type Config struct {
	Port           string
	GinMode        string
	BackendURL     string
	DriveID        string
	GatewayTimeout time.Duration
	CascadeMode    string
	DBDriver       string
	DBDSN          string
	RedisHost      string
	RedisPort      string
	SessionSecret  string
	OpenAIAPIKey   string
	OpenAIModel    string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:4001"),
		DriveID:        getEnv("VETRA_DRIVE_ID", "preview-81d3e4ae"),
		GatewayTimeout: time.Duration(getEnvInt("GATEWAY_TIMEOUT_SECONDS", 0)) * time.Second,
		CascadeMode:    getEnv("CASCADE_MODE", CascadeModeArchive),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBDSN:          getEnv("DB_DSN", "cascade_journal.db"),
		RedisHost:      getEnv("REDIS_HOST", ""),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		SessionSecret:  getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o"),
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.CascadeMode {
	case CascadeModeArchive, CascadeModeDelete:
	default:
		return fmt.Errorf("invalid CASCADE_MODE %q (want %q or %q)", c.CascadeMode, CascadeModeArchive, CascadeModeDelete)
	}

	switch c.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q", c.DBDriver)
	}

	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
