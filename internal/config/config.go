// Package config reads service settings from the environment. cmd/api loads
// a .env file first, so local runs configure themselves the same way as
// deployed ones.
package config

import (
	"os"
	"strings"
)

// Storage drivers selectable at startup.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Webhook holds the automation endpoint settings. An empty URL disables
// forwarding entirely.
type Webhook struct {
	URL           string
	Key           string
	KeyMode       string // header | bearer | query
	KeyHeader     string
	KeyQueryParam string
}

// Config is the full runtime configuration.
type Config struct {
	HTTPPort       string
	LogLevel       string
	StorageDriver  string
	DataDir        string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	OrganizationID string
	Webhook        Webhook
}

// Load reads the environment, applying the defaults the app shipped with.
func Load() Config {
	return Config{
		HTTPPort:       envOr("HTTP_PORT", "8080"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		StorageDriver:  strings.ToLower(envOr("STORAGE_DRIVER", DriverFile)),
		DataDir:        envOr("DATA_DIR", "data"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		OrganizationID: envOr("ORGANIZATION_ID", "org-demo"),
		Webhook: Webhook{
			URL:           os.Getenv("WEBHOOK_URL"),
			Key:           os.Getenv("WEBHOOK_KEY"),
			KeyMode:       strings.ToLower(envOr("WEBHOOK_KEY_MODE", "header")),
			KeyHeader:     envOr("WEBHOOK_KEY_HEADER", "x-staffsync-key"),
			KeyQueryParam: envOr("WEBHOOK_KEY_QUERY_PARAM", "key"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
