/*
Package config loads server configuration from the environment.

PURPOSE:
  Single place where environment variables are read. A local .env file is
  loaded when present (development convenience); real deployments set the
  variables directly. Command-line flags in cmd/server override whatever
  the environment provides.

VARIABLES:
  APP_ENV          - environment name (default "local")
  APP_ADDR         - listen address (default ":8080")
  DB_PATH          - SQLite database path (default "./attendance.db")
  ALLOWED_ORIGINS  - comma-separated CORS origins (default "*")
  TENANT_ID        - default tenant for single-tenant deployments
*/
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Addr              string
	DBPath            string
	AllowedOriginsRaw string
	TenantID          string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:            getEnv("APP_ENV", "local"),
		Addr:              getEnv("APP_ADDR", ":8080"),
		DBPath:            getEnv("DB_PATH", "./attendance.db"),
		AllowedOriginsRaw: getEnv("ALLOWED_ORIGINS", "*"),
		TenantID:          getEnv("TENANT_ID", "default"),
	}
}

// AllowedOrigins splits the raw origin list, trimming whitespace.
func (c Config) AllowedOrigins() []string {
	parts := strings.Split(c.AllowedOriginsRaw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
