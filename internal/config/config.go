package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreBackendSQLite = "sqlite"
	StoreBackendMemory = "memory"
)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	LogFormat       string
	StoreBackend    string
	TemplatesDir    string
	ShutdownTimeout int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		DBPath:          envOr("DB_PATH", "file:flashdeck.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		LogFormat:       strings.ToLower(envOr("LOG_FORMAT", "text")),
		StoreBackend:    strings.ToLower(envOr("STORE_BACKEND", StoreBackendSQLite)),
		TemplatesDir:    envOr("TEMPLATES_DIR", "web/templates"),
		ShutdownTimeout: envIntOr("SHUTDOWN_TIMEOUT_SECONDS", 30),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	switch c.StoreBackend {
	case StoreBackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty when STORE_BACKEND=%s", StoreBackendSQLite)
		}
	case StoreBackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendSQLite, StoreBackendMemory, c.StoreBackend)
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.TemplatesDir == "" {
		return fmt.Errorf("TEMPLATES_DIR cannot be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be positive, got %d", c.ShutdownTimeout)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
