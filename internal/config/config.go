// Package config provides configuration loading and validation for the
// career-coach server and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backend names accepted by STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds the runtime configuration. All values come from environment
// variables, optionally seeded from a .env file.
type Config struct {
	Port    string
	DataDir string

	StoreBackend string // file, memory, or postgres
	DatabaseURL  string // required when StoreBackend is postgres

	GeminiAPIKey string
	FlashModel   string
	ProModel     string

	HistoryLimit int // 0 means unbounded
	Debug        bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		StoreBackend: getEnv("STORE_BACKEND", BackendFile),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		FlashModel:   getEnv("GEMINI_FLASH_MODEL", "gemini-1.5-flash"),
		ProModel:     getEnv("GEMINI_PRO_MODEL", "gemini-1.5-pro"),
		Debug:        os.Getenv("DEBUG") == "true",
	}

	limitStr := getEnv("HISTORY_LIMIT", "0")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_LIMIT: %v", err)
	}
	cfg.HistoryLimit = limit

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile, BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("config error: unknown STORE_BACKEND %q (must be file, memory, or postgres)", c.StoreBackend)
	}

	if c.StoreBackend == BackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required when STORE_BACKEND is postgres")
	}

	if c.HistoryLimit < 0 {
		return fmt.Errorf("config error: HISTORY_LIMIT must be non-negative")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
