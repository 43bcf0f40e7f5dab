package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	AppEnv           string
	LocalDataDir     string
	LocalFallback    bool
	CheckoutCategory string
}

// Load reads the .env file if present and resolves startup-safe settings.
// Secrets (admin credentials, JWT secret, Drive credentials) are intentionally
// not validated here: a missing variable must fail the operation that needs it
// with a descriptive error, not crash the whole server at boot.
func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		AppEnv:           getEnv("APP_ENV", "development"),
		LocalDataDir:     getEnv("LOCAL_DATA_DIR", ".local-data"),
		CheckoutCategory: getEnv("CHECKOUT_CATEGORY_ID", ""),
	}

	// Local fallback is a dev convenience; production filesystems may be read-only.
	fallback := getEnv("LOCAL_FALLBACK", "")
	if fallback == "" {
		cfg.LocalFallback = !cfg.IsProduction()
	} else {
		cfg.LocalFallback = fallback == "true" || fallback == "1"
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Required returns the value of an env var or a descriptive error naming it.
func Required(key string) (string, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", fmt.Errorf("variável de ambiente faltando: %s", key)
	}
	return value, nil
}

// MissingOf lists which of the given env vars are absent or empty.
func MissingOf(keys ...string) []string {
	var missing []string
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); !ok || v == "" {
			missing = append(missing, key)
		}
	}
	return missing
}
