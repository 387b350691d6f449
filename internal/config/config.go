package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings loaded from the environment.
type Config struct {
	Addr        string
	DBPath      string
	LogLevel    string
	HTTPLogging bool
	SessionTTL  time.Duration
	// BusyTimeout bounds how long a storage transaction waits for the
	// row lock before the operation fails with a contention error.
	BusyTimeout time.Duration
	BaseURL     string
}

// Load reads configuration from the environment, after loading an optional
// .env file. Missing variables fall back to defaults.
func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		Addr:        getEnv("ECHODRAFT_ADDR", ":8080"),
		DBPath:      getEnv("ECHODRAFT_DB", "echodraft.db"),
		LogLevel:    getEnv("ECHODRAFT_LOG_LEVEL", "info"),
		HTTPLogging: getBool("ECHODRAFT_HTTP_LOG", false),
		SessionTTL:  getDuration("ECHODRAFT_SESSION_TTL", 24*time.Hour),
		BusyTimeout: getDuration("ECHODRAFT_BUSY_TIMEOUT", 5*time.Second),
		BaseURL:     getEnv("ECHODRAFT_BASE_URL", "http://localhost:8080"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
