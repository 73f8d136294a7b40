package softcache

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the facade's immutable configuration, read once at
// construction and never mutated afterward.
type Config struct {
	// Enabled gates everything. When false, Connect never dials and
	// the facade stays permanently unavailable.
	Enabled bool

	// KeyPrefix namespaces every key to avoid collisions with
	// unrelated data in the same store. Required.
	KeyPrefix string

	// Redis connection parameters.
	Host          string
	Port          int
	DB            int
	Password      string
	TLS           bool
	SocketTimeout time.Duration
}

// DefaultConfig returns a config pointing at a local Redis with
// caching enabled.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		KeyPrefix:     "cache",
		Host:          "localhost",
		Port:          6379,
		DB:            0,
		TLS:           false,
		SocketTimeout: 5 * time.Second,
	}
}

// FromEnv loads configuration from environment variables, falling back
// to DefaultConfig values. A .env file in the working directory is
// honored when present.
//
// Recognized variables: CACHE_ENABLED, CACHE_KEY_PREFIX, REDIS_HOST,
// REDIS_PORT, REDIS_DB, REDIS_PASSWORD, REDIS_SSL,
// REDIS_SOCKET_TIMEOUT_SECONDS.
func FromEnv() Config {
	_ = godotenv.Load() // best effort; absence of .env is fine

	def := DefaultConfig()
	return Config{
		Enabled:       getEnvAsBool("CACHE_ENABLED", def.Enabled),
		KeyPrefix:     getEnv("CACHE_KEY_PREFIX", def.KeyPrefix),
		Host:          getEnv("REDIS_HOST", def.Host),
		Port:          getEnvAsInt("REDIS_PORT", def.Port),
		DB:            getEnvAsInt("REDIS_DB", def.DB),
		Password:      getEnv("REDIS_PASSWORD", ""),
		TLS:           getEnvAsBool("REDIS_SSL", def.TLS),
		SocketTimeout: time.Duration(getEnvAsInt("REDIS_SOCKET_TIMEOUT_SECONDS", int(def.SocketTimeout/time.Second))) * time.Second,
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer or returns default.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as boolean or returns default.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
