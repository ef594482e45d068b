package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Env holds client settings read from the process environment.
type Env struct {
	TrackingID string
	ClientID   string
	UserAgent  string
	Proxy      string
	Debug      bool
	Version    int
	FlushEvery time.Duration
}

// LoadEnv loads client settings from environment variables.
// Malformed values are logged and replaced by their defaults.
func LoadEnv() Env {
	return Env{
		TrackingID: os.Getenv("GOOGLE_TRACKINGID"),
		ClientID:   os.Getenv("GA_CLIENT_ID"),
		UserAgent:  os.Getenv("GA_USER_AGENT"),
		Proxy:      os.Getenv("GA_PROXY"),
		Debug:      getEnvBool("GA_DEBUG", false),
		Version:    getEnvInt("GA_PROTOCOL_VERSION", DefaultProtocolVersion),
		FlushEvery: getEnvDuration("GA_FLUSH_EVERY", DefaultFlushEvery),
	}
}

// getEnvInt gets an int from environment variable or returns default.
func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
		log.Printf("Invalid value for %s: %q, using default %d", key, val, defaultValue)
	}
	return defaultValue
}

// getEnvBool gets a bool from environment variable or returns default.
func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
		log.Printf("Invalid value for %s: %q, using default %t", key, val, defaultValue)
	}
	return defaultValue
}

// getEnvDuration gets a duration from environment variable or returns default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil && parsed > 0 {
			return parsed
		}
		log.Printf("Invalid value for %s: %q, using default %v", key, val, defaultValue)
	}
	return defaultValue
}
