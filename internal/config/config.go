// Package config provides environment configuration for the client.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Backend endpoints
	APIBaseURL      string
	SocketURL       string
	SocketNamespace string

	// REST settings
	HTTPTimeout time.Duration

	// Realtime transport settings
	DialTimeout       time.Duration
	ReconnectAttempts int
	ReconnectDelay    time.Duration

	// Chat behavior
	TypingIdle   time.Duration
	HistoryLimit int

	// Credentials for non-interactive login (optional; a cached token wins)
	Email    string
	Password string

	// Local state
	StateDir string

	// Ops endpoint
	OpsAddr string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		// Backend
		APIBaseURL:      getEnv("SPORTLINK_API_URL", "http://localhost:8000"),
		SocketURL:       getEnv("SPORTLINK_SOCKET_URL", "ws://localhost:3000"),
		SocketNamespace: getEnv("SPORTLINK_SOCKET_NAMESPACE", "/chat"),

		// REST
		HTTPTimeout: getDurationEnv("SPORTLINK_HTTP_TIMEOUT", 15*time.Second),

		// Realtime transport
		DialTimeout:       getDurationEnv("SPORTLINK_DIAL_TIMEOUT", 10*time.Second),
		ReconnectAttempts: getIntEnv("SPORTLINK_RECONNECT_ATTEMPTS", 3),
		ReconnectDelay:    getDurationEnv("SPORTLINK_RECONNECT_DELAY", 3*time.Second),

		// Chat
		TypingIdle:   getDurationEnv("SPORTLINK_TYPING_IDLE", 2*time.Second),
		HistoryLimit: getIntEnv("SPORTLINK_HISTORY_LIMIT", 50),

		// Credentials
		Email:    getEnv("SPORTLINK_EMAIL", ""),
		Password: getEnv("SPORTLINK_PASSWORD", ""),

		// Local state
		StateDir: getEnv("SPORTLINK_STATE_DIR", defaultStateDir()),

		// Ops
		OpsAddr: getEnv("SPORTLINK_OPS_ADDR", "127.0.0.1:9180"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func defaultStateDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "sportlink")
	}
	return ".sportlink"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
