package config

import (
	"os"
	"strconv"
	"time"
)

// Rate store selection for the intake endpoint. The in-memory counter is
// only correct for a single instance; a horizontally scaled deployment
// must use the redis store so all instances share one window.
const (
	RateStoreMemory = "memory"
	RateStoreRedis  = "redis"
)

type Config struct {
	// HTTP configuration
	Port   string
	APIKey string

	// Gemini configuration. An empty API key selects heuristic-only
	// classification at startup.
	ModelName     string
	GeminiAPIKey  string
	GeminiTimeout time.Duration

	// Redis configuration. An empty URL disables dedup entirely; the
	// intake gate then treats every event as first-seen.
	RedisURL string
	DedupTTL time.Duration

	// Rate limiting for /normalize_event
	RateWindow time.Duration
	RateMax    int
	RateStore  string

	// Optional NATS ingress. An empty URL disables it.
	NatsURL     string
	NatsSubject string

	// Service configuration
	ServiceName string
}

func Load() *Config {
	return &Config{
		// HTTP settings
		Port:   getEnv("MCP_PORT", "8080"),
		APIKey: getEnv("MCP_API_KEY", "changeme"),

		// Gemini settings
		ModelName:     getEnv("MODEL_NAME", "gemini-flash"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiTimeout: getDurationEnv("GEMINI_TIMEOUT", 15*time.Second),

		// Redis settings
		RedisURL: getEnv("REDIS_URL", ""),
		DedupTTL: getDurationEnv("DEDUP_TTL", 600*time.Second),

		// Rate limit settings
		RateWindow: getDurationEnv("RATE_WINDOW", 15*time.Minute),
		RateMax:    getIntEnv("RATE_MAX", 100),
		RateStore:  getEnv("RATE_STORE", RateStoreMemory),

		// NATS settings
		NatsURL:     getEnv("NATS_URL", ""),
		NatsSubject: getEnv("NATS_SUBJECT", "wabuddy.inbound"),

		// Service settings
		ServiceName: getEnv("SERVICE_NAME", "wabuddy-mcp"),
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
