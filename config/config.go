// Package config gathers environment-driven settings and owns process-wide
// collaborators (database handle, logger). Everything is constructed once in
// main and passed down; nothing here is read lazily per request.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Settings holds every knob the service reads from the environment.
type Settings struct {
	// DatabaseURL selects the store: sqlite://<path> (or :memory:) for the
	// embedded engine, postgres://... for a server.
	DatabaseURL string

	// CORSOrigins is the comma-separated allow-list of browser origins.
	CORSOrigins []string

	Environment string
	Port        string

	// RateLimitRPS and RateLimitBurst parameterize the per-client token
	// bucket on the API routes.
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadSettings reads the environment (after any .env load done by the
// caller) and applies the development defaults the game client expects.
func LoadSettings() *Settings {
	return &Settings{
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite://./tetris.db"),
		CORSOrigins:    splitOrigins(getEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		Environment:    getEnv("ENVIRONMENT", "development"),
		Port:           getEnv("PORT", "8080"),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
	}
}

func (s *Settings) IsProduction() bool {
	return s.Environment == "production"
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
