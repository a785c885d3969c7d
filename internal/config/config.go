package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	Port            string
	Env             string
	JWTSecret       string
	DairyAPIBaseURL string
	AllowedHosts    []string
	Redis           RedisConfig
	Session         SessionConfig
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	StateTTL   time.Duration
}

// Load reads configuration from the environment, with .env support for local
// development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		DairyAPIBaseURL: getEnv("DAIRY_API_BASE_URL", "http://localhost:8001/api"),
		AllowedHosts:    splitEnv("ALLOWED_HOSTS", "localhost:3000,127.0.0.1:3000"),
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "redis"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "mm_session"),
			TTL:        parseDurationEnv("SESSION_TTL", 24*time.Hour),
			StateTTL:   parseDurationEnv("CLIENT_STATE_TTL", 720*time.Hour),
		},
	}

	if cfg.DairyAPIBaseURL == "" {
		return nil, fmt.Errorf("DAIRY_API_BASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Warn().Str("key", key).Msg("Invalid integer env value, using fallback")
	}
	return fallback
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			hosts = append(hosts, trimmed)
		}
	}
	return hosts
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Warn().Str("key", key).Msg("Invalid duration env value, using fallback")
	}
	return fallback
}
