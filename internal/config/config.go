package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBDriver   string // "postgres" or "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Sessions
	SessionTTL    time.Duration
	SessionCookie string

	// Seed owner (created only when the owners table is empty)
	SeedOwnerUsername string
	SeedOwnerEmail    string
	SeedOwnerPassword string
	SeedOwnerName     string

	// Server
	Port        string
	CORSOrigins string
	PublicDir   string

	// Rate limits (requests per minute per IP)
	APIRateLimit  int
	AuthRateLimit int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "gymtrack"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "gymtrack.db"),

		SessionTTL:    parseDuration(getEnv("SESSION_TTL", "24h")),
		SessionCookie: getEnv("SESSION_COOKIE", "gym_session"),

		SeedOwnerUsername: getEnv("SEED_OWNER_USERNAME", "admin"),
		SeedOwnerEmail:    getEnv("SEED_OWNER_EMAIL", "admin@gym.com"),
		SeedOwnerPassword: getEnv("SEED_OWNER_PASSWORD", "admin123"),
		SeedOwnerName:     getEnv("SEED_OWNER_NAME", "Gym Owner"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		PublicDir:   getEnv("PUBLIC_DIR", "public"),

		APIRateLimit:  parseInt(getEnv("API_RATE_LIMIT", "60"), 60),
		AuthRateLimit: parseInt(getEnv("AUTH_RATE_LIMIT", "10"), 10),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
