package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything supplied from the environment. It is built once in
// main and handed to the components that need it; nothing reads env vars
// mid-request.
type Config struct {
	// DatabaseURL is a postgres:// DSN or a sqlite file path.
	DatabaseURL string
	// SessionSecret signs the session cookie.
	SessionSecret string
	// AdminPassword gates the dashboard. Ignored when AdminPasswordHash is set.
	AdminPassword string
	// AdminPasswordHash, when non-empty, is a bcrypt hash checked instead of
	// the plain password.
	AdminPasswordHash string
	// Addr is the listen address, e.g. ":8080".
	Addr string
}

// Load reads configuration from the environment, with an optional .env file
// and local-development defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", "giveaway.db"),
		SessionSecret:     getEnv("SECRET_KEY", "dev-secret-change-me"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "admin123"), // change in production
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		Addr:              ":" + getEnv("PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
