package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup. Loaded once in main
// and handed down explicitly — no package-level globals.
type Config struct {
	Port      string
	DBPath    string
	GinMode   string
	JWTSecret []byte
	TokenTTL  time.Duration
}

func Load() *Config {
	// .env is optional; real env vars always win
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "coffeeshop.db"),
		GinMode:   getEnv("GIN_MODE", ""),
		JWTSecret: []byte(getEnv("JWT_SECRET", "coffeeshop_dev_secret")),
		TokenTTL:  getDuration("TOKEN_TTL", 15*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}
