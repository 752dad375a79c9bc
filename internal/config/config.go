package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port    string
	GinMode string

	// StoreKind selects the account store: "postgres" (default) or
	// "memory" for database-less development.
	StoreKind   string
	DatabaseDSN string

	// RedisAddr empty disables sessions pointers and leaderboard caching.
	RedisAddr     string
	RedisPassword string

	JWTSecret    string
	TradeWorkers int
}

// FromEnv assembles the configuration, falling back to development
// defaults for anything unset.
func FromEnv() Config {
	return Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", ""),

		StoreKind: getEnv("STORE", "postgres"),
		DatabaseDSN: fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "trader"),
			getEnv("DB_PASSWORD", "trading123"),
			getEnv("DB_NAME", "borsa_db"),
		),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
		TradeWorkers: getEnvInt("NUM_WORKERS", 5),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}
