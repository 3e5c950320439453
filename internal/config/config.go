// Package config loads server configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server configuration
type Config struct {
	Addr         string        // адрес HTTP сервера, например ":8080"
	DatabasePath string        // путь к SQLite файлу (users, todos)
	SessionsPath string        // путь к BoltDB файлу с сессиями
	SessionTTL   time.Duration // абсолютное время жизни сессии
	LogLevel     string        // debug, info, warn, error
}

// Load reads configuration from the environment.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	// .env опционален, ошибку отсутствия игнорируем
	_ = godotenv.Load()

	return &Config{
		Addr:         getEnv("TODO_ADDR", ":8080"),
		DatabasePath: getEnv("TODO_DB_PATH", "todo.db"),
		SessionsPath: getEnv("TODO_SESSIONS_PATH", "sessions.db"),
		SessionTTL:   getEnvAsDuration("TODO_SESSION_TTL", 30*24*time.Hour),
		LogLevel:     getEnv("TODO_LOG_LEVEL", "info"),
	}
}

// getEnv возвращает значение переменной окружения или default
func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration возвращает duration из переменной окружения или default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return d
}
