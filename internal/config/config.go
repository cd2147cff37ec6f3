package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"medtrack/internal/kvstore"
)

// Config настройки приложения из окружения
type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	Store kvstore.Options

	JWTSecret  string
	SessionTTL time.Duration

	CEPBaseURL string

	LogLevel  string
	LogFormat string

	NotificationsEnabled bool
}

// Load читает .env (если есть) и переменные окружения.
// Отсутствующий .env не ошибка.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	backend, err := kvstore.ParseBackend(getEnvOrDefault("STORE_BACKEND", string(kvstore.BackendMemory)))
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPAddr:    getEnvOrDefault("HTTP_ADDR", ":8080"),
		CORSOrigins: getListEnv("CORS_ORIGINS", "*"),
		Store: kvstore.Options{
			Backend: backend,
			Redis: kvstore.RedisOptions{
				Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       getIntEnv("REDIS_DB", 0),
				Prefix:   getEnvOrDefault("REDIS_PREFIX", "medtrack:"),
			},
			Mongo: kvstore.MongoOptions{
				URI:        getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
				Database:   getEnvOrDefault("MONGO_DB", "medtrack"),
				Collection: getEnvOrDefault("MONGO_COLLECTION", "kv"),
			},
		},
		JWTSecret:            getEnvOrDefault("JWT_SECRET", "medtrack-dev-secret"),
		SessionTTL:           getDurationEnv("SESSION_TTL", 24, time.Hour),
		CEPBaseURL:           getEnvOrDefault("CEP_BASE_URL", "https://viacep.com.br"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		NotificationsEnabled: getBoolEnv("NOTIFICATIONS_ENABLED", true),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getListEnv(key, defaultValue string) []string {
	var out []string
	for _, v := range strings.Split(getEnvOrDefault(key, defaultValue), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv целое число в единицах unit либо строка time.ParseDuration
func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return time.Duration(defaultValue) * unit
}
