package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything read from the environment. Model/provider
// tuning lives in configs/models.yaml (see models.go); environment values
// win where both name the same knob.
type Config struct {
	Port     string
	LogLevel string

	// Provider overrides the yaml provider when set.
	Provider      string
	GeminiAPIKey  string
	AWSRegion     string
	ClaudeModelID string
	OpenAIKey     string
	OpenAIModelID string

	// RequestTimeout bounds one provider attempt. Zero defers to yaml.
	RequestTimeout time.Duration

	StoreBackend     string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	RedisAddr        string
	RedisPassword    string

	KeepaliveURL      string
	KeepaliveInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		Provider:      getEnv("LLM_PROVIDER", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID: getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:     getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID: getEnv("OPEN_AI_MODEL_ID", ""),

		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 0)) * time.Millisecond,

		StoreBackend:     getEnv("STORE_BACKEND", "memory"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresDB:       getEnv("POSTGRES_DB", "promptlab"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),

		KeepaliveURL:      getEnv("KEEPALIVE_URL", ""),
		KeepaliveInterval: time.Duration(getEnvInt("KEEPALIVE_INTERVAL_MS", 840000)) * time.Millisecond,
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}
