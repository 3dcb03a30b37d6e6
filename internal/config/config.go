// Package config provides configuration for chatd.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/petalcare/chatd/internal/domain"
)

// Config holds the chatd configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Completion settings
	CompletionMode domain.Mode
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	AssistantID    string

	// Timeouts
	CompletionTimeout time.Duration
	RunPollInterval   time.Duration
	RunPollTimeout    time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:       getEnv("DATABASE_URL", "file:conversations.db?cache=shared&mode=rwc"),
		CompletionMode:    domain.Mode(getEnv("COMPLETION_MODE", string(domain.ModeChat))),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AssistantID:       getEnv("OPENAI_ASSISTANT_ID", ""),
		CompletionTimeout: time.Duration(getEnvInt("COMPLETION_TIMEOUT_MS", 60000)) * time.Millisecond,
		RunPollInterval:   time.Duration(getEnvInt("RUN_POLL_INTERVAL_MS", 300)) * time.Millisecond,
		RunPollTimeout:    time.Duration(getEnvInt("RUN_POLL_TIMEOUT_MS", 60000)) * time.Millisecond,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
