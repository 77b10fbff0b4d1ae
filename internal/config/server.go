package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/diogo/chatwidget/internal/models"
)

// ServerConfig holds the backend settings, read from the environment.
type ServerConfig struct {
	Port            int
	DefaultProvider string
	LogLevel        string

	GeminiAPIKey     string
	GeminiModel      string
	GeminiAPIVersion string
	GeminiBaseURL    string

	LMStudioBaseURL     string
	LMStudioModel       string
	LMStudioAPIKey      string
	LMStudioTemperature float64

	MaxMessageChars int
	MaxHistory      int
	// ChatRateLimit is the sustained number of chat requests per second the
	// server accepts. Zero disables limiting.
	ChatRateLimit float64
}

// LoadServer reads environment variables, optionally from a .env file if present.
func LoadServer() ServerConfig {
	// A missing .env is the normal case in production
	_ = godotenv.Load()

	return ServerConfig{
		Port:            getEnvInt("PORT", 5000),
		DefaultProvider: strings.ToLower(getEnv("LLM_PROVIDER", models.DefaultProvider)),
		LogLevel:        getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "models/gemini-2.5-flash"),
		GeminiAPIVersion: getEnv("GEMINI_API_VERSION", "v1beta"),
		GeminiBaseURL:    strings.TrimRight(getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"), "/"),

		LMStudioBaseURL:     strings.TrimRight(getEnv("LMSTUDIO_BASE_URL", "http://localhost:1234/v1"), "/"),
		LMStudioModel:       os.Getenv("LMSTUDIO_MODEL"),
		LMStudioAPIKey:      os.Getenv("LMSTUDIO_API_KEY"),
		LMStudioTemperature: getEnvFloat("LMSTUDIO_TEMPERATURE", 0.7),

		MaxMessageChars: getEnvInt("MAX_MESSAGE_CHARS", 4000),
		MaxHistory:      getEnvInt("MAX_HISTORY", 20),
		ChatRateLimit:   getEnvFloat("CHAT_RATE_LIMIT", 0),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
