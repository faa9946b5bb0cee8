package config

import (
	"os"
	"strconv"
	"strings"

	"nelson-chat/internal/domain"
)

type Config struct {
	Env        string
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
	// GeminiTimeout bounds the generation call in seconds. The original
	// function had no timeout at all; a hung model call must not hang
	// the request forever.
	GeminiTimeout int

	// SearchLimit caps hits per corpus collection.
	SearchLimit int
	// SearchTimeout bounds the corpus search step in seconds.
	SearchTimeout int

	RateLimitRPS   float64
	RateLimitBurst int

	OTelEnabled bool
}

func Load() *Config {
	return &Config{
		Env:        getEnv("ENV", "development"),
		Port:       getEnv("PORT", "9020"),
		DBHost:     getEnv("DB_HOST", "nelson-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "nelson_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "nelson_password"),
		DBName:     getEnv("DB_NAME", "nelson_db"),

		GeminiAPIKey:  getSecret("GEMINI_API_KEY", "GEMINI_API_KEY_FILE", ""),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiTimeout: getEnvInt("GEMINI_TIMEOUT_SECONDS", 60),

		SearchLimit:   getEnvInt("CORPUS_SEARCH_LIMIT", 3),
		SearchTimeout: getEnvInt("CORPUS_SEARCH_TIMEOUT_SECONDS", 10),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 5),

		OTelEnabled: getEnv("OTEL_ENABLED", "false") == "true",
	}
}

// Validate reports missing credentials as a ConfigurationError. The
// process must not start without them; there is no per-request check.
func (c *Config) Validate() error {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.DBPassword == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if len(missing) > 0 {
		return &domain.ConfigurationError{Missing: missing}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
