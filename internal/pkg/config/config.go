package config

import (
	"os"

	"github.com/wayfarer-ai/wayfarer/internal/app/genai"
)

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Config struct {
	ServerPort  string
	MetricsPort string
	PprofPort   string
	Gemini      GeminiConfig
}

// Load reads configuration from the environment. GEMINI_API_KEY may be
// absent; the planner and chatbot then answer every request with a
// configuration error instead of failing startup.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8080"),
		MetricsPort: getEnvOrDefault("METRICS_PORT", "9092"),
		PprofPort:   getEnvOrDefault("PPROF_PORT", "6060"),
		Gemini: GeminiConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   getEnvOrDefault("GEMINI_MODEL", genai.DefaultModel),
			BaseURL: getEnvOrDefault("GEMINI_BASE_URL", genai.DefaultBaseURL),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
