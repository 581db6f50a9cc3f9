package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

type Config struct {
	// Gemini API credential. The app refuses to start without it.
	GeminiAPIKey string `env:"GEMINI_API_KEY,required"`

	// HTTP server
	Port int `env:"PORT" envDefault:"8501"`

	// LLM settings
	LLMProvider  Provider `env:"LLM_PROVIDER" envDefault:"gemini"`
	DefaultModel string   `env:"DEFAULT_MODEL" envDefault:"gemini-2.5-pro"`

	// OpenAI-compatible gateway (optional alternate provider)
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	// Storage
	LogFilePath string `env:"FEEDBACK_LOG_PATH" envDefault:"feedback_log.csv"`

	// Daily score summary job
	DailySummary bool `env:"DAILY_SUMMARY" envDefault:"true"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
