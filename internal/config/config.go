package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string `env:"PORT" env-default:"8080"`
	Env         string `env:"ENV" env-default:"development"`
	SiteURL     string `env:"SITE_URL" env-default:"http://localhost:5173"`
	FrontendURL string `env:"FRONTEND_URL" env-default:"http://localhost:5173"`

	// Redis (optional, shared cache and rate window across replicas)
	RedisURL string `env:"REDIS_URL"`

	// Chat assistant
	ChatProvider       string        `env:"CHAT_PROVIDER" env-default:"gemini"`
	GeminiAPIKey       string        `env:"GEMINI_API_KEY"`
	OpenAIAPIKey       string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string        `env:"OPENAI_BASE_URL"`
	PrimaryModel       string        `env:"CHAT_PRIMARY_MODEL" env-default:"gemini-2.5-flash"`
	FallbackModel      string        `env:"CHAT_FALLBACK_MODEL" env-default:"gemini-1.5-flash"`
	MaxPairs           int           `env:"CHAT_MAX_PAIRS" env-default:"5"`
	RequestsPerMin     int           `env:"CHAT_RPM_LIMIT" env-default:"12"`
	RetryBackoff       time.Duration `env:"CHAT_RETRY_BACKOFF" env-default:"10s"`
	MaxOutputTokens    int32         `env:"CHAT_MAX_OUTPUT_TOKENS" env-default:"1024"`
	Temperature        float32       `env:"CHAT_TEMPERATURE" env-default:"0.7"`
	SessionIdleTimeout time.Duration `env:"CHAT_SESSION_IDLE_TIMEOUT" env-default:"30m"`
	MaxConcurrent      int           `env:"CHAT_MAX_CONCURRENT" env-default:"4"`
	ClientRPM          int           `env:"CHAT_CLIENT_RPM_LIMIT" env-default:"30"`

	// Profile
	ResumePath string `env:"RESUME_PATH" env-default:"config/resume.json"`

	// Blog content backend
	SanityProjectID  string `env:"SANITY_PROJECT_ID"`
	SanityDataset    string `env:"SANITY_DATASET" env-default:"production"`
	SanityAPIVersion string `env:"SANITY_API_VERSION" env-default:"2026-02-25"`
	SanityUseCDN     bool   `env:"SANITY_USE_CDN" env-default:"true"`
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.ChatProvider == "" {
		cfg.ChatProvider = "gemini"
	}
	if cfg.MaxPairs <= 0 {
		cfg.MaxPairs = 5
	}
	if cfg.RequestsPerMin <= 0 {
		cfg.RequestsPerMin = 12
	}
	if cfg.ClientRPM <= 0 {
		cfg.ClientRPM = 30
	}

	return &cfg, nil
}

// ChatCredential returns the API key for the configured chat provider.
// An empty value means the assistant runs in offline mode.
func (c *Config) ChatCredential() string {
	if c.ChatProvider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
