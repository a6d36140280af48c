package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// EnvConfig holds settings read from the environment.
type EnvConfig struct {
	APIKey     string `env:"OPEN_ROUTER_API_KEY"`
	Model      string `env:"SPEEDREAD_MODEL"`
	APIBaseURL string `env:"SPEEDREAD_API_BASE_URL"`
	Debug      bool   `env:"SPEEDREAD_DEBUG"`
}

// LoadEnv loads .env files (best effort, existing variables win) and parses
// the environment. With no paths, ./.env is tried.
func LoadEnv(dotenv ...string) (EnvConfig, error) {
	_ = godotenv.Load(dotenv...)

	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
