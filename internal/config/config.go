package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds server settings, loaded from the environment.
type Config struct {
	HTTPAddr string `env:"SHOP_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"SHOP_GRPC_ADDR" envDefault:":50051"`
	LogLevel string `env:"SHOP_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
