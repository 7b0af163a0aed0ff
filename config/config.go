package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Address the HTTP server binds to
	Addr string `env:"ADDR" envDefault:":5250"`

	// Path of the sqlite file backing the key-value store
	DatabasePath string `env:"DATABASE_PATH" envDefault:"database/ultra.db"`

	// Gemini API key; the server refuses to start without one
	APIKey string `env:"API_KEY"`

	// Gemini model used for every generation
	Model string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// Admin dashboard password
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`

	// Origins allowed by the CORS middleware
	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
