// Package config loads the dev server settings from the environment.
package config

import (
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultJWTSecret signs tokens when JWT_SECRET is unset. Development only.
const DefaultJWTSecret = "varta-dev-secret"

// Config holds the dev server settings
type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	PingMessage string `env:"PING_MESSAGE" env-default:"ping"`
	JWTSecret   string `env:"JWT_SECRET" env-default:"varta-dev-secret"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	CORSOrigins string `env:"CORS_ORIGINS" env-default:"*"`
	FakePosts   int    `env:"FAKE_POSTS" env-default:"0"`

	Log struct {
		Level string `env:"LOG_LEVEL" env-default:"info"`
		File  string `env:"LOG_FILE" env-default:"varta-server.log"`
	}

	Telemetry struct {
		Enabled      bool    `env:"OTEL_ENABLED" env-default:"false"`
		Endpoint     string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
		SamplingRate float64 `env:"OTEL_SAMPLING_RATE" env-default:"1.0"`
	}
}

// Load reads .env files when present, then the environment
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is normal; the process environment still applies
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins splits CORS_ORIGINS on commas
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// IsDevelopment reports whether ENVIRONMENT is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
