/*
Package config
File: config.go
Description:
    Process configuration read from the environment, and the structured
    logger built from it.
*/

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the server configuration.
type Config struct {
	Port           string        `env:"GALAXY_PORT" envDefault:"8081"`
	CatalogPath    string        `env:"GALAXY_CATALOG_PATH"`
	Hourglass      time.Duration `env:"GALAXY_HOURGLASS"` // overrides the catalog when set
	LogLevel       string        `env:"GALAXY_LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string      `env:"GALAXY_ALLOWED_ORIGINS" envSeparator:","`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the server configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Logger builds a production zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// OriginAllowed reports whether a websocket origin may connect. An empty
// allow list accepts everyone.
func (c Config) OriginAllowed(origin string) bool {
	if len(c.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == origin || o == "*" {
			return true
		}
	}
	return false
}
