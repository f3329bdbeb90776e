// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/cardmenu/internal/logging"
	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by every command.
type Config struct {
	LogLevel        string        `env:"CARDMENU_LOG_LEVEL"        envDefault:"info"`
	Addr            string        `env:"CARDMENU_ADDR"             envDefault:":8080"`
	CopyFile        string        `env:"CARDMENU_COPY_FILE"`
	NoColor         bool          `env:"CARDMENU_NO_COLOR"         envDefault:"false"`
	StrictData      bool          `env:"CARDMENU_STRICT_DATA"      envDefault:"false"`
	ShutdownTimeout time.Duration `env:"CARDMENU_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	MaxInputSize    int           `env:"CARDMENU_MAX_INPUT_SIZE"   envDefault:"4096"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from vars instead of the process
// environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	if cfg.MaxInputSize <= 0 {
		return Config{}, fmt.Errorf("CARDMENU_MAX_INPUT_SIZE must be positive, got %d", cfg.MaxInputSize)
	}
	return cfg, nil
}

// Level returns the parsed log level.
func (c Config) Level() (slog.Level, error) {
	return logging.ParseLevel(c.LogLevel)
}
