package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if VOYAGO_CONFIG is set
//  3. env (prefix VOYAGO_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("VOYAGO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: VOYAGO_ADDR, VOYAGO_MAX_RESULTS, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("VOYAGO_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "voyago_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxResults < 1:
		return fmt.Errorf("%w: max_results must be positive", ErrInvalidConfig)
	case c.MapScalePctPerKm <= 0:
		return fmt.Errorf("%w: map_scale_pct_per_km must be positive", ErrInvalidConfig)
	case c.DefaultMapRadiusPct <= 0:
		return fmt.Errorf("%w: default_map_radius_pct must be positive", ErrInvalidConfig)
	}
	return nil
}
