// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/voyago/voyago/internal/domain/scoring"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxResults caps the number of recommendations returned per request.
	MaxResults int `koanf:"max_results"`

	// CatalogPath points at a JSON file of seed places. Empty means the
	// built-in demo catalog.
	CatalogPath string `koanf:"catalog_path"`

	// MapScalePctPerKm sets how many viewport percent one kilometer maps to.
	MapScalePctPerKm float64 `koanf:"map_scale_pct_per_km"`

	// DefaultMapRadiusPct is the marker ring used when distance is unknown.
	DefaultMapRadiusPct float64 `koanf:"default_map_radius_pct"`

	// ScoringWeights tunes the relative importance of ranking dimensions.
	ScoringWeights scoring.Weights `koanf:"scoring_weights"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		MaxResults:          50,
		MapScalePctPerKm:    8,
		DefaultMapRadiusPct: 25,
		ScoringWeights:      scoring.DefaultWeights(),
	}
}
