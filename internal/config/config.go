// Package config loads simulation parameters from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Distance measurements for the path prescan.
const (
	Manhattan = "manhattan"
	Chebyshev = "chebyshev"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of the simulation core and the demo.
type Config struct {
	FOVRadius       int    `yaml:"fov_radius"`
	PrescanLimit    int    `yaml:"prescan_limit"`
	MaxRewrites     int    `yaml:"max_rewrites"`
	Measurement     string `yaml:"measurement"`
	DiagonalMoves   bool   `yaml:"diagonal_moves"`
	MoveCost        int    `yaml:"move_cost"`
	StartEnergy     int    `yaml:"start_energy"`
	EnergyPerRound  int    `yaml:"energy_per_round"`
	Seed            int64  `yaml:"seed"` // 0 picks a time-based seed
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
	MessageCapacity int    `yaml:"message_capacity"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		FOVRadius:       9,
		PrescanLimit:    13,
		MaxRewrites:     2,
		Measurement:     Manhattan,
		MoveCost:        5,
		StartEnergy:     10,
		EnergyPerRound:  5,
		LogLevel:        "info",
		LogFormat:       "text",
		MessageCapacity: 100,
	}
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.FOVRadius < 1:
		return fmt.Errorf("fov_radius must be >= 1, got %d: %w", c.FOVRadius, ErrInvalid)
	case c.PrescanLimit < 1:
		return fmt.Errorf("prescan_limit must be >= 1, got %d: %w", c.PrescanLimit, ErrInvalid)
	case c.MaxRewrites < 0:
		return fmt.Errorf("max_rewrites must be >= 0, got %d: %w", c.MaxRewrites, ErrInvalid)
	case c.Measurement != Manhattan && c.Measurement != Chebyshev:
		return fmt.Errorf("measurement %q is not %q or %q: %w", c.Measurement, Manhattan, Chebyshev, ErrInvalid)
	case c.MoveCost < 0:
		return fmt.Errorf("move_cost must be >= 0, got %d: %w", c.MoveCost, ErrInvalid)
	case c.StartEnergy < 0:
		return fmt.Errorf("start_energy must be >= 0, got %d: %w", c.StartEnergy, ErrInvalid)
	case c.EnergyPerRound < 0:
		return fmt.Errorf("energy_per_round must be >= 0, got %d: %w", c.EnergyPerRound, ErrInvalid)
	}
	return nil
}
