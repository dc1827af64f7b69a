// Package league drives multi-generation runs: tournament rounds, ELO
// summaries and GA evolution, with cancellation at generation boundaries.
package league

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tarot/ga"
)

// Config parameterises a league run. Zero values fall back to the defaults
// applied by normalize.
type Config struct {
	PlayerCount         int `yaml:"player_count"`
	DealsPerMatch       int `yaml:"deals_per_match"`
	RoundsPerGeneration int `yaml:"rounds_per_generation"`

	EloKFactor     float64 `yaml:"elo_k_factor"`
	EloMarginScale float64 `yaml:"elo_margin_scale"`

	// GA is optional: when nil the population passes through unchanged.
	GA *ga.Config `yaml:"ga"`

	Fitness ga.FitnessWeights `yaml:"fitness"`
}

// DefaultConfig is a 4-player league with untouched population.
func DefaultConfig() Config {
	return Config{
		PlayerCount:         4,
		DealsPerMatch:       5,
		RoundsPerGeneration: 3,
		EloKFactor:          32,
		EloMarginScale:      50,
		Fitness:             ga.DefaultFitnessWeights(),
	}
}

func (c *Config) normalize() error {
	if c.PlayerCount == 0 {
		c.PlayerCount = 4
	}
	if c.PlayerCount < 3 || c.PlayerCount > 5 {
		return fmt.Errorf("player_count must be 3, 4 or 5, got %d", c.PlayerCount)
	}
	if c.DealsPerMatch <= 0 {
		c.DealsPerMatch = 5
	}
	if c.RoundsPerGeneration <= 0 {
		c.RoundsPerGeneration = 3
	}
	if c.EloKFactor <= 0 {
		c.EloKFactor = 32
	}
	if c.EloMarginScale <= 0 {
		c.EloMarginScale = 50
	}
	if c.Fitness == (ga.FitnessWeights{}) {
		c.Fitness = ga.DefaultFitnessWeights()
	}
	return nil
}

// LoadConfig reads a league configuration from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read league config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse league config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
