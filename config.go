package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Strategy selects how the search space is walked.
type Strategy string

const (
	// StrategyLazy yields one branch at a time; memory stays bounded.
	StrategyLazy Strategy = "lazy"
	// StrategyEager materializes every branch and caches source-pair merges.
	StrategyEager Strategy = "eager"
)

// UnmarshalText lets env and flag parsing reject unknown strategies.
func (s *Strategy) UnmarshalText(b []byte) error {
	switch v := Strategy(b); v {
	case StrategyLazy, StrategyEager:
		*s = v
		return nil
	}
	return fmt.Errorf("unknown strategy %q (want lazy or eager)", string(b))
}

func (s Strategy) String() string { return string(s) }

// Set implements flag.Value.
func (s *Strategy) Set(v string) error { return s.UnmarshalText([]byte(v)) }

// Config holds search settings. Adjust these to trade memory for speed.
type Config struct {
	// Strategy picks lazy or eager enumeration.
	Strategy Strategy `env:"ANVIL_STRATEGY" envDefault:"lazy"`
	// Verbose prints detailed search progress to stderr.
	Verbose bool `env:"ANVIL_VERBOSE"`
	// ProgressEvery logs a line every N lazily examined branches in verbose
	// mode. Zero disables it.
	ProgressEvery int `env:"ANVIL_PROGRESS_EVERY" envDefault:"1000000"`
}

// DefaultConfig returns the settings used when no environment is set.
func DefaultConfig() Config {
	return Config{
		Strategy:      StrategyLazy,
		ProgressEvery: 1_000_000,
	}
}

// LoadConfigFromEnv reads ANVIL_* variables on top of the defaults.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse env: %w", err)
	}
	if cfg.ProgressEvery < 0 {
		return DefaultConfig(), fmt.Errorf("ANVIL_PROGRESS_EVERY must be >= 0, got %d", cfg.ProgressEvery)
	}
	return cfg, nil
}
