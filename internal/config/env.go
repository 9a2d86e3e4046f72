package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds RUNWAY_* environment overrides.
type Env struct {
	ConfigPath string `env:"RUNWAY_CONFIG"`
	Months     int    `env:"RUNWAY_MONTHS"`
	Seed       *int64 `env:"RUNWAY_SEED"`
	Scenario   string `env:"RUNWAY_SCENARIO"`
	Strategy   string `env:"RUNWAY_STRATEGY"`
	Theme      string `env:"RUNWAY_THEME"`
}

// ParseEnv loads overrides from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply returns cfg with the set overrides applied.
func (e Env) Apply(cfg Config) Config {
	if e.Months > 0 {
		cfg = ExtendSchedules(cfg, e.Months)
	}
	if e.Seed != nil {
		cfg.General.Seed = *e.Seed
	}
	if e.Scenario != "" {
		cfg.Loan.Scenario = e.Scenario
	}
	if e.Strategy != "" {
		cfg.Loan.Strategy = e.Strategy
	}
	if e.Theme != "" {
		cfg.Appearance.Theme = e.Theme
	}
	return cfg
}
