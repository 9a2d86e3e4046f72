package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownScenario is returned when a loan scenario name is not in the catalogue.
	ErrUnknownScenario = errors.New("unknown loan scenario")
	// ErrUnknownStrategy is returned when an allocation strategy name is not in the catalogue.
	ErrUnknownStrategy = errors.New("unknown allocation strategy")
)

// DefaultScenarios returns the built-in loan scenarios.
func DefaultScenarios() []LoanScenario {
	return []LoanScenario{
		{Name: "no_loan"},
		{Name: "actual_loan", Amount: 12000, AnnualRate: 0.036, TermMonths: 72, InterestOnlyMonths: 12},
		{Name: "small_loan", Amount: 10000, AnnualRate: 0.0439, TermMonths: 24},
		{Name: "medium_loan", Amount: 25000, AnnualRate: 0.0439, TermMonths: 36},
		{Name: "large_loan", Amount: 50000, AnnualRate: 0.0439, TermMonths: 48},
		{Name: "aggressive_loan", Amount: 100000, AnnualRate: 0.0439, TermMonths: 60},
	}
}

// DefaultStrategies returns the built-in allocation strategies.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "marketing_focused", Description: "Focus on customer acquisition",
			Marketing: 0.60, Team: 0.15, Infrastructure: 0.10, Reserve: 0.05, Founder: 0.10},
		{Name: "realistic_12k", Description: "Gradual deployment of a small loan",
			Marketing: 0.50, Team: 0.30, Infrastructure: 0.10, Reserve: 0.10, Founder: 0},
		{Name: "balanced", Description: "Balanced growth approach",
			Marketing: 0.40, Team: 0.25, Infrastructure: 0.15, Reserve: 0.10, Founder: 0.10},
		{Name: "team_focused", Description: "Focus on team building",
			Marketing: 0.25, Team: 0.45, Infrastructure: 0.15, Reserve: 0.05, Founder: 0.10},
		{Name: "conservative", Description: "Conservative with large cash reserve",
			Marketing: 0.25, Team: 0.20, Infrastructure: 0.10, Reserve: 0.30, Founder: 0.15},
	}
}

// LookupScenario finds a loan scenario by name (case-insensitive).
func (c Config) LookupScenario(name string) (LoanScenario, error) {
	for _, s := range c.Loan.Scenarios {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return LoanScenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// LookupStrategy finds an allocation strategy by name (case-insensitive).
func (c Config) LookupStrategy(name string) (Strategy, error) {
	for _, s := range c.Loan.Strategies {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// ActiveScenario returns the selected loan scenario.
func (c Config) ActiveScenario() (LoanScenario, error) {
	return c.LookupScenario(c.Loan.Scenario)
}

// ActiveStrategy returns the selected allocation strategy.
func (c Config) ActiveStrategy() (Strategy, error) {
	return c.LookupStrategy(c.Loan.Strategy)
}

// WithLoan returns a copy of c selecting the given scenario and strategy.
func (c Config) WithLoan(scenario, strategy string) Config {
	c.Loan.Scenario = scenario
	c.Loan.Strategy = strategy
	return c
}

// ExtendSchedules returns a copy of c whose horizon is months, padding every
// monthly schedule by repeating its final entry.
func ExtendSchedules(c Config, months int) Config {
	c.General.Months = months

	channels := make([]Channel, len(c.Marketing.Channels))
	for i, ch := range c.Marketing.Channels {
		ch.Schedule = padFloats(ch.Schedule, months)
		channels[i] = ch
	}
	c.Marketing.Channels = channels
	c.Marketing.Organic = padInts(c.Marketing.Organic, months)
	return c
}

func padFloats(s []float64, n int) []float64 {
	out := make([]float64, len(s), max(len(s), n))
	copy(out, s)
	var last float64
	if len(s) > 0 {
		last = s[len(s)-1]
	}
	for len(out) < n {
		out = append(out, last)
	}
	return out
}

func padInts(s []int, n int) []int {
	out := make([]int, len(s), max(len(s), n))
	copy(out, s)
	var last int
	if len(s) > 0 {
		last = s[len(s)-1]
	}
	for len(out) < n {
		out = append(out, last)
	}
	return out
}
