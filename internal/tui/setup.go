package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup wizard.
type SetupValues struct {
	Scenario string
	Strategy string
	Months   int
	Seed     string
	Theme    string
}

var horizonOptions = []int{12, 18, 24, 36}

// ValuesFrom seeds the wizard with the current config.
func ValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Scenario: cfg.Loan.Scenario,
		Strategy: cfg.Loan.Strategy,
		Months:   cfg.General.Months,
		Seed:     strconv.FormatInt(cfg.General.Seed, 10),
		Theme:    cfg.Appearance.Theme,
	}
}

// Apply returns cfg with the wizard answers applied.
func (v SetupValues) Apply(cfg config.Config) config.Config {
	cfg = cfg.WithLoan(v.Scenario, v.Strategy)
	if v.Months > 0 && v.Months != cfg.General.Months {
		cfg = config.ExtendSchedules(cfg, v.Months)
	}
	if seed, err := strconv.ParseInt(strings.TrimSpace(v.Seed), 10, 64); err == nil {
		cfg.General.Seed = seed
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	return cfg
}

// NewSetupForm builds the huh form that picks the loan, horizon, seed and theme.
func NewSetupForm(cfg config.Config, vals *SetupValues) *huh.Form {
	scenarioOpts := make([]huh.Option[string], 0, len(cfg.Loan.Scenarios))
	for _, s := range cfg.Loan.Scenarios {
		label := s.Name
		if s.Amount > 0 {
			label = fmt.Sprintf("%s  (€%.0f, %.2f%%, %d months)", s.Name, s.Amount, s.AnnualRate*100, s.TermMonths)
		}
		scenarioOpts = append(scenarioOpts, huh.NewOption(label, s.Name))
	}

	strategyOpts := make([]huh.Option[string], 0, len(cfg.Loan.Strategies))
	for _, s := range cfg.Loan.Strategies {
		strategyOpts = append(strategyOpts, huh.NewOption(fmt.Sprintf("%s  (%s)", s.Name, s.Description), s.Name))
	}

	horizonOpts := make([]huh.Option[int], 0, len(horizonOptions))
	for _, m := range horizonOptions {
		horizonOpts = append(horizonOpts, huh.NewOption(fmt.Sprintf("%d months", m), m))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to runway").
				Description("A month-by-month cash-flow forecast.\nPick a loan and how to spend it."),
			huh.NewSelect[string]().
				Title("Loan scenario").
				Options(scenarioOpts...).
				Value(&vals.Scenario),
			huh.NewSelect[string]().
				Title("Allocation strategy").
				Options(strategyOpts...).
				Value(&vals.Strategy),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Forecast horizon").
				Options(horizonOpts...).
				Value(&vals.Months),
			huh.NewInput().
				Title("Random seed").
				Description("Same seed, same forecast.").
				Value(&vals.Seed).
				Validate(func(s string) error {
					if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
						return errors.New("seed must be an integer")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithShowHelp(true)
}
