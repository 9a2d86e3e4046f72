// Package engine runs the monthly forecast.
package engine

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/loan"
	"github.com/theirongolddev/runway/internal/model"
)

// RandomSource draws uniform values in [0, 1) for churn trials.
type RandomSource interface {
	Float64() float64
}

// NewRandom returns a seeded source. Each run needs its own.
func NewRandom(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // simulation, not crypto
}

// Option configures a run.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger routes run diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Run simulates cfg.General.Months months and returns one record per month.
// It fails only on an invalid config or a cancelled context; invariant
// violations are left for pipeline.Validate to report.
func Run(ctx context.Context, cfg config.Config, rng RandomSource, opts ...Option) ([]model.MonthlyRecord, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if rng == nil {
		return nil, fmt.Errorf("run: nil random source")
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	sim, err := newSimulation(cfg, rng, o.logger)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("starting forecast",
		zap.Int("months", cfg.General.Months),
		zap.String("scenario", sim.scenario.Name),
		zap.String("strategy", sim.alloc.Strategy),
		zap.Float64("net_loan", sim.ledger.Net()),
	)

	records := make([]model.MonthlyRecord, 0, cfg.General.Months)
	for m := 1; m <= cfg.General.Months; m++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("forecast stopped at month %d: %w", m, err)
		}
		records = append(records, sim.month(m))
	}
	return records, nil
}

// Plan describes the loan setup a run derives from cfg before month 1.
type Plan struct {
	Scenario   config.LoanScenario
	SetupFee   float64
	Net        float64
	Allocation loan.Allocation
	Benefits   loan.Benefits
}

// PlanFor resolves the active scenario, allocation and unlocked benefits.
func PlanFor(cfg config.Config) (Plan, error) {
	scenario, err := cfg.ActiveScenario()
	if err != nil {
		return Plan{}, err
	}
	strategy, err := cfg.ActiveStrategy()
	if err != nil {
		return Plan{}, err
	}
	net := loan.NetAmount(scenario, cfg.Loan.SetupFeeRate)
	alloc, err := loan.Allocate(net, strategy)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Scenario:   scenario,
		SetupFee:   loan.SetupFee(scenario, cfg.Loan.SetupFeeRate),
		Net:        net,
		Allocation: alloc,
		Benefits:   loan.ResolveBenefits(cfg.Loan, alloc),
	}, nil
}
