package loan

import (
	"errors"
	"fmt"
	"math"

	"github.com/theirongolddev/runway/internal/config"
)

// ErrAllocationSum is returned when a strategy's shares do not sum to 1.
var ErrAllocationSum = errors.New("allocation shares must sum to 1")

// Allocation is the net loan amount split by spending category.
type Allocation struct {
	Strategy       string
	Marketing      float64
	Team           float64
	Infrastructure float64
	Reserve        float64
	Founder        float64
}

// Total returns the allocated amount.
func (a Allocation) Total() float64 {
	return a.Marketing + a.Team + a.Infrastructure + a.Reserve + a.Founder
}

// Allocate splits net proportionally. Shares are never normalized.
func Allocate(net float64, s config.Strategy) (Allocation, error) {
	if sum := s.Sum(); math.Abs(sum-1) > 1e-6 {
		return Allocation{}, fmt.Errorf("strategy %s sums to %.4f: %w", s.Name, sum, ErrAllocationSum)
	}
	return Allocation{
		Strategy:       s.Name,
		Marketing:      net * s.Marketing,
		Team:           net * s.Team,
		Infrastructure: net * s.Infrastructure,
		Reserve:        net * s.Reserve,
		Founder:        net * s.Founder,
	}, nil
}

// Benefits are the operating effects unlocked by an allocation.
type Benefits struct {
	InfrastructureTier    string
	InfrastructureMonthly float64
	InfrastructureSetup   float64
	ChurnReduction        float64
	VariableCostReduction float64

	TeamTier           string
	CapacityBoost      float64
	FullTimeMultiplier float64 // 1 when no team tier is met

	FounderTier  string
	OrganicBoost float64
}

// ResolveBenefits picks, per category, the highest tier whose threshold the
// category's allocation meets.
func ResolveBenefits(cfg config.LoanConfig, a Allocation) Benefits {
	b := Benefits{FullTimeMultiplier: 1}

	var infraAt float64
	for _, t := range cfg.Infrastructure {
		if a.Infrastructure >= t.Threshold && t.Threshold >= infraAt {
			infraAt = t.Threshold
			b.InfrastructureTier = t.Name
			b.InfrastructureMonthly = t.MonthlyCost
			b.InfrastructureSetup = t.SetupCost
			b.ChurnReduction = t.ChurnReduction
			b.VariableCostReduction = t.VariableCostReduction
		}
	}

	var teamAt float64
	for _, t := range cfg.Team {
		if a.Team >= t.Threshold && t.Threshold >= teamAt {
			teamAt = t.Threshold
			b.TeamTier = t.Name
			b.CapacityBoost = t.CapacityBoost
			b.FullTimeMultiplier = t.FullTimeThresholdMultiplier
			if b.FullTimeMultiplier <= 0 {
				b.FullTimeMultiplier = 1
			}
		}
	}

	var founderAt float64
	for _, t := range cfg.Founder {
		if a.Founder >= t.Threshold && t.Threshold >= founderAt {
			founderAt = t.Threshold
			b.FounderTier = t.Name
			b.OrganicBoost = t.OrganicBoost
		}
	}
	return b
}

// MarketingBoost spreads the unspent marketing allocation evenly over the
// months left, limited by what the ledger still holds.
func MarketingBoost(allocRemaining float64, monthsLeft int, ledgerRemaining float64) float64 {
	if allocRemaining <= 0 || monthsLeft <= 0 || ledgerRemaining <= 0 {
		return 0
	}
	return math.Min(allocRemaining/float64(monthsLeft), ledgerRemaining)
}
