package config

import (
	"fmt"
	"math"
	"strings"
)

const shareTolerance = 1e-6

// Supported forecast horizon in months.
const (
	MinMonths = 12
	MaxMonths = 36
)

// ValidationError lists every configuration problem found.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s", strings.Join(e.Problems, "; "))
}

func (e *ValidationError) addf(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Validate checks that c can drive a full run. It returns a *ValidationError
// listing all problems, or nil.
func Validate(c Config) error {
	v := &ValidationError{}

	months := c.General.Months
	if months < MinMonths || months > MaxMonths {
		v.addf("general.months must be between %d and %d, got %d", MinMonths, MaxMonths, months)
	}
	if _, err := c.General.Start(); err != nil {
		v.addf("general.start_month: %v", err)
	}
	if c.General.RollingWindow < 1 {
		v.addf("general.rolling_window must be at least 1, got %d", c.General.RollingWindow)
	}

	if d := c.Customers.Distribution.Sum(); math.Abs(d-1) > shareTolerance {
		v.addf("customers.distribution must sum to 1.0, got %.4f", d)
	}
	if c.Customers.Churn.EarlyMonths < 0 {
		v.addf("customers.churn.early_months must not be negative")
	}

	validateMarketing(v, c.Marketing, months)
	validateStaffing(v, c.Staffing)

	if c.Collaborator.MaxIterations < 1 {
		v.addf("collaborator.max_iterations must be at least 1")
	}
	if c.Collaborator.Tolerance <= 0 {
		v.addf("collaborator.tolerance must be positive")
	}
	if c.Collaborator.FreelanceProfitShare >= 1 || c.Collaborator.FullTimeProfitShare >= 1 {
		v.addf("collaborator profit shares must be below 1.0")
	}

	validateFounder(v, c.Founder)
	validateCosts(v, c.Costs)

	r := c.Reinvestment
	if math.Abs(r.MarketingShare+r.PersonnelShare-1) > shareTolerance {
		v.addf("reinvestment marketing_share + personnel_share must sum to 1.0, got %.4f", r.MarketingShare+r.PersonnelShare)
	}

	validateLoan(v, c)

	if len(v.Problems) == 0 {
		return nil
	}
	return v
}

func validateMarketing(v *ValidationError, m MarketingConfig, months int) {
	var boost float64
	for _, ch := range m.Channels {
		boost += ch.BoostShare
		if len(ch.CAC) == 0 {
			v.addf("marketing channel %q has no CAC tiers", ch.Name)
		}
		for i := 1; i < len(ch.CAC); i++ {
			if ch.CAC[i].Spend <= ch.CAC[i-1].Spend {
				v.addf("marketing channel %q CAC tiers must be sorted by ascending spend", ch.Name)
				break
			}
		}
		for _, t := range ch.CAC {
			if t.CAC <= 0 {
				v.addf("marketing channel %q has non-positive CAC at spend %.0f", ch.Name, t.Spend)
			}
		}
		if len(ch.Schedule) < months {
			v.addf("marketing channel %q schedule covers %d months, need %d", ch.Name, len(ch.Schedule), months)
		}
	}
	if len(m.Channels) > 0 && math.Abs(boost-1) > shareTolerance {
		v.addf("marketing channel boost shares must sum to 1.0, got %.4f", boost)
	}
	if len(m.Organic) < months {
		v.addf("marketing.organic schedule covers %d months, need %d", len(m.Organic), months)
	}
}

func validateStaffing(v *ValidationError, s StaffingConfig) {
	if s.Capacity.Basic <= 0 || s.Capacity.Pro <= 0 || s.Capacity.Enterprise <= 0 {
		v.addf("staffing.capacity must be positive for every tier")
	}
	if s.Fire >= s.SubsequentHire {
		v.addf("staffing.fire_threshold (%.2f) must be below subsequent_hire_threshold (%.2f)", s.Fire, s.SubsequentHire)
	}
	if s.Emergency < s.SubsequentHire {
		v.addf("staffing.emergency_threshold must be at least subsequent_hire_threshold")
	}
	if s.FireAfterMonths < 1 {
		v.addf("staffing.fire_after_months must be at least 1")
	}
}

func validateFounder(v *ValidationError, f FounderConfig) {
	if f.MaxSupport < 0 {
		v.addf("founder.max_support must not be negative")
	}
	for i := 1; i < len(f.Breakpoints); i++ {
		prev, bp := f.Breakpoints[i-1], f.Breakpoints[i]
		if bp.Profit <= prev.Profit {
			v.addf("founder.breakpoints must be sorted by ascending profit")
		}
		if bp.Support < prev.Support {
			v.addf("founder.breakpoints support must not decrease (%.0f at profit %.0f)", bp.Support, bp.Profit)
		}
	}
	for _, bp := range f.Breakpoints {
		if bp.Profit > f.MinProfit {
			if bp.Support < f.MinSupport {
				v.addf("founder.min_support exceeds the support at profit %.0f", bp.Profit)
			}
			break
		}
	}
}

func validateCosts(v *ValidationError, c CostConfig) {
	for i := 1; i < len(c.ServerTiers); i++ {
		if c.ServerTiers[i].Customers <= c.ServerTiers[i-1].Customers {
			v.addf("costs.server_tiers must be sorted by ascending customers")
			break
		}
	}
	for i := 1; i < len(c.LLMTiers); i++ {
		if c.LLMTiers[i].Above <= c.LLMTiers[i-1].Above {
			v.addf("costs.llm_tiers must be sorted by ascending profit floor")
			break
		}
	}
}

func validateLoan(v *ValidationError, c Config) {
	if c.Loan.SetupFeeRate < 0 || c.Loan.SetupFeeRate >= 1 {
		v.addf("loan.setup_fee_rate must be in [0, 1)")
	}
	for _, s := range c.Loan.Scenarios {
		if s.Amount < 0 {
			v.addf("loan scenario %q has negative amount", s.Name)
		}
		if s.TermMonths < 0 || s.InterestOnlyMonths < 0 {
			v.addf("loan scenario %q has negative term", s.Name)
		}
		if s.Amount > 0 && s.InterestOnlyMonths >= s.TermMonths {
			v.addf("loan scenario %q interest-only period must be shorter than the term", s.Name)
		}
		if s.AnnualRate < 0 {
			v.addf("loan scenario %q has negative rate", s.Name)
		}
	}
	for _, s := range c.Loan.Strategies {
		if sum := s.Sum(); math.Abs(sum-1) > shareTolerance {
			v.addf("allocation strategy %q must sum to 1.0, got %.4f", s.Name, sum)
		}
	}
	if _, err := c.ActiveScenario(); err != nil {
		v.addf("loan.scenario: %v", err)
	}
	if _, err := c.ActiveStrategy(); err != nil {
		v.addf("loan.strategy: %v", err)
	}
}
