package pipeline

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/loan"
	"github.com/theirongolddev/runway/internal/model"
)

// Validation check names.
const (
	CheckLedger         = "loan_ledger"
	CheckCohort         = "cohort_length"
	CheckOverload       = "designer_overload"
	CheckFounderCap     = "founder_support_cap"
	CheckConvergence    = "compensation_convergence"
	CheckDesigners      = "designer_limit"
	CheckMonthlyProfit  = "monthly_profit"
	CheckMarketingSpend = "marketing_spend"
)

// Report collects every finding of a post-hoc validation pass.
type Report struct {
	Violations []model.Violation
}

// Errors returns the error-severity findings.
func (r Report) Errors() []model.Violation { return r.filter(model.SeverityError) }

// Warnings returns the warning-severity findings.
func (r Report) Warnings() []model.Violation { return r.filter(model.SeverityWarning) }

// OK reports whether no errors were found. Warnings do not fail a run.
func (r Report) OK() bool { return len(r.Errors()) == 0 }

func (r Report) filter(sev model.Severity) []model.Violation {
	var out []model.Violation
	for _, v := range r.Violations {
		if v.Severity == sev {
			out = append(out, v)
		}
	}
	return out
}

func (r *Report) add(month int, check string, sev model.Severity, format string, args ...any) {
	r.Violations = append(r.Violations, model.Violation{
		Month:    month,
		Check:    check,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Validate checks a finished run against its config and reports every
// violation found rather than stopping at the first.
func Validate(cfg config.Config, records []model.MonthlyRecord) Report {
	var rep Report

	net := 0.0
	if scenario, err := cfg.ActiveScenario(); err == nil {
		net = loan.NetAmount(scenario, cfg.Loan.SetupFeeRate)
	}
	limits := cfg.Validation

	streak := 0
	for _, r := range records {
		if err := loan.CheckBalance(r.TotalInvested, r.RemainingFunds, net); err != nil {
			rep.add(r.Month, CheckLedger, model.SeverityError, "%v", err)
		}
		for _, t := range model.Tiers {
			if r.Customers[t] != r.CohortAges[t] {
				rep.add(r.Month, CheckCohort, model.SeverityError,
					"%s cohort has %d customers but %d ages", t, r.Customers[t], r.CohortAges[t])
			}
		}

		if r.Utilization > 1 {
			streak++
			if streak == limits.MaxOverloadMonths+1 {
				rep.add(r.Month, CheckOverload, model.SeverityError,
					"designer utilization above 100%% for %d consecutive months (%.0f%%)", streak, r.Utilization*100)
			}
		} else {
			streak = 0
		}

		if r.FounderSupport > cfg.Founder.MaxSupport {
			rep.add(r.Month, CheckFounderCap, model.SeverityError,
				"founder support %.2f exceeds cap %.2f", r.FounderSupport, cfg.Founder.MaxSupport)
		}

		if !r.CompConverged {
			rep.add(r.Month, CheckConvergence, model.SeverityWarning,
				"compensation did not converge in %d iterations", r.CompIterations)
		}
		if limits.MaxDesigners > 0 && r.Designers > limits.MaxDesigners {
			rep.add(r.Month, CheckDesigners, model.SeverityWarning,
				"%d designers exceeds limit %d", r.Designers, limits.MaxDesigners)
		}
		if r.Profit < limits.MinMonthlyProfit {
			rep.add(r.Month, CheckMonthlyProfit, model.SeverityWarning,
				"monthly profit %.2f below %.2f", r.Profit, limits.MinMonthlyProfit)
		}
		if limits.MaxMarketingSpend > 0 && r.MarketingSpend > limits.MaxMarketingSpend {
			rep.add(r.Month, CheckMarketingSpend, model.SeverityWarning,
				"marketing spend %.2f exceeds %.2f", r.MarketingSpend, limits.MaxMarketingSpend)
		}
	}
	return rep
}
