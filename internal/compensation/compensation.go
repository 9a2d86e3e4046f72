// Package compensation resolves the collaborator's profit-linked pay and the
// founder support payment.
package compensation

import (
	"math"

	"github.com/theirongolddev/runway/internal/config"
)

// Pay is the collaborator's pay split by component.
type Pay struct {
	Salary       float64
	ProfitShare  float64
	ProjectShare float64
}

// Total returns the sum of all components.
func (p Pay) Total() float64 {
	return p.Salary + p.ProfitShare + p.ProjectShare
}

// PayFor computes pay against a profit estimate. Full-time collaborators get a
// salary plus a small profit share; freelancers get a larger profit share plus
// a share of one-time project revenue.
func PayFor(cfg config.CollaboratorConfig, profit, projectRevenue float64, fullTime bool) Pay {
	eligible := profit > cfg.ShareThreshold
	if fullTime {
		p := Pay{Salary: cfg.FullTimeSalary}
		if eligible {
			p.ProfitShare = profit * cfg.FullTimeProfitShare
		}
		return p
	}
	p := Pay{ProjectShare: projectRevenue * cfg.ProjectRevenueShare}
	if eligible {
		p.ProfitShare = profit * cfg.FreelanceProfitShare
	}
	return p
}

// Result is the outcome of the fixed-point iteration.
type Result struct {
	Pay        Pay
	Profit     float64 // preliminary profit minus pay
	Iterations int
	Converged  bool
}

// Resolve finds pay such that pay == PayFor(preliminary - pay) by repeated
// substitution, starting from zero pay. It stops once the profit estimate
// moves by less than the tolerance, or at MaxIterations with Converged false
// and the last iterate kept.
func Resolve(cfg config.CollaboratorConfig, preliminary, projectRevenue float64, fullTime bool) Result {
	estimate := preliminary
	var res Result
	for i := 1; i <= cfg.MaxIterations; i++ {
		pay := PayFor(cfg, estimate, projectRevenue, fullTime)
		next := preliminary - pay.Total()
		res = Result{Pay: pay, Profit: next, Iterations: i}
		if math.Abs(next-estimate) < cfg.Tolerance {
			res.Converged = true
			return res
		}
		estimate = next
	}
	return res
}

// Status tracks the one-way freelance to full-time switch.
type Status struct {
	FullTime    bool
	SwitchMonth int
}

// Update switches to full-time once the rolling average profit of prior
// months reaches threshold*multiplier. It reports whether the switch happened now.
func (s *Status) Update(month int, priorRollingAvg, threshold, multiplier float64) bool {
	if s.FullTime {
		return false
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	if priorRollingAvg >= threshold*multiplier {
		s.FullTime = true
		s.SwitchMonth = month
		return true
	}
	return false
}

// RollingAverage returns the mean of the last window values, or 0 for none.
func RollingAverage(history []float64, window int) float64 {
	if len(history) == 0 || window < 1 {
		return 0
	}
	start := max(0, len(history)-window)
	var sum float64
	for _, v := range history[start:] {
		sum += v
	}
	return sum / float64(len(history)-start)
}
