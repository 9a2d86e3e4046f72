// Package costs prices a month's operating costs.
package costs

import (
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

// Variable holds customer-driven costs.
type Variable struct {
	PerCustomer float64
	Server      float64
	Total       float64 // after any reduction
}

// VariableCosts prices per-customer service costs plus the server tier,
// then applies the reduction (e.g. 0.2 for premium infrastructure).
func VariableCosts(cfg config.CostConfig, customers model.TierCounts, reduction float64) Variable {
	var v Variable
	for _, t := range model.Tiers {
		unit := cfg.VariableMonthly.Of(t) + cfg.VariableYearly.Of(t)/12
		v.PerCustomer += float64(customers[t]) * unit
	}
	v.Server = ServerCost(cfg.ServerTiers, customers.Total())
	v.Total = (v.PerCustomer + v.Server) * (1 - reduction)
	return v
}

// ServerCost returns the cost of the highest tier at or below the customer
// count. Tiers must be sorted ascending; no tier applies below the first.
func ServerCost(tiers []config.ServerTier, customers int) float64 {
	var cost float64
	for _, t := range tiers {
		if customers < t.Customers {
			break
		}
		cost = t.Cost
	}
	return cost
}

// LLMCost picks the tier for the rolling average profit. A tier applies when
// profit is strictly above its floor; otherwise the base cost applies.
func LLMCost(cfg config.CostConfig, rollingAvgProfit float64) float64 {
	cost := cfg.LLMBase
	for _, t := range cfg.LLMTiers {
		if rollingAvgProfit > t.Above {
			cost = t.Cost
		}
	}
	return cost
}

// Fixed returns the recurring named costs.
func Fixed(cfg config.CostConfig) float64 {
	var sum float64
	for _, c := range cfg.Fixed {
		sum += c.Amount
	}
	return sum
}

// Legal returns the one-off costs scheduled for a 1-indexed month.
func Legal(cfg config.CostConfig, month int) float64 {
	var sum float64
	for _, c := range cfg.Legal {
		if c.Month == month {
			sum += c.Amount
		}
	}
	return sum
}

// Employees counts the founder, a full-time collaborator and designers.
func Employees(fullTime bool, designers int) int {
	n := 1 + designers
	if fullTime {
		n++
	}
	return n
}

// Base holds the month's non-variable costs.
type Base struct {
	Fixed          float64
	Marketing      float64
	Designers      float64
	Infrastructure float64
	LLM            float64
	PerEmployee    float64
	Legal          float64
}

// Total sums every base component.
func (b Base) Total() float64 {
	return b.Fixed + b.Marketing + b.Designers + b.Infrastructure + b.LLM + b.PerEmployee + b.Legal
}

// Inputs are the month's drivers of base costs.
type Inputs struct {
	Month            int
	Marketing        float64
	Designers        int
	DesignerSalary   float64
	FullTime         bool
	Infrastructure   float64 // monthly cost of the unlocked infrastructure tier
	RollingAvgProfit float64 // prior months only
}

// BaseCosts prices the month's base costs.
func BaseCosts(cfg config.CostConfig, in Inputs) Base {
	return Base{
		Fixed:          Fixed(cfg),
		Marketing:      in.Marketing,
		Designers:      float64(in.Designers) * in.DesignerSalary,
		Infrastructure: in.Infrastructure,
		LLM:            LLMCost(cfg, in.RollingAvgProfit),
		PerEmployee:    float64(Employees(in.FullTime, in.Designers)) * cfg.PerEmployee,
		Legal:          Legal(cfg, in.Month),
	}
}
