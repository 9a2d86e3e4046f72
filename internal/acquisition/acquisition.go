// Package acquisition turns marketing spend and organic reach into new customers.
package acquisition

import (
	"math"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

// CAC returns the cost per customer at a spend level. The highest tier at or
// below spend applies; spend below the lowest tier uses the lowest tier.
// Tiers must be sorted by ascending spend.
func CAC(curve []config.CACTier, spend float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	selected := curve[0].CAC
	for _, tier := range curve {
		if spend >= tier.Spend {
			selected = tier.CAC
			continue
		}
		break
	}
	return selected
}

// NewCustomers returns floor(spend / CAC(spend)).
func NewCustomers(curve []config.CACTier, spend float64) int {
	if spend <= 0 {
		return 0
	}
	cac := CAC(curve, spend)
	if cac <= 0 {
		return 0
	}
	return int(math.Floor(spend / cac))
}

// Organic returns the scheduled organic customers for a 1-indexed month,
// boosted by floor(base * boost).
func Organic(schedule []int, month int, boost float64) int {
	if month < 1 || month > len(schedule) {
		return 0
	}
	base := schedule[month-1]
	return base + int(math.Floor(float64(base)*boost))
}

// Distribute splits paid customers across tiers by share, flooring each
// tier. Organic customers enter at the basic tier.
func Distribute(paid, organic int, shares config.TierValues) model.TierCounts {
	var out model.TierCounts
	for _, t := range model.Tiers {
		out[t] = int(math.Floor(float64(paid) * shares.Of(t)))
	}
	out[model.Basic] += organic
	return out
}

// Spend is one channel's spend for a month split by funding source.
type Spend struct {
	Base         float64
	LoanBoost    float64
	Reinvestment float64
}

// Total returns all spend on the channel.
func (s Spend) Total() float64 {
	return s.Base + s.LoanBoost + s.Reinvestment
}

// ChannelMonth resolves a channel's customers for the month. efficiency
// discounts the loan-funded portion before the CAC curve is applied; the
// recorded spend is the full amount.
func ChannelMonth(ch config.Channel, s Spend, efficiency float64) model.ChannelResult {
	total := s.Total()
	res := model.ChannelResult{Name: ch.Name, Spend: total, CAC: CAC(ch.CAC, total)}
	if total <= 0 || res.CAC <= 0 {
		return res
	}
	effective := s.Base + s.LoanBoost*efficiency + s.Reinvestment
	res.Customers = int(math.Floor(effective / res.CAC))
	return res
}

// BoostEfficiency returns the blended marginal efficiency of an extra monthly
// spend across the efficiency bands. Spend past the last band uses the lowest
// efficiency.
func BoostEfficiency(bands []config.EfficiencyTier, spend float64) float64 {
	if spend <= 0 {
		return 0
	}
	if len(bands) == 0 {
		return 1
	}

	var weighted, prev float64
	remaining := spend
	lowest := bands[0].Efficiency
	for _, b := range bands {
		lowest = math.Min(lowest, b.Efficiency)
		if remaining <= 0 {
			continue
		}
		chunk := math.Min(remaining, b.UpTo-prev)
		weighted += chunk * b.Efficiency
		remaining -= chunk
		prev = b.UpTo
	}
	if remaining > 0 {
		weighted += remaining * lowest
	}
	return weighted / spend
}
