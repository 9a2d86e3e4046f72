// Package reinvest decides margin-triggered reinvestment from last month's
// cash flow.
package reinvest

import (
	"math"

	"github.com/theirongolddev/runway/internal/config"
)

// Fund is the controller's state carried between months. TotalReinvested
// counts marketing boosts and gross additions to the personnel fund.
type Fund struct {
	Personnel       float64
	TotalReinvested float64
}

// Decision is one month's reinvestment outcome.
type Decision struct {
	Triggered bool
	Marketing float64 // extra marketing spend this month
	Personnel float64 // added to the personnel fund
	Hire      bool    // fund crossed the hiring threshold
}

// Decide evaluates the previous month's net cash flow and margin (percent).
// The fund is updated in place.
func (f *Fund) Decide(cfg config.ReinvestmentConfig, prevCashFlow, prevMargin float64) Decision {
	var d Decision
	if prevMargin < cfg.MarginThreshold || prevCashFlow <= 0 {
		return d
	}
	excess := prevCashFlow * cfg.Fraction
	if excess < cfg.MinTrigger {
		return d
	}

	d.Triggered = true
	d.Marketing = math.Min(excess*cfg.MarketingShare, cfg.MaxMarketingBoost)
	f.TotalReinvested += d.Marketing

	// A full fund takes no addition and triggers no hire.
	if f.Personnel >= cfg.MaxPersonnelFund {
		return d
	}
	d.Personnel = math.Min(excess*cfg.PersonnelShare, cfg.MaxPersonnelFund-f.Personnel)
	f.Personnel += d.Personnel
	f.TotalReinvested += d.Personnel

	if cfg.PersonnelThreshold > 0 && f.Personnel >= cfg.PersonnelThreshold {
		d.Hire = true
		f.Personnel -= cfg.PersonnelThreshold
	}
	return d
}
