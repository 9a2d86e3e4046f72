package cohort

import (
	"math"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

// Websites tracks cumulative website package purchases per tier.
type Websites struct {
	cumulative model.TierCounts
}

// Cumulative returns the running total per tier.
func (w *Websites) Cumulative() model.TierCounts {
	return w.cumulative
}

// ConversionRates returns the early or late conversion table for a month.
func ConversionRates(cfg config.WebsiteConfig, month int) config.TierValues {
	if month <= cfg.EarlyMonths {
		return cfg.Early
	}
	return cfg.Late
}

// Attach applies the conversion rate to the whole tier population, rounding
// halves to even, and returns the new attachments: the target above the
// existing cumulative count.
func (w *Websites) Attach(counts model.TierCounts, rates config.TierValues) model.TierCounts {
	var added model.TierCounts
	for _, t := range model.Tiers {
		target := int(math.RoundToEven(float64(counts[t]) * rates.Of(t)))
		if n := target - w.cumulative[t]; n > 0 {
			added[t] = n
			w.cumulative[t] += n
		}
	}
	return added
}
