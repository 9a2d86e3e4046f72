package compensation

import (
	"math"

	"github.com/theirongolddev/runway/internal/config"
)

// FounderSupport maps post-compensation profit to a support payment: zero
// below the minimum profit, otherwise the support of the highest breakpoint
// at or below profit (MinSupport when none qualifies), capped at MaxSupport.
func FounderSupport(cfg config.FounderConfig, profit float64) float64 {
	if profit < cfg.MinProfit {
		return 0
	}
	support := cfg.MinSupport
	for _, bp := range cfg.Breakpoints {
		if profit >= bp.Profit {
			support = bp.Support
			continue
		}
		break
	}
	return math.Min(support, cfg.MaxSupport)
}
