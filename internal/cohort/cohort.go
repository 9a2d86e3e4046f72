// Package cohort tracks customers per tier with their tenure.
package cohort

import (
	"fmt"
	"math"
	"sort"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

// Random draws uniform values in [0, 1).
type Random interface {
	Float64() float64
}

// Cohort is one tier's customers. Ages are months since acquisition, 1-indexed.
type Cohort struct {
	Count int
	Ages  []int
}

// Check reports a count/ages mismatch.
func (c Cohort) Check() error {
	if c.Count != len(c.Ages) {
		return fmt.Errorf("cohort count %d != %d ages", c.Count, len(c.Ages))
	}
	return nil
}

// Book holds the cohorts for every tier.
type Book struct {
	cohorts [3]Cohort
}

// Cohort returns a copy of the tier's cohort.
func (b *Book) Cohort(t model.Tier) Cohort {
	c := b.cohorts[t]
	c.Ages = append([]int(nil), c.Ages...)
	return c
}

// Counts returns the customer count per tier.
func (b *Book) Counts() model.TierCounts {
	var out model.TierCounts
	for _, t := range model.Tiers {
		out[t] = b.cohorts[t].Count
	}
	return out
}

// AgeLengths returns len(ages) per tier.
func (b *Book) AgeLengths() model.TierCounts {
	var out model.TierCounts
	for _, t := range model.Tiers {
		out[t] = len(b.cohorts[t].Ages)
	}
	return out
}

// Check verifies every tier's count/ages invariant.
func (b *Book) Check() error {
	for _, t := range model.Tiers {
		if err := b.cohorts[t].Check(); err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
	}
	return nil
}

// MonthlyChurnRate converts the annual phase rate for a customer age to a monthly probability.
func MonthlyChurnRate(cfg config.ChurnConfig, t model.Tier, age int) float64 {
	if age <= cfg.EarlyMonths {
		return cfg.Early.Of(t) / 12
	}
	return cfg.Late.Of(t) / 12
}

// ApplyChurn runs one Bernoulli trial per customer, removes churned entries
// and ages survivors by one month. reduction scales every probability by
// (1 - reduction).
func (b *Book) ApplyChurn(cfg config.ChurnConfig, reduction float64, rng Random) model.TierCounts {
	var churned model.TierCounts
	for _, t := range model.Tiers {
		c := &b.cohorts[t]
		survivors := c.Ages[:0]
		for _, age := range c.Ages {
			p := MonthlyChurnRate(cfg, t, age) * (1 - reduction)
			if rng.Float64() < p {
				churned[t]++
				continue
			}
			survivors = append(survivors, age+1)
		}
		c.Ages = survivors
		c.Count = len(survivors)
	}
	return churned
}

// Upgrades counts customers moved between tiers in one month.
type Upgrades struct {
	BasicToPro      int
	ProToEnterprise int
}

// ApplyUpgrades moves floor(count*rate) customers up one tier, basic first,
// then pro including the customers who just arrived. The oldest customers
// move first; ties keep their original order.
func (b *Book) ApplyUpgrades(cfg config.UpgradeConfig) Upgrades {
	var u Upgrades
	u.BasicToPro = b.move(model.Basic, model.Pro, cfg.BasicToPro)
	u.ProToEnterprise = b.move(model.Pro, model.Enterprise, cfg.ProToEnterprise)
	return u
}

func (b *Book) move(from, to model.Tier, rate float64) int {
	src := &b.cohorts[from]
	n := int(math.Floor(float64(src.Count) * rate))
	if n <= 0 {
		return 0
	}

	sort.SliceStable(src.Ages, func(i, j int) bool {
		return src.Ages[i] > src.Ages[j]
	})
	movers := append([]int(nil), src.Ages[:n]...)
	src.Ages = append(src.Ages[:0], src.Ages[n:]...)
	src.Count -= n

	dst := &b.cohorts[to]
	dst.Ages = append(dst.Ages, movers...)
	dst.Count += n
	return n
}

// Add appends age-1 customers per tier.
func (b *Book) Add(newByTier model.TierCounts) {
	for _, t := range model.Tiers {
		c := &b.cohorts[t]
		for i := 0; i < newByTier[t]; i++ {
			c.Ages = append(c.Ages, 1)
		}
		c.Count += newByTier[t]
	}
}
