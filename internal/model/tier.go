// Package model defines the plain data types shared across the forecast.
package model

// Tier identifies a subscription tier.
type Tier int

const (
	Basic Tier = iota
	Pro
	Enterprise
)

// Tiers lists every tier in upgrade order.
var Tiers = [...]Tier{Basic, Pro, Enterprise}

func (t Tier) String() string {
	switch t {
	case Basic:
		return "basic"
	case Pro:
		return "pro"
	case Enterprise:
		return "enterprise"
	}
	return "unknown"
}

// TierCounts holds an integer per tier.
type TierCounts [3]int

// Total returns the sum across tiers.
func (c TierCounts) Total() int {
	return c[Basic] + c[Pro] + c[Enterprise]
}

// Add returns the element-wise sum.
func (c TierCounts) Add(o TierCounts) TierCounts {
	for i := range c {
		c[i] += o[i]
	}
	return c
}

// TierValues holds a float per tier. Used for prices, rates, and capacities.
type TierValues struct {
	Basic      float64 `toml:"basic" yaml:"basic"`
	Pro        float64 `toml:"pro" yaml:"pro"`
	Enterprise float64 `toml:"enterprise" yaml:"enterprise"`
}

// Of returns the value for a tier.
func (v TierValues) Of(t Tier) float64 {
	switch t {
	case Basic:
		return v.Basic
	case Pro:
		return v.Pro
	case Enterprise:
		return v.Enterprise
	}
	return 0
}

// Sum returns Basic + Pro + Enterprise.
func (v TierValues) Sum() float64 {
	return v.Basic + v.Pro + v.Enterprise
}
