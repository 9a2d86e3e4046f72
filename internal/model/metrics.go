package model

import "time"

// QuarterStats holds a calendar quarter rolled up from monthly records.
type QuarterStats struct {
	Label        string // e.g. 2026-Q1
	Start        time.Time
	Months       int
	Revenue      float64
	Costs        float64
	Profit       float64
	NewCustomers int
	Churned      int
	EndCustomers int
	NewWebsites  int
}

// ChannelStats holds aggregated metrics for one marketing channel.
type ChannelStats struct {
	Channel      string
	Spend        float64
	Customers    int
	AvgCAC       float64 // spend per acquired customer, 0 when none
	SharePercent float64 // share of paid customers
}

// TierStats holds end-of-horizon metrics for one subscription tier.
type TierStats struct {
	Tier         Tier
	Customers    int
	Acquired     int
	Churned      int
	Websites     int
	SharePercent float64
}

// CostLine is one cost category summed over a period.
type CostLine struct {
	Category     string
	Amount       float64
	SharePercent float64
}
