package model

// RunwayStats describes how long the cash position lasts at the recent burn.
type RunwayStats struct {
	BankBalance     float64
	AvgNetCashFlow  float64 // over the trailing window
	MonthsOfRunway  float64 // -1 when cash flow is not negative
	ProjectedMonths int     // horizon length the figures come from
	LowestBalance   float64
	LowestMonth     int
}
