package model

// Summary holds aggregates derived from a full run.
type Summary struct {
	Months int

	FinalCustomers      TierCounts
	FinalTotalCustomers int
	FinalWebsites       int
	FinalDesigners      int
	FinalUtilization    float64
	FinalFullTime       bool
	FinalRevenue        float64
	FinalCosts          float64
	FinalProfit         float64
	FinalMargin         float64

	TotalSaaSRevenue    float64
	TotalWebsiteRevenue float64
	TotalRevenue        float64
	TotalCosts          float64
	TotalProfit         float64
	TotalCompensation   float64
	TotalFounderSupport float64
	TotalDesignerCosts  float64
	TotalMarketingSpend float64
	TotalLoanPayments   float64

	CumulativeProfit   float64
	CumulativeCashFlow float64
	LowestCashPosition float64
	FinalBankBalance   float64

	MarketingCustomers int
	OrganicCustomers   int
	AcquiredCustomers  int
	ChurnedCustomers   int
	AvgCAC             float64

	WebsitesCreated int
	AvgDesigners    float64
	PeakDesigners   int

	PositiveMonths int
	NegativeMonths int
	AvgMargin      float64

	FreelanceMonths int
	FullTimeMonths  int
	FullTimeMonth   int // 0 when never

	SupportMonths int
	AvgSupport    float64

	ReinvestmentMonths    int
	MarketingReinvestment float64
	TotalReinvested       float64

	BreakEvenMonth        int // first month cumulative profit > 0, 0 when never
	CashFlowPositiveMonth int // first month with positive net cash flow
	SupportStartMonth     int

	LoanAmount         float64
	NetProfitAfterLoan float64
	ROI                float64 // percent, 0 without a loan
	TotalInvested      float64
	RemainingFunds     float64
}

// Outcome is one scenario/strategy pair from a sweep.
type Outcome struct {
	Scenario string
	Strategy string
	Summary  Summary
	Err      error
}

// Severity classifies a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation is one finding from post-hoc validation.
type Violation struct {
	Month    int // 0 for run-level findings
	Check    string
	Severity Severity
	Message  string
}
