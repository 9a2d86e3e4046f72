package model

import "time"

// Deployment categories drawn against the loan's remaining funds, in draw order.
const (
	DrawLegalSetup          = "legal_setup"
	DrawInfrastructureSetup = "infrastructure_setup"
	DrawMarketingBoost      = "marketing_boost"
	DrawFounderSupport      = "founder_support"
	DrawOperatingDeficit    = "operating_deficit"
)

// Staffing actions recorded per month.
const (
	StaffHold          = "hold"
	StaffHire          = "hire"
	StaffEmergencyHire = "emergency_hire"
	StaffFire          = "fire"
)

// Draw is one loan deployment line item.
type Draw struct {
	Category string
	Amount   float64
}

// ChannelResult holds one marketing channel's month.
type ChannelResult struct {
	Name      string
	Spend     float64
	CAC       float64
	Customers int
}

// MonthlyRecord is the immutable output for one simulated month.
type MonthlyRecord struct {
	Month int
	Date  time.Time

	// Customers
	Customers          TierCounts
	CohortAges         TierCounts // len(ages) per tier, must equal Customers
	TotalCustomers     int
	NewCustomers       TierCounts
	NewCustomersTotal  int
	Churned            TierCounts
	ChurnedTotal       int
	UpgradesBasicToPro int
	UpgradesProToEnt   int
	MarketingCustomers int
	OrganicCustomers   int
	Channels           []ChannelResult

	// Websites
	NewWebsites      TierCounts
	NewWebsitesTotal int
	Websites         TierCounts
	WebsitesTotal    int

	// Team
	RequiredDesigners int
	Designers         int
	Utilization       float64
	StaffingAction    string
	FullTime          bool
	Employees         int

	// Revenue
	SaaSRevenue         float64
	WebsiteRevenueGross float64
	Cancellations       float64
	WebsiteRevenue      float64
	TotalRevenue        float64

	// Costs
	VariableCosts       float64
	ServerCosts         float64
	MarketingSpend      float64
	DesignerCosts       float64
	FixedCosts          float64
	InfrastructureCosts float64
	LLMCosts            float64
	PerEmployeeCosts    float64
	LegalCosts          float64
	Compensation        float64
	CompSalary          float64
	CompProfitShare     float64
	CompProjectShare    float64
	CompIterations      int
	CompConverged       bool
	FounderSupport      float64
	LoanPayment         float64
	TotalCosts          float64

	// Profit and cash
	ProfitBeforeComp   float64
	Profit             float64
	CumulativeProfit   float64
	RollingAvgProfit   float64
	NetCashFlow        float64
	CashFlowMargin     float64 // percent
	CumulativeCashFlow float64
	BankBalance        float64

	// Reinvestment
	ReinvestmentTriggered bool
	MarketingReinvestment float64
	PersonnelFund         float64
	PersonnelHire         bool
	TotalReinvested       float64

	// Loan
	LoanBalance        float64
	LoanMarketingBoost float64
	LoanDeployed       float64
	TotalInvested      float64
	RemainingFunds     float64
	DeploymentRate     float64 // percent of net amount deployed
	Draws              []Draw
}

// Label returns the month as YYYY-MM.
func (r MonthlyRecord) Label() string {
	return r.Date.Format("2006-01")
}

// ChannelSpend returns the spend for a channel, or 0.
func (r MonthlyRecord) ChannelSpend(name string) float64 {
	for _, c := range r.Channels {
		if c.Name == name {
			return c.Spend
		}
	}
	return 0
}

// DrawAmount returns the amount drawn for a deployment category this month.
func (r MonthlyRecord) DrawAmount(category string) float64 {
	var total float64
	for _, d := range r.Draws {
		if d.Category == category {
			total += d.Amount
		}
	}
	return total
}
