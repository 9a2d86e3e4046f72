package config

import "github.com/theirongolddev/runway/internal/model"

// TierValues is a per-tier float table.
type TierValues = model.TierValues

// Default returns the baseline business plan: a 12-month horizon starting
// January 2026 on the actual 12k loan with the realistic allocation.
func Default() Config {
	return Config{
		General: GeneralConfig{
			Months:        12,
			StartMonth:    "2026-01",
			Seed:          42,
			RollingWindow: 3,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Pricing: PricingConfig{
			Monthly: TierValues{Basic: 35.99, Pro: 119.99, Enterprise: 259.99},
			Website: TierValues{Basic: 250, Pro: 500, Enterprise: 1000},
		},
		Customers: CustomerConfig{
			Distribution: TierValues{Basic: 0.55, Pro: 0.35, Enterprise: 0.10},
			Churn: ChurnConfig{
				EarlyMonths: 3,
				Early:       TierValues{Basic: 0.08, Pro: 0.06, Enterprise: 0.04},
				Late:        TierValues{Basic: 0.04, Pro: 0.03, Enterprise: 0.015},
			},
			Upgrades: UpgradeConfig{BasicToPro: 0.01, ProToEnterprise: 0.005},
			Websites: WebsiteConfig{
				EarlyMonths:      6,
				Early:            TierValues{Basic: 0.7, Pro: 0.7, Enterprise: 0.4},
				Late:             TierValues{Basic: 0.4, Pro: 0.5, Enterprise: 0.2},
				CancellationRate: 0.05,
			},
		},
		Marketing: MarketingConfig{
			Channels: []Channel{
				{
					Name:       "google",
					BoostShare: 0.6,
					CAC: []CACTier{
						{Spend: 500, CAC: 50},
						{Spend: 1000, CAC: 57.5},
						{Spend: 1500, CAC: 65},
						{Spend: 2000, CAC: 72.5},
					},
					Schedule: []float64{0, 0, 500, 500, 500, 1000, 1500, 2000, 2000, 2000, 2000, 2000},
				},
				{
					Name:       "meta",
					BoostShare: 0.4,
					CAC: []CACTier{
						{Spend: 200, CAC: 60},
						{Spend: 400, CAC: 64},
						{Spend: 600, CAC: 68},
						{Spend: 800, CAC: 72},
						{Spend: 1000, CAC: 76},
					},
					Schedule: []float64{0, 0, 0, 0, 200, 400, 600, 800, 1000, 1000, 1000, 1000},
				},
			},
			Organic: []int{1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2},
			BoostEfficiency: []EfficiencyTier{
				{UpTo: 500, Efficiency: 1.0},
				{UpTo: 1000, Efficiency: 0.9},
				{UpTo: 2000, Efficiency: 0.8},
				{UpTo: 3000, Efficiency: 0.7},
				{UpTo: 5000, Efficiency: 0.6},
				{UpTo: 10000, Efficiency: 0.5},
			},
		},
		Staffing: StaffingConfig{
			Capacity:        TierValues{Basic: 10, Pro: 4, Enterprise: 2},
			Salary:          1750,
			FirstHire:       0.25,
			SubsequentHire:  0.75,
			Fire:            0.3,
			Emergency:       1.0,
			Buffer:          0.1,
			FireAfterMonths: 2,
		},
		Collaborator: CollaboratorConfig{
			FreelanceProfitShare: 0.20,
			ProjectRevenueShare:  0.20,
			FullTimeProfitShare:  0.03,
			FullTimeSalary:       1500,
			FullTimeThreshold:    8000,
			ShareThreshold:       2000,
			MaxIterations:        10,
			Tolerance:            1.0,
		},
		Founder: FounderConfig{
			MinProfit:  2500,
			MinSupport: 500,
			MaxSupport: 20000,
			Breakpoints: []Breakpoint{
				{Profit: 2000, Support: 500},
				{Profit: 5000, Support: 1000},
				{Profit: 8000, Support: 2000},
				{Profit: 12000, Support: 3400},
				{Profit: 15000, Support: 4800},
			},
		},
		Reinvestment: ReinvestmentConfig{
			MarginThreshold:    30.0,
			Fraction:           0.6,
			MarketingShare:     0.5,
			PersonnelShare:     0.5,
			MinTrigger:         500,
			MaxMarketingBoost:  3000,
			PersonnelThreshold: 2000,
			MaxPersonnelFund:   10000,
		},
		Costs: CostConfig{
			Fixed:           []NamedCost{{Name: "insurance", Amount: 35}},
			PerEmployee:     10.20,
			VariableMonthly: TierValues{Basic: 0.18, Pro: 0.45, Enterprise: 1.20},
			VariableYearly:  TierValues{Basic: 0, Pro: 15, Enterprise: 75},
			ServerTiers: []ServerTier{
				{Customers: 10, Cost: 10},
				{Customers: 50, Cost: 20},
				{Customers: 100, Cost: 40},
				{Customers: 200, Cost: 70},
				{Customers: 500, Cost: 120},
			},
			LLMBase: 43,
			LLMTiers: []LLMTier{
				{Above: 0, Cost: 110},
				{Above: 5000, Cost: 150},
				{Above: 15000, Cost: 300},
			},
			Legal: []LegalCost{
				{Month: 1, Name: "company formation", Amount: 1000},
				{Month: 1, Name: "terms and privacy", Amount: 300},
				{Month: 1, Name: "trademark", Amount: 800},
			},
		},
		Loan: LoanConfig{
			Scenario:     "actual_loan",
			Strategy:     "realistic_12k",
			SetupFeeRate: 0.02,
			Scenarios:    DefaultScenarios(),
			Strategies:   DefaultStrategies(),
			Infrastructure: []InfrastructureTier{
				{Name: "better_tools", Threshold: 5000, MonthlyCost: 200, SetupCost: 5000, ChurnReduction: 0.05},
				{Name: "premium", Threshold: 10000, MonthlyCost: 500, SetupCost: 10000, ChurnReduction: 0.10, VariableCostReduction: 0.20},
			},
			Team: []TeamTier{
				{Name: "collaborator_support", Threshold: 10000, FullTimeThresholdMultiplier: 0.7},
				{Name: "capacity_expansion", Threshold: 15000, CapacityBoost: 0.20, FullTimeThresholdMultiplier: 0.7},
			},
			Founder: []FounderTier{
				{Name: "founder_focus", Threshold: 8000, OrganicBoost: 0.20},
			},
		},
		Validation: ValidationLimits{
			MaxDesigners:      50,
			MinMonthlyProfit:  -20000,
			MaxMarketingSpend: 10000,
			MaxOverloadMonths: 2,
		},
	}
}
