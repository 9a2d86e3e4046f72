package report

import "github.com/theirongolddev/runway/internal/model"

func customerGrowth() Section {
	return Section{
		Name: "customer_growth.csv",
		Header: []string{"month", "date", "basic", "pro", "enterprise", "total_customers",
			"new_customers", "churned", "upgrades_basic_to_pro", "upgrades_pro_to_enterprise"},
		Row: func(r model.MonthlyRecord) []string {
			return []string{
				itoa(r.Month), r.Label(),
				itoa(r.Customers[model.Basic]), itoa(r.Customers[model.Pro]), itoa(r.Customers[model.Enterprise]),
				itoa(r.TotalCustomers), itoa(r.NewCustomersTotal), itoa(r.ChurnedTotal),
				itoa(r.UpgradesBasicToPro), itoa(r.UpgradesProToEnt),
			}
		},
	}
}

func websiteProduction() Section {
	return Section{
		Name: "website_production.csv",
		Header: []string{"month", "date", "new_basic", "new_pro", "new_enterprise", "new_total",
			"cumulative_websites", "gross_revenue", "cancellations", "net_revenue"},
		Row: func(r model.MonthlyRecord) []string {
			return []string{
				itoa(r.Month), r.Label(),
				itoa(r.NewWebsites[model.Basic]), itoa(r.NewWebsites[model.Pro]), itoa(r.NewWebsites[model.Enterprise]),
				itoa(r.NewWebsitesTotal), itoa(r.WebsitesTotal),
				Money(r.WebsiteRevenueGross), Money(r.Cancellations), Money(r.WebsiteRevenue),
			}
		},
	}
}

func financialPerformance() Section {
	return Section{
		Name: "financial_performance.csv",
		Header: []string{"month", "date", "saas_revenue", "website_revenue", "total_revenue",
			"total_costs", "profit_before_compensation", "profit", "cumulative_profit", "rolling_avg_profit"},
		Row: func(r model.MonthlyRecord) []string {
			return []string{
				itoa(r.Month), r.Label(),
				Money(r.SaaSRevenue), Money(r.WebsiteRevenue), Money(r.TotalRevenue),
				Money(r.TotalCosts), Money(r.ProfitBeforeComp), Money(r.Profit),
				Money(r.CumulativeProfit), Money(r.RollingAvgProfit),
			}
		},
	}
}

func teamOperations() Section {
	return Section{
		Name: "team_operations.csv",
		Header: []string{"month", "date", "required_designers", "designers", "utilization_pct",
			"staffing_action", "designer_costs", "collaborator_fulltime", "collaborator_pay",
			"compensation_iterations", "founder_support", "employees"},
		Row: func(r model.MonthlyRecord) []string {
			return []string{
				itoa(r.Month), r.Label(),
				itoa(r.RequiredDesigners), itoa(r.Designers), Percent(r.Utilization * 100),
				r.StaffingAction, Money(r.DesignerCosts), flag(r.FullTime), Money(r.Compensation),
				itoa(r.CompIterations), Money(r.FounderSupport), itoa(r.Employees),
			}
		},
	}
}

func marketingAcquisition(channels []string) Section {
	header := []string{"month", "date"}
	for _, c := range channels {
		header = append(header, c+"_spend", c+"_cac", c+"_customers")
	}
	header = append(header, "total_spend", "loan_boost", "reinvestment_boost",
		"marketing_customers", "organic_customers")

	return Section{
		Name:   "marketing_acquisition.csv",
		Header: header,
		Row: func(r model.MonthlyRecord) []string {
			row := []string{itoa(r.Month), r.Label()}
			for _, name := range channels {
				var cr model.ChannelResult
				for _, c := range r.Channels {
					if c.Name == name {
						cr = c
						break
					}
				}
				row = append(row, Money(cr.Spend), Money(cr.CAC), itoa(cr.Customers))
			}
			return append(row,
				Money(r.MarketingSpend), Money(r.LoanMarketingBoost), Money(r.MarketingReinvestment),
				itoa(r.MarketingCustomers), itoa(r.OrganicCustomers))
		},
	}
}

func cashFlow() Section {
	return Section{
		Name: "cash_flow.csv",
		Header: []string{"month", "date", "revenue", "costs", "net_cash_flow", "cash_flow_margin_pct",
			"cumulative_cash_flow", "bank_balance"},
		Row: func(r model.MonthlyRecord) []string {
			return []string{
				itoa(r.Month), r.Label(),
				Money(r.TotalRevenue), Money(r.TotalCosts), Money(r.NetCashFlow), Percent(r.CashFlowMargin),
				Money(r.CumulativeCashFlow), Money(r.BankBalance),
			}
		},
	}
}

func reinvestmentAnalysis() Section {
	return Section{
		Name: "reinvestment_analysis.csv",
		Header: []string{"month", "date", "triggered", "marketing_reinvestment", "personnel_fund",
			"personnel_hire", "total_reinvested"},
		Row: func(r model.MonthlyRecord) []string {
			return []string{
				itoa(r.Month), r.Label(),
				flag(r.ReinvestmentTriggered), Money(r.MarketingReinvestment), Money(r.PersonnelFund),
				flag(r.PersonnelHire), Money(r.TotalReinvested),
			}
		},
	}
}

func loanImpact() Section {
	return Section{
		Name: "loan_impact.csv",
		Header: []string{"month", "date", "loan_payment", "loan_balance", "marketing_boost",
			"deployed_this_month", "total_invested", "remaining_funds", "deployment_rate_pct"},
		Row: func(r model.MonthlyRecord) []string {
			return []string{
				itoa(r.Month), r.Label(),
				Money(r.LoanPayment), Money(r.LoanBalance), Money(r.LoanMarketingBoost),
				Money(r.LoanDeployed), Money(r.TotalInvested), Money(r.RemainingFunds), Percent(r.DeploymentRate),
			}
		},
	}
}

var drawOrder = []string{
	model.DrawLegalSetup,
	model.DrawInfrastructureSetup,
	model.DrawMarketingBoost,
	model.DrawFounderSupport,
	model.DrawOperatingDeficit,
}

func loanInvestments() Section {
	header := append([]string{"month", "date"}, drawOrder...)
	header = append(header, "total")
	return Section{
		Name:   "loan_investments.csv",
		Header: header,
		Row: func(r model.MonthlyRecord) []string {
			row := []string{itoa(r.Month), r.Label()}
			for _, cat := range drawOrder {
				row = append(row, Money(r.DrawAmount(cat)))
			}
			return append(row, Money(r.LoanDeployed))
		},
	}
}

func ledger(channels []string) Section {
	customers := customerGrowth()
	websites := websiteProduction()
	finance := financialPerformance()
	team := teamOperations()
	marketing := marketingAcquisition(channels)
	cash := cashFlow()
	reinvest := reinvestmentAnalysis()
	loan := loanImpact()
	draws := loanInvestments()

	parts := []Section{customers, websites, finance, team, marketing, cash, reinvest, loan, draws}
	header := []string{"month", "date"}
	for _, p := range parts {
		header = append(header, p.Header[2:]...)
	}
	header = append(header, "variable_costs", "server_costs", "fixed_costs", "infrastructure_costs",
		"llm_costs", "per_employee_costs", "legal_costs")

	return Section{
		Name:   "monthly_ledger.csv",
		Header: header,
		Row: func(r model.MonthlyRecord) []string {
			row := []string{itoa(r.Month), r.Label()}
			for _, p := range parts {
				row = append(row, p.Row(r)[2:]...)
			}
			return append(row,
				Money(r.VariableCosts), Money(r.ServerCosts), Money(r.FixedCosts), Money(r.InfrastructureCosts),
				Money(r.LLMCosts), Money(r.PerEmployeeCosts), Money(r.LegalCosts))
		},
	}
}
