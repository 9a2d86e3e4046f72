package pipeline

import (
	"sort"

	"github.com/theirongolddev/runway/internal/model"
)

// Cost categories reported by AggregateCostBreakdown.
const (
	CostVariable       = "variable"
	CostMarketing      = "marketing"
	CostDesigners      = "designers"
	CostFixed          = "fixed"
	CostInfrastructure = "infrastructure"
	CostLLM            = "llm"
	CostPerEmployee    = "per_employee"
	CostLegal          = "legal"
	CostCompensation   = "collaborator"
	CostFounder        = "founder_support"
	CostLoan           = "loan_payment"
)

// CostTotals holds aggregate costs split by category.
type CostTotals struct {
	Variable       float64
	Server         float64 // included in Variable
	Marketing      float64
	Designers      float64
	Fixed          float64
	Infrastructure float64
	LLM            float64
	PerEmployee    float64
	Legal          float64
	Compensation   float64
	FounderSupport float64
	LoanPayments   float64
	Total          float64
}

// AggregateCostBreakdown sums costs across records and returns the totals
// plus one line per category sorted by amount descending.
func AggregateCostBreakdown(records []model.MonthlyRecord) (CostTotals, []model.CostLine) {
	var t CostTotals
	for _, r := range records {
		t.Variable += r.VariableCosts
		t.Server += r.ServerCosts
		t.Marketing += r.MarketingSpend
		t.Designers += r.DesignerCosts
		t.Fixed += r.FixedCosts
		t.Infrastructure += r.InfrastructureCosts
		t.LLM += r.LLMCosts
		t.PerEmployee += r.PerEmployeeCosts
		t.Legal += r.LegalCosts
		t.Compensation += r.Compensation
		t.FounderSupport += r.FounderSupport
		t.LoanPayments += r.LoanPayment
		t.Total += r.TotalCosts
	}

	lines := []model.CostLine{
		{Category: CostVariable, Amount: t.Variable},
		{Category: CostMarketing, Amount: t.Marketing},
		{Category: CostDesigners, Amount: t.Designers},
		{Category: CostFixed, Amount: t.Fixed},
		{Category: CostInfrastructure, Amount: t.Infrastructure},
		{Category: CostLLM, Amount: t.LLM},
		{Category: CostPerEmployee, Amount: t.PerEmployee},
		{Category: CostLegal, Amount: t.Legal},
		{Category: CostCompensation, Amount: t.Compensation},
		{Category: CostFounder, Amount: t.FounderSupport},
		{Category: CostLoan, Amount: t.LoanPayments},
	}
	if t.Total > 0 {
		for i := range lines {
			lines[i].SharePercent = lines[i].Amount / t.Total * 100
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Amount > lines[j].Amount
	})
	return t, lines
}
