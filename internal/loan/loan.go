// Package loan implements amortization, allocation of the net loan amount,
// and the deployment ledger.
package loan

import (
	"math"

	"github.com/theirongolddev/runway/internal/config"
)

// SetupFee returns the fee withheld at disbursement.
func SetupFee(s config.LoanScenario, feeRate float64) float64 {
	return s.Amount * feeRate
}

// NetAmount returns the amount actually disbursed.
func NetAmount(s config.LoanScenario, feeRate float64) float64 {
	return s.Amount - SetupFee(s, feeRate)
}

func amortizingTerm(s config.LoanScenario) int {
	return s.TermMonths - s.InterestOnlyMonths
}

// MonthlyPayment returns the payment due in a 1-indexed month. Interest-only
// months pay interest on the full principal; afterwards the full principal
// amortizes over the rest of the term. A zero rate repays principal evenly.
func MonthlyPayment(s config.LoanScenario, month int) float64 {
	if s.Amount <= 0 || month < 1 || month > s.TermMonths {
		return 0
	}
	i := s.AnnualRate / 12
	if month <= s.InterestOnlyMonths {
		return s.Amount * i
	}
	n := amortizingTerm(s)
	if n <= 0 {
		return 0
	}
	if i == 0 {
		return s.Amount / float64(n)
	}
	growth := math.Pow(1+i, float64(n))
	return s.Amount * i * growth / (growth - 1)
}

// Balance returns the outstanding principal after monthsPaid payments.
func Balance(s config.LoanScenario, monthsPaid int) float64 {
	if s.Amount <= 0 || monthsPaid >= s.TermMonths {
		return 0
	}
	if monthsPaid <= s.InterestOnlyMonths {
		return s.Amount
	}
	n := amortizingTerm(s)
	k := monthsPaid - s.InterestOnlyMonths
	if n <= 0 || k >= n {
		return 0
	}
	i := s.AnnualRate / 12
	if i == 0 {
		return s.Amount * float64(n-k) / float64(n)
	}
	gn := math.Pow(1+i, float64(n))
	gk := math.Pow(1+i, float64(k))
	return s.Amount * (gn - gk) / (gn - 1)
}

// Installment is one row of an amortization schedule.
type Installment struct {
	Month     int
	Payment   float64
	Interest  float64
	Principal float64
	Balance   float64
}

// Schedule returns the full amortization table for the loan term.
func Schedule(s config.LoanScenario) []Installment {
	if s.Amount <= 0 || s.TermMonths <= 0 {
		return nil
	}
	rows := make([]Installment, 0, s.TermMonths)
	for m := 1; m <= s.TermMonths; m++ {
		opening := Balance(s, m-1)
		closing := Balance(s, m)
		rows = append(rows, Installment{
			Month:     m,
			Payment:   MonthlyPayment(s, m),
			Interest:  opening * s.AnnualRate / 12,
			Principal: opening - closing,
			Balance:   closing,
		})
	}
	return rows
}

// TotalInterest sums the interest paid over the term.
func TotalInterest(s config.LoanScenario) float64 {
	var sum float64
	for _, row := range Schedule(s) {
		sum += row.Interest
	}
	return sum
}
