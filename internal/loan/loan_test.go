package loan

import (
	"errors"
	"math"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

func scenario(t *testing.T, name string) config.LoanScenario {
	t.Helper()
	s, err := config.Default().LookupScenario(name)
	if err != nil {
		t.Fatalf("LookupScenario(%s): %v", name, err)
	}
	return s
}

func TestActualLoan_InterestOnlyPeriod(t *testing.T) {
	s := scenario(t, "actual_loan")

	if got := MonthlyPayment(s, 1); math.Abs(got-36.00) > 1e-9 {
		t.Fatalf("month 1 payment = %.4f, want 36.00", got)
	}
	if got := MonthlyPayment(s, 12); math.Abs(got-36.00) > 1e-9 {
		t.Fatalf("month 12 payment = %.4f, want 36.00", got)
	}
	for paid := 0; paid <= 12; paid++ {
		if got := Balance(s, paid); got != 12000 {
			t.Fatalf("balance after %d payments = %.2f, want 12000", paid, got)
		}
	}

	// From month 13 the full principal amortizes over 60 months.
	p13 := MonthlyPayment(s, 13)
	if p13 <= 36 || math.Abs(p13-MonthlyPayment(s, 72)) > 1e-9 {
		t.Fatalf("amortizing payment = %.4f", p13)
	}
	if got := MonthlyPayment(s, 73); got != 0 {
		t.Fatalf("payment after term = %v, want 0", got)
	}
	if got := Balance(s, 72); got != 0 {
		t.Fatalf("balance at term = %v, want 0", got)
	}
}

func TestBalance_DecreasesAfterInterestOnly(t *testing.T) {
	for _, name := range []string{"actual_loan", "small_loan", "aggressive_loan"} {
		s := scenario(t, name)
		prev := Balance(s, 0)
		for paid := 1; paid <= s.TermMonths; paid++ {
			b := Balance(s, paid)
			if b > prev+1e-9 {
				t.Fatalf("%s: balance rose at %d: %.2f > %.2f", name, paid, b, prev)
			}
			prev = b
		}
	}
}

func TestSchedule_RepaysPrincipal(t *testing.T) {
	s := scenario(t, "medium_loan")
	rows := Schedule(s)
	if len(rows) != s.TermMonths {
		t.Fatalf("rows = %d, want %d", len(rows), s.TermMonths)
	}
	var principal float64
	for _, r := range rows {
		principal += r.Principal
		if math.Abs(r.Interest+r.Principal-r.Payment) > 0.01 {
			t.Fatalf("month %d: interest %.2f + principal %.2f != payment %.2f",
				r.Month, r.Interest, r.Principal, r.Payment)
		}
	}
	if math.Abs(principal-s.Amount) > 0.01 {
		t.Fatalf("principal repaid = %.2f, want %.2f", principal, s.Amount)
	}
	if TotalInterest(s) <= 0 {
		t.Fatal("expected positive interest")
	}
}

func TestZeroRateAndNoLoan(t *testing.T) {
	free := config.LoanScenario{Amount: 1200, TermMonths: 12}
	if got := MonthlyPayment(free, 1); got != 100 {
		t.Fatalf("zero-rate payment = %v, want 100", got)
	}
	if got := Balance(free, 6); got != 600 {
		t.Fatalf("zero-rate balance = %v, want 600", got)
	}

	none := scenario(t, "no_loan")
	if MonthlyPayment(none, 1) != 0 || Balance(none, 0) != 0 || Schedule(none) != nil {
		t.Fatal("no_loan should have no payments or balance")
	}
}

func TestNetAmount(t *testing.T) {
	s := scenario(t, "actual_loan")
	if got := NetAmount(s, 0.02); got != 11760 {
		t.Fatalf("NetAmount = %v, want 11760", got)
	}
}

func TestAllocate(t *testing.T) {
	cfg := config.Default()
	strat, _ := cfg.LookupStrategy("realistic_12k")

	a, err := Allocate(11760, strat)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if a.Marketing != 5880 || a.Founder != 0 || math.Abs(a.Total()-11760) > 1e-9 {
		t.Fatalf("allocation = %+v", a)
	}

	bad := strat
	bad.Reserve = 0
	if _, err := Allocate(11760, bad); !errors.Is(err, ErrAllocationSum) {
		t.Fatalf("err = %v, want ErrAllocationSum", err)
	}
}

func TestResolveBenefits(t *testing.T) {
	cfg := config.Default()
	balanced, _ := cfg.LookupStrategy("balanced")

	tests := []struct {
		name      string
		net       float64
		infra     string
		team      string
		founder   string
		capacity  float64
		ftMult    float64
		organic   float64
		churnCut  float64
		varCut    float64
		infraCost float64
	}{
		{"small", 11760, "", "", "", 0, 1, 0, 0, 0, 0},
		{"large", 49000, "better_tools", "collaborator_support", "", 0, 0.7, 0, 0.05, 0, 200},
		{"aggressive", 98000, "premium", "capacity_expansion", "founder_focus", 0.2, 0.7, 0.2, 0.10, 0.20, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Allocate(tt.net, balanced)
			if err != nil {
				t.Fatal(err)
			}
			b := ResolveBenefits(cfg.Loan, a)
			if b.InfrastructureTier != tt.infra || b.TeamTier != tt.team || b.FounderTier != tt.founder {
				t.Fatalf("tiers = %q %q %q", b.InfrastructureTier, b.TeamTier, b.FounderTier)
			}
			if b.CapacityBoost != tt.capacity || b.FullTimeMultiplier != tt.ftMult || b.OrganicBoost != tt.organic {
				t.Fatalf("team/founder benefits = %+v", b)
			}
			if b.ChurnReduction != tt.churnCut || b.VariableCostReduction != tt.varCut || b.InfrastructureMonthly != tt.infraCost {
				t.Fatalf("infrastructure benefits = %+v", b)
			}
		})
	}
}

func TestMarketingBoost(t *testing.T) {
	if got := MarketingBoost(5880, 12, 11760); got != 490 {
		t.Fatalf("boost = %v, want 490", got)
	}
	if got := MarketingBoost(5880, 12, 100); got != 100 {
		t.Fatalf("boost = %v, want ledger-capped 100", got)
	}
	if got := MarketingBoost(5880, 0, 100); got != 0 {
		t.Fatalf("boost with no months left = %v", got)
	}
}

func TestLedger_DrawsAreCapped(t *testing.T) {
	l := NewLedger(1000)

	d, ok := l.Draw(model.DrawLegalSetup, 700)
	if !ok || d.Amount != 700 {
		t.Fatalf("draw = %+v", d)
	}
	d, ok = l.Draw(model.DrawOperatingDeficit, 500)
	if !ok || d.Amount != 300 {
		t.Fatalf("capped draw = %+v, want 300", d)
	}
	if _, ok := l.Draw(model.DrawMarketingBoost, 50); ok {
		t.Fatal("draw from an empty ledger should report false")
	}
	if l.Remaining() != 0 || l.Invested() != 1000 || l.DeploymentRate() != 100 {
		t.Fatalf("ledger = invested %v remaining %v", l.Invested(), l.Remaining())
	}
	if err := l.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestLedger_InvariantHoldsUnderManyDraws(t *testing.T) {
	l := NewLedger(11760)
	amounts := []float64{2100, 490.33, 0, -5, 1e-3, 333.333, 1200.1, 8000, 42}
	for i, a := range amounts {
		l.Draw(model.DrawOperatingDeficit, a)
		if err := l.Check(); err != nil {
			t.Fatalf("after draw %d: %v", i, err)
		}
	}
	if l.Remaining() < 0 {
		t.Fatalf("remaining went negative: %v", l.Remaining())
	}
}

func TestCheckBalance(t *testing.T) {
	if err := CheckBalance(100, 50, 150.005); err != nil {
		t.Fatalf("within tolerance: %v", err)
	}
	if err := CheckBalance(100, 50, 151); err == nil {
		t.Fatal("expected imbalance error")
	}
}
