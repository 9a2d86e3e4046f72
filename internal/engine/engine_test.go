package engine

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/loan"
	"github.com/theirongolddev/runway/internal/model"
)

func run(t *testing.T, cfg config.Config, seed int64, opts ...Option) []model.MonthlyRecord {
	t.Helper()
	records, err := Run(context.Background(), cfg, NewRandom(seed), opts...)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(records) != cfg.General.Months {
		t.Fatalf("records = %d, want %d", len(records), cfg.General.Months)
	}
	return records
}

func TestRun_DeterministicForSameSeed(t *testing.T) {
	cfg := config.Default()
	a := run(t, cfg, 7)
	b := run(t, cfg, 7)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical seeded runs produced different records")
	}
}

func TestRun_InvariantsHoldEveryMonth(t *testing.T) {
	cfg := config.ExtendSchedules(config.Default(), 36)
	cfg.General.Months = 36

	for _, name := range []string{"no_loan", "actual_loan", "aggressive_loan"} {
		c := cfg.WithLoan(name, "balanced")
		plan, err := PlanFor(c)
		if err != nil {
			t.Fatal(err)
		}
		for _, rec := range run(t, c, 42) {
			if rec.Customers != rec.CohortAges {
				t.Fatalf("%s month %d: counts %v != ages %v", name, rec.Month, rec.Customers, rec.CohortAges)
			}
			if err := loan.CheckBalance(rec.TotalInvested, rec.RemainingFunds, plan.Net); err != nil {
				t.Fatalf("%s month %d: %v", name, rec.Month, err)
			}
			if rec.FounderSupport > c.Founder.MaxSupport {
				t.Fatalf("%s month %d: support %v over cap", name, rec.Month, rec.FounderSupport)
			}
			if rec.RemainingFunds < 0 {
				t.Fatalf("%s month %d: remaining funds negative", name, rec.Month)
			}
		}
	}
}

func TestRun_RecordArithmetic(t *testing.T) {
	cfg := config.Default()
	records := run(t, cfg, 42)

	var cum float64
	for _, r := range records {
		if math.Abs(r.TotalRevenue-r.TotalCosts-r.Profit) > 1e-6 {
			t.Fatalf("month %d: revenue %.2f - costs %.2f != profit %.2f", r.Month, r.TotalRevenue, r.TotalCosts, r.Profit)
		}
		cum += r.NetCashFlow
		if math.Abs(cum-r.CumulativeCashFlow) > 1e-6 {
			t.Fatalf("month %d: cumulative cash flow drift", r.Month)
		}
		if r.TotalCustomers != r.Customers.Total() || r.NewCustomersTotal != r.NewCustomers.Total() {
			t.Fatalf("month %d: totals disagree with tiers", r.Month)
		}
		if r.Month > 1 && r.Date.Month() == records[0].Date.Month() && r.Date.Year() == records[0].Date.Year() {
			t.Fatalf("month %d: date not advanced", r.Month)
		}
	}

	first := records[0]
	if first.Label() != "2026-01" {
		t.Fatalf("first label = %s", first.Label())
	}
	if math.Abs(first.LoanPayment-36) > 1e-9 || first.LoanBalance != 12000 {
		t.Fatalf("month 1 loan = %.2f payment, %.2f balance", first.LoanPayment, first.LoanBalance)
	}
	if first.DrawAmount(model.DrawLegalSetup) != 2100 {
		t.Fatalf("legal draw = %v, want 2100", first.DrawAmount(model.DrawLegalSetup))
	}
}

func TestRun_EmptyBusiness(t *testing.T) {
	cfg := config.Default().WithLoan("no_loan", "balanced")
	cfg.Costs.Legal = nil
	for i := range cfg.Marketing.Channels {
		cfg.Marketing.Channels[i].Schedule = make([]float64, 12)
	}
	cfg.Marketing.Organic = make([]int, 12)

	for _, r := range run(t, cfg, 1) {
		if r.TotalRevenue != 0 || r.TotalCustomers != 0 || r.NewWebsitesTotal != 0 {
			t.Fatalf("month %d: expected an empty business, got %+v", r.Month, r)
		}
		base := 35 + 43 + 10.20
		if math.Abs(r.TotalCosts-base) > 1e-9 {
			t.Fatalf("month %d: costs = %v, want base %v", r.Month, r.TotalCosts, base)
		}
		if r.CashFlowMargin != 0 || math.IsNaN(r.Utilization) || r.Designers != 0 {
			t.Fatalf("month %d: margin %v utilization %v designers %d", r.Month, r.CashFlowMargin, r.Utilization, r.Designers)
		}
		if len(r.Draws) != 0 {
			t.Fatalf("month %d: draws without a loan: %v", r.Month, r.Draws)
		}
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Customers.Distribution.Basic = 0.9

	_, err := Run(context.Background(), cfg, NewRandom(1))
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *config.ValidationError", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, config.Default(), NewRandom(1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRun_LogsNonConvergence(t *testing.T) {
	cfg := config.Default()
	cfg.Pricing.Monthly.Basic = 10000
	cfg.Collaborator.MaxIterations = 1
	cfg.Collaborator.Tolerance = 1e-9

	core, logs := observer.New(zapcore.WarnLevel)
	records := run(t, cfg, 1, WithLogger(zap.New(core)))
	if records[0].CompConverged {
		t.Fatal("expected the single-iteration resolver not to converge")
	}

	entries := logs.FilterMessage("compensation did not converge").All()
	if len(entries) == 0 {
		t.Fatal("no non-convergence warning logged")
	}
	if got := entries[0].ContextMap()["month"]; got != int64(1) {
		t.Fatalf("month field = %v", got)
	}
}

func TestPlanFor(t *testing.T) {
	plan, err := PlanFor(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if plan.Net != 11760 || plan.SetupFee != 240 || plan.Allocation.Marketing != 5880 {
		t.Fatalf("plan = %+v", plan)
	}

	_, err = PlanFor(config.Default().WithLoan("nope", "balanced"))
	if !errors.Is(err, config.ErrUnknownScenario) {
		t.Fatalf("err = %v, want ErrUnknownScenario", err)
	}
}
