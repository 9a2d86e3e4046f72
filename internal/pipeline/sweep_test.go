package pipeline

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
)

func TestSweep_FullCatalogue(t *testing.T) {
	cfg := config.Default()

	var calls atomic.Int64
	var last atomic.Int64
	outcomes, err := Sweep(context.Background(), cfg, SweepOptions{
		Workers: 4,
		Progress: func(current, total int) {
			calls.Add(1)
			if current == total {
				last.Store(int64(total))
			}
		},
	})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	want := len(cfg.Loan.Scenarios) * len(cfg.Loan.Strategies)
	if len(outcomes) != want {
		t.Fatalf("outcomes = %d, want %d", len(outcomes), want)
	}
	if int(calls.Load()) != want || int(last.Load()) != want {
		t.Fatalf("progress calls = %d, final total = %d", calls.Load(), last.Load())
	}

	for _, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("%s/%s: %v", o.Scenario, o.Strategy, o.Err)
		}
		if o.Summary.Months != cfg.General.Months {
			t.Fatalf("%s/%s: months = %d", o.Scenario, o.Strategy, o.Summary.Months)
		}
		if o.Scenario == "no_loan" && o.Summary.ROI != 0 {
			t.Fatalf("no_loan ROI = %v", o.Summary.ROI)
		}
	}

	// Outcomes keep catalogue order regardless of worker scheduling.
	if outcomes[0].Scenario != cfg.Loan.Scenarios[0].Name || outcomes[0].Strategy != cfg.Loan.Strategies[0].Name {
		t.Fatalf("first outcome = %s/%s", outcomes[0].Scenario, outcomes[0].Strategy)
	}
}

func TestSweep_MatchesSingleRun(t *testing.T) {
	cfg := config.Default()
	outcomes, err := Sweep(context.Background(), cfg, SweepOptions{
		Scenarios:  []string{"large_loan"},
		Strategies: []string{"balanced"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("outcomes = %d", len(outcomes))
	}

	c := cfg.WithLoan("large_loan", "balanced")
	records, err := engine.Run(context.Background(), c, engine.NewRandom(c.General.Seed))
	if err != nil {
		t.Fatal(err)
	}
	if want := Summarize(records, 50000); !reflect.DeepEqual(outcomes[0].Summary, want) {
		t.Fatalf("sweep summary differs from a single run")
	}
}

func TestSweep_UnknownName(t *testing.T) {
	_, err := Sweep(context.Background(), config.Default(), SweepOptions{Scenarios: []string{"lottery"}})
	if !errors.Is(err, config.ErrUnknownScenario) {
		t.Fatalf("err = %v, want ErrUnknownScenario", err)
	}
	_, err = Sweep(context.Background(), config.Default(), SweepOptions{Strategies: []string{"yolo"}})
	if !errors.Is(err, config.ErrUnknownStrategy) {
		t.Fatalf("err = %v, want ErrUnknownStrategy", err)
	}
}

func TestSweep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := Sweep(ctx, config.Default(), SweepOptions{Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	for _, o := range outcomes {
		if o.Err == nil {
			t.Fatalf("%s/%s ran despite cancellation", o.Scenario, o.Strategy)
		}
	}
}
