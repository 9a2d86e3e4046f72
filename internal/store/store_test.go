package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "runway.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveRunThenLoad(t *testing.T) {
	s := openTemp(t)

	cfg := config.Default().WithLoan("actual_loan", "balanced")
	records, err := engine.Run(context.Background(), cfg, engine.NewRandom(cfg.General.Seed))
	if err != nil {
		t.Fatal(err)
	}

	id, err := s.SaveRun(Run{Scenario: "actual_loan", Strategy: "balanced", Seed: cfg.General.Seed}, records)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("run id %q is not a uuid: %v", id, err)
	}

	runs, err := s.Runs()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != id || runs[0].Months != len(records) {
		t.Fatalf("runs = %+v", runs)
	}

	loaded, err := s.LoadMonths(id)
	if err != nil {
		t.Fatalf("LoadMonths: %v", err)
	}
	if len(loaded) != len(records) {
		t.Fatalf("loaded %d months, want %d", len(loaded), len(records))
	}
	for i, got := range loaded {
		want := records[i]
		if got.Month != want.Month || got.Label() != want.Label() {
			t.Fatalf("month %d: got %d %s", want.Month, got.Month, got.Label())
		}
		if got.Customers != want.Customers || got.Profit != want.Profit || got.BankBalance != want.BankBalance {
			t.Fatalf("month %d: stored values differ", want.Month)
		}
		if len(got.Draws) != len(want.Draws) {
			t.Fatalf("month %d: draws = %d, want %d", want.Month, len(got.Draws), len(want.Draws))
		}
		for j := range want.Draws {
			if got.Draws[j] != want.Draws[j] {
				t.Fatalf("month %d draw %d = %+v, want %+v", want.Month, j, got.Draws[j], want.Draws[j])
			}
		}
	}
}

func TestDeleteRunCascades(t *testing.T) {
	s := openTemp(t)
	records := []model.MonthlyRecord{{
		Month: 1,
		Date:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Draws: []model.Draw{{Category: model.DrawLegalSetup, Amount: 2100}},
	}}

	id, err := s.SaveRun(Run{Scenario: "actual_loan", Strategy: "balanced"}, records)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteRun(id); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadMonths(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 0 {
		t.Fatalf("months survived delete: %d", len(loaded))
	}
	var draws int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM draws WHERE run_id = ?", id).Scan(&draws); err != nil {
		t.Fatal(err)
	}
	if draws != 0 {
		t.Fatalf("draws survived delete: %d", draws)
	}
}

func TestSaveSweep(t *testing.T) {
	s := openTemp(t)
	outcomes := []model.Outcome{
		{Scenario: "no_loan", Strategy: "balanced", Summary: model.Summary{TotalProfit: 100}},
		{Scenario: "actual_loan", Strategy: "balanced", Summary: model.Summary{LoanAmount: 12000, ROI: 4.5}},
		{Scenario: "large_loan", Strategy: "balanced", Err: errors.New("boom")},
	}

	id, err := s.SaveSweep(outcomes)
	if err != nil {
		t.Fatalf("SaveSweep: %v", err)
	}
	n, err := s.OutcomeCount(id)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(outcomes) {
		t.Fatalf("count = %d, want %d", n, len(outcomes))
	}

	var msg string
	if err := s.db.QueryRow(`SELECT error FROM sweep_outcomes WHERE sweep_id = ? AND scenario = 'large_loan'`, id).Scan(&msg); err != nil {
		t.Fatal(err)
	}
	if msg != "boom" {
		t.Fatalf("error column = %q", msg)
	}
}
