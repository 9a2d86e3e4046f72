package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
)

func run(t *testing.T, scenario string) []model.MonthlyRecord {
	t.Helper()
	cfg := config.Default().WithLoan(scenario, "balanced")
	records, err := engine.Run(context.Background(), cfg, engine.NewRandom(cfg.General.Seed))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return records
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{12.345, "12.35"},
		{-12.345, "-12.35"},
		{1000, "1000.00"},
		{0.004, "0.00"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Percent(33.333); got != "33.3" {
		t.Errorf("Percent = %q", got)
	}
}

func TestWriteAll_LoanScenario(t *testing.T) {
	records := run(t, "actual_loan")
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := WriteAll(dir, records, 12000)
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	names := map[string]bool{}
	for _, p := range paths {
		names[filepath.Base(p)] = true
	}
	for _, want := range []string{
		"customer_growth.csv", "website_production.csv", "financial_performance.csv",
		"team_operations.csv", "marketing_acquisition.csv", "cash_flow.csv",
		"loan_impact.csv", "loan_investments.csv", "monthly_ledger.csv",
	} {
		if !names[want] {
			t.Errorf("missing %s in %v", want, paths)
		}
	}

	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			t.Fatal(err)
		}
		rows, err := csv.NewReader(f).ReadAll()
		_ = f.Close()
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if len(rows) != len(records)+1 {
			t.Fatalf("%s: rows = %d, want %d", p, len(rows), len(records)+1)
		}
		if rows[0][0] != "month" || rows[1][0] != "1" || rows[1][1] != "2026-01" {
			t.Fatalf("%s: unexpected leading cells %v / %v", p, rows[0][:2], rows[1][:2])
		}
	}
}

func TestSections_NoLoan(t *testing.T) {
	records := run(t, "no_loan")
	for _, sec := range Sections(records, 0) {
		if sec.Name == "loan_impact.csv" || sec.Name == "loan_investments.csv" {
			t.Fatalf("loan section %s written without a loan", sec.Name)
		}
	}
}

func TestSections_Reinvestment(t *testing.T) {
	records := []model.MonthlyRecord{{Month: 1}, {Month: 2}}
	for _, sec := range Sections(records, 0) {
		if sec.Name == "reinvestment_analysis.csv" {
			t.Fatal("reinvestment section written with no triggered month")
		}
	}

	records[1].ReinvestmentTriggered = true
	found := false
	for _, sec := range Sections(records, 0) {
		if sec.Name == "reinvestment_analysis.csv" {
			found = true
		}
	}
	if !found {
		t.Fatal("reinvestment section missing")
	}
}

func TestWrite_LedgerColumnsMatchHeader(t *testing.T) {
	records := run(t, "actual_loan")
	sec := ledger(channelNames(records))

	var buf bytes.Buffer
	if err := Write(&buf, sec, records); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		if len(row) != len(sec.Header) {
			t.Fatalf("row %d has %d cells, header has %d", i, len(row), len(sec.Header))
		}
	}
}

func TestLoanInvestments_Total(t *testing.T) {
	r := model.MonthlyRecord{
		Month:        1,
		LoanDeployed: 2600,
		Draws: []model.Draw{
			{Category: model.DrawLegalSetup, Amount: 2100},
			{Category: model.DrawMarketingBoost, Amount: 500},
		},
	}
	row := loanInvestments().Row(r)
	want := []string{"1", "0001-01", "2100.00", "0.00", "500.00", "0.00", "0.00", "2600.00"}
	if len(row) != len(want) {
		t.Fatalf("row = %v", row)
	}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("cell %d = %q, want %q", i, row[i], want[i])
		}
	}
}
