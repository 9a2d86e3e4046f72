package cmd

import (
	"errors"
	"testing"

	"github.com/theirongolddev/runway/internal/model"
)

func TestSortOutcomes(t *testing.T) {
	outcomes := []model.Outcome{
		{Scenario: "a", Summary: model.Summary{ROI: 5, TotalProfit: 300}},
		{Scenario: "failed", Err: errors.New("boom")},
		{Scenario: "b", Summary: model.Summary{ROI: 20, TotalProfit: 100}},
		{Scenario: "c", Summary: model.Summary{ROI: -3, TotalProfit: 200}},
	}

	tests := []struct {
		key  string
		want []string
	}{
		{"roi", []string{"b", "a", "c", "failed"}},
		{"profit", []string{"a", "c", "b", "failed"}},
	}
	for _, tt := range tests {
		got := append([]model.Outcome(nil), outcomes...)
		if err := sortOutcomes(got, tt.key); err != nil {
			t.Fatalf("sortOutcomes(%q): %v", tt.key, err)
		}
		for i, name := range tt.want {
			if got[i].Scenario != name {
				t.Errorf("%s: position %d = %q, want %q", tt.key, i, got[i].Scenario, name)
			}
		}
	}

	if err := sortOutcomes(outcomes, "vibes"); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
}

func TestDescribeOutcome(t *testing.T) {
	if got := describeOutcome(nil, nil); got != "none" {
		t.Fatalf("nil outcome = %q", got)
	}
	o := &model.Outcome{Scenario: "small_loan", Strategy: "balanced", Summary: model.Summary{FinalTotalCustomers: 42}}
	got := describeOutcome(o, func(s model.Summary) string { return "42 customers" })
	if got != "small_loan / balanced (42 customers)" {
		t.Fatalf("describeOutcome = %q", got)
	}
}

func TestBenefitLine(t *testing.T) {
	if got := benefitLine("", "x"); got != "none" {
		t.Fatalf("benefitLine(empty) = %q", got)
	}
	if got := benefitLine("cloud", "churn -10%"); got != "cloud: churn -10%" {
		t.Fatalf("benefitLine = %q", got)
	}
}
