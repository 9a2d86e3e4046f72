package costs

import (
	"math"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestServerCost(t *testing.T) {
	tiers := config.Default().Costs.ServerTiers
	tests := []struct {
		customers int
		want      float64
	}{
		{0, 0},
		{9, 0},
		{10, 10},
		{49, 10},
		{50, 20},
		{199, 40},
		{500, 120},
		{5000, 120},
	}
	for _, tt := range tests {
		if got := ServerCost(tiers, tt.customers); got != tt.want {
			t.Errorf("ServerCost(%d) = %v, want %v", tt.customers, got, tt.want)
		}
	}
}

func TestVariableCosts(t *testing.T) {
	cfg := config.Default().Costs

	v := VariableCosts(cfg, model.TierCounts{10, 2, 1}, 0)
	// 10*0.18 + 2*(0.45+1.25) + 1*(1.20+6.25) = 1.8 + 3.4 + 7.45
	if !approx(v.PerCustomer, 12.65) {
		t.Fatalf("PerCustomer = %v, want 12.65", v.PerCustomer)
	}
	if v.Server != 10 || !approx(v.Total, 22.65) {
		t.Fatalf("Variable = %+v", v)
	}

	reduced := VariableCosts(cfg, model.TierCounts{10, 2, 1}, 0.2)
	if !approx(reduced.Total, 22.65*0.8) {
		t.Fatalf("reduced Total = %v", reduced.Total)
	}

	if empty := VariableCosts(cfg, model.TierCounts{}, 0); empty.Total != 0 {
		t.Fatalf("empty Total = %v, want 0", empty.Total)
	}
}

func TestLLMCost(t *testing.T) {
	cfg := config.Default().Costs
	tests := []struct {
		avg  float64
		want float64
	}{
		{-1000, 43},
		{0, 43},
		{0.01, 110},
		{5000, 110},
		{5000.01, 150},
		{15000, 150},
		{15001, 300},
	}
	for _, tt := range tests {
		if got := LLMCost(cfg, tt.avg); got != tt.want {
			t.Errorf("LLMCost(%v) = %v, want %v", tt.avg, got, tt.want)
		}
	}
}

func TestBaseCosts(t *testing.T) {
	cfg := config.Default().Costs

	b := BaseCosts(cfg, Inputs{Month: 1, Designers: 0, DesignerSalary: 1750})
	if b.Legal != 2100 || b.Fixed != 35 || b.LLM != 43 {
		t.Fatalf("month 1 base = %+v", b)
	}
	if !approx(b.Total(), 35+43+10.20+2100) {
		t.Fatalf("Total = %v", b.Total())
	}

	b = BaseCosts(cfg, Inputs{
		Month:            5,
		Marketing:        700,
		Designers:        2,
		DesignerSalary:   1750,
		FullTime:         true,
		Infrastructure:   200,
		RollingAvgProfit: 6000,
	})
	if b.Legal != 0 || b.Designers != 3500 || b.LLM != 150 || !approx(b.PerEmployee, 40.8) {
		t.Fatalf("month 5 base = %+v", b)
	}
}

func TestEmployees(t *testing.T) {
	if got := Employees(false, 0); got != 1 {
		t.Errorf("founder only = %d", got)
	}
	if got := Employees(true, 3); got != 5 {
		t.Errorf("full team = %d", got)
	}
}
