package reinvest

import (
	"testing"

	"github.com/theirongolddev/runway/internal/config"
)

func TestDecide(t *testing.T) {
	cfg := config.Default().Reinvestment

	tests := []struct {
		name          string
		fund          Fund
		cashFlow      float64
		margin        float64
		want          Decision
		wantPersonnel float64
	}{
		{"margin below threshold", Fund{}, 5000, 29.9, Decision{}, 0},
		{"negative cash flow", Fund{}, -100, 50, Decision{}, 0},
		{"excess below trigger", Fund{}, 800, 40, Decision{}, 0},
		{"trigger", Fund{}, 2000, 35, Decision{Triggered: true, Marketing: 600, Personnel: 600}, 600},
		{"marketing capped", Fund{}, 20000, 60, Decision{Triggered: true, Marketing: 3000, Personnel: 6000, Hire: true}, 4000},
		{"fund capped", Fund{Personnel: 9900}, 2000, 35, Decision{Triggered: true, Marketing: 600, Personnel: 100, Hire: true}, 8000},
		{"hire at threshold", Fund{Personnel: 1400}, 2000, 35, Decision{Triggered: true, Marketing: 600, Personnel: 600, Hire: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.fund
			got := f.Decide(cfg, tt.cashFlow, tt.margin)
			if got != tt.want {
				t.Fatalf("Decide = %+v, want %+v", got, tt.want)
			}
			if f.Personnel != tt.wantPersonnel {
				t.Fatalf("fund = %v, want %v", f.Personnel, tt.wantPersonnel)
			}
			if f.TotalReinvested != tt.want.Marketing+tt.want.Personnel {
				t.Fatalf("total reinvested = %v", f.TotalReinvested)
			}
		})
	}
}

func TestDecide_FundNeverExceedsCap(t *testing.T) {
	cfg := config.Default().Reinvestment
	cfg.PersonnelThreshold = 0 // never drain

	var f Fund
	for i := 0; i < 20; i++ {
		f.Decide(cfg, 50000, 80)
		if f.Personnel > cfg.MaxPersonnelFund {
			t.Fatalf("fund %v over cap after %d months", f.Personnel, i+1)
		}
	}
	if f.Personnel != cfg.MaxPersonnelFund {
		t.Fatalf("fund = %v, want cap", f.Personnel)
	}
}

func TestDecide_FullFundDoesNotHire(t *testing.T) {
	cfg := config.Default().Reinvestment
	f := Fund{Personnel: cfg.MaxPersonnelFund}

	for i := 0; i < 3; i++ {
		d := f.Decide(cfg, 2000, 35)
		if d.Hire || d.Personnel != 0 {
			t.Fatalf("month %d: decision = %+v, want no hire and no addition", i+1, d)
		}
	}
	if f.Personnel != cfg.MaxPersonnelFund {
		t.Fatalf("fund = %v, want untouched cap", f.Personnel)
	}
	if f.TotalReinvested != 3*600 {
		t.Fatalf("total reinvested = %v, want marketing only (1800)", f.TotalReinvested)
	}
}
