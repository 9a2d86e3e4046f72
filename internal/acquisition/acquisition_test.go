package acquisition

import (
	"math"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

var testCurve = []config.CACTier{{Spend: 500, CAC: 50}, {Spend: 1000, CAC: 57.5}}

func TestCAC(t *testing.T) {
	tests := []struct {
		spend float64
		want  float64
	}{
		{500, 50},
		{750, 50},
		{1000, 57.5},
		{5000, 57.5},
		{100, 50}, // below the lowest tier falls back to it
		{0, 50},
	}
	for _, tt := range tests {
		if got := CAC(testCurve, tt.spend); got != tt.want {
			t.Errorf("CAC(%v) = %v, want %v", tt.spend, got, tt.want)
		}
	}
}

func TestNewCustomers(t *testing.T) {
	if got := NewCustomers(testCurve, 750); got != 15 {
		t.Fatalf("NewCustomers(750) = %d, want 15", got)
	}
	if got := NewCustomers(testCurve, 1000); got != 17 {
		t.Fatalf("NewCustomers(1000) = %d, want 17", got)
	}
	if got := NewCustomers(testCurve, 0); got != 0 {
		t.Fatalf("NewCustomers(0) = %d, want 0", got)
	}
	if got := NewCustomers(nil, 500); got != 0 {
		t.Fatalf("NewCustomers with no curve = %d, want 0", got)
	}
}

func TestOrganic(t *testing.T) {
	schedule := []int{1, 1, 1, 2, 5}
	if got := Organic(schedule, 4, 0); got != 2 {
		t.Errorf("month 4 = %d, want 2", got)
	}
	if got := Organic(schedule, 5, 0.2); got != 6 {
		t.Errorf("boosted month 5 = %d, want 6", got)
	}
	if got := Organic(schedule, 1, 0.2); got != 1 {
		t.Errorf("boost floors to zero on small bases, got %d", got)
	}
	if got := Organic(schedule, 9, 0); got != 0 {
		t.Errorf("out of range = %d, want 0", got)
	}
}

func TestDistribute(t *testing.T) {
	shares := config.TierValues{Basic: 0.55, Pro: 0.35, Enterprise: 0.10}
	got := Distribute(15, 2, shares)
	// floor(8.25)=8 +2 organic, floor(5.25)=5, floor(1.5)=1
	if got != (model.TierCounts{10, 5, 1}) {
		t.Fatalf("Distribute = %v, want {10 5 1}", got)
	}
	if got := Distribute(0, 0, shares); got.Total() != 0 {
		t.Fatalf("empty distribution = %v", got)
	}
}

func TestChannelMonth(t *testing.T) {
	ch := config.Channel{Name: "google", CAC: testCurve}

	res := ChannelMonth(ch, Spend{Base: 500, LoanBoost: 500}, 0.5)
	if res.Spend != 1000 || res.CAC != 57.5 {
		t.Fatalf("spend/cac = %v/%v", res.Spend, res.CAC)
	}
	// effective 750 at the 1000-tier CAC: floor(750/57.5) = 13
	if res.Customers != 13 {
		t.Fatalf("customers = %d, want 13", res.Customers)
	}

	if res := ChannelMonth(ch, Spend{}, 1); res.Customers != 0 || res.Spend != 0 {
		t.Fatalf("zero spend = %+v", res)
	}
}

func TestBoostEfficiency(t *testing.T) {
	bands := config.Default().Marketing.BoostEfficiency

	if got := BoostEfficiency(bands, 500); got != 1 {
		t.Errorf("500 = %v, want 1", got)
	}
	// 500*1 + 500*0.9 = 950 over 1000
	if got := BoostEfficiency(bands, 1000); math.Abs(got-0.95) > 1e-9 {
		t.Errorf("1000 = %v, want 0.95", got)
	}
	// beyond the last band uses the lowest efficiency
	want := (500*1.0 + 500*0.9 + 1000*0.8 + 1000*0.7 + 2000*0.6 + 5000*0.5 + 10000*0.5) / 20000
	if got := BoostEfficiency(bands, 20000); math.Abs(got-want) > 1e-9 {
		t.Errorf("20000 = %v, want %v", got, want)
	}
	if got := BoostEfficiency(bands, 0); got != 0 {
		t.Errorf("0 = %v, want 0", got)
	}
}
