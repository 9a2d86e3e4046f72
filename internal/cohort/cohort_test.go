package cohort

import (
	"math"
	"math/rand"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

type constRandom float64

func (c constRandom) Float64() float64 { return float64(c) }

func TestMonthlyChurnRate_Phases(t *testing.T) {
	cfg := config.Default().Customers.Churn

	if got, want := MonthlyChurnRate(cfg, model.Basic, 3), 0.08/12; math.Abs(got-want) > 1e-12 {
		t.Errorf("early basic = %v, want %v", got, want)
	}
	if got, want := MonthlyChurnRate(cfg, model.Enterprise, 4), 0.015/12; math.Abs(got-want) > 1e-12 {
		t.Errorf("late enterprise = %v, want %v", got, want)
	}
}

func TestApplyChurn_NoChurnAgesSurvivors(t *testing.T) {
	var b Book
	b.Add(model.TierCounts{3, 2, 1})

	churned := b.ApplyChurn(config.Default().Customers.Churn, 0, constRandom(0.999))
	if churned.Total() != 0 {
		t.Fatalf("churned = %v, want none", churned)
	}
	for _, tier := range model.Tiers {
		for _, age := range b.Cohort(tier).Ages {
			if age != 2 {
				t.Fatalf("%s age = %d, want 2", tier, age)
			}
		}
	}
}

func TestApplyChurn_AllChurn(t *testing.T) {
	var b Book
	b.Add(model.TierCounts{4, 3, 2})

	churned := b.ApplyChurn(config.Default().Customers.Churn, 0, constRandom(0))
	if churned != (model.TierCounts{4, 3, 2}) {
		t.Fatalf("churned = %v, want {4 3 2}", churned)
	}
	if b.Counts().Total() != 0 {
		t.Fatalf("counts = %v, want empty", b.Counts())
	}
	if err := b.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestApplyChurn_ReductionScalesProbability(t *testing.T) {
	var b Book
	b.Add(model.TierCounts{1, 0, 0})
	cfg := config.ChurnConfig{EarlyMonths: 3, Early: config.TierValues{Basic: 1.2}}

	// p = 0.1 without reduction, 0.05 with a 50% reduction: a draw of 0.07 churns only the former.
	if churned := b.ApplyChurn(cfg, 0.5, constRandom(0.07)); churned.Total() != 0 {
		t.Fatalf("reduced churn removed a customer")
	}
	if churned := b.ApplyChurn(cfg, 0, constRandom(0.07)); churned.Total() != 1 {
		t.Fatalf("unreduced churn kept the customer")
	}
}

func TestApplyUpgrades_OldestFirst(t *testing.T) {
	var b Book
	for i := 0; i < 100; i++ {
		b.Add(model.TierCounts{1, 0, 0})
		if i < 99 {
			b.ApplyChurn(config.ChurnConfig{}, 0, constRandom(0.5))
		}
	}
	// Ages are now 100, 99, ..., 1.

	u := b.ApplyUpgrades(config.UpgradeConfig{BasicToPro: 0.02})
	if u.BasicToPro != 2 {
		t.Fatalf("BasicToPro = %d, want 2", u.BasicToPro)
	}
	pro := b.Cohort(model.Pro)
	if pro.Count != 2 || pro.Ages[0] != 100 || pro.Ages[1] != 99 {
		t.Fatalf("pro cohort = %+v, want the two oldest", pro)
	}
	if err := b.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestApplyUpgrades_ProUsesPostUpgradeCount(t *testing.T) {
	var b Book
	b.Add(model.TierCounts{100, 190, 0})

	u := b.ApplyUpgrades(config.UpgradeConfig{BasicToPro: 0.1, ProToEnterprise: 0.01})
	if u.BasicToPro != 10 {
		t.Fatalf("BasicToPro = %d, want 10", u.BasicToPro)
	}
	// 200 pro after the basic upgrade, floor(200*0.01) = 2.
	if u.ProToEnterprise != 2 {
		t.Fatalf("ProToEnterprise = %d, want 2", u.ProToEnterprise)
	}
	if got := b.Counts(); got != (model.TierCounts{90, 198, 2}) {
		t.Fatalf("counts = %v", got)
	}
}

func TestEmptyBookIsSafe(t *testing.T) {
	var b Book
	cfg := config.Default()

	churned := b.ApplyChurn(cfg.Customers.Churn, 0, constRandom(0))
	u := b.ApplyUpgrades(cfg.Customers.Upgrades)
	if churned.Total() != 0 || u.BasicToPro != 0 || u.ProToEnterprise != 0 {
		t.Fatalf("empty book produced movement: %v %+v", churned, u)
	}
}

func TestInvariantHoldsUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfg := config.Default().Customers
	var b Book

	for month := 1; month <= 36; month++ {
		b.ApplyChurn(cfg.Churn, 0, rng)
		b.ApplyUpgrades(config.UpgradeConfig{BasicToPro: 0.05, ProToEnterprise: 0.05})
		b.Add(model.TierCounts{rng.Intn(20), rng.Intn(10), rng.Intn(3)})
		if err := b.Check(); err != nil {
			t.Fatalf("month %d: %v", month, err)
		}
		if b.Counts() != b.AgeLengths() {
			t.Fatalf("month %d: counts %v != ages %v", month, b.Counts(), b.AgeLengths())
		}
	}
}

func TestWebsitesAttach(t *testing.T) {
	var w Websites
	rates := config.TierValues{Basic: 0.7, Pro: 0.5, Enterprise: 0.2}

	added := w.Attach(model.TierCounts{10, 4, 0}, rates)
	if added != (model.TierCounts{7, 2, 0}) {
		t.Fatalf("first attach = %v, want {7 2 0}", added)
	}

	added = w.Attach(model.TierCounts{12, 4, 5}, rates)
	// round(8.4)=8 -> 1 new basic; pro unchanged; round(1.0)=1 enterprise.
	if added != (model.TierCounts{1, 0, 1}) {
		t.Fatalf("second attach = %v, want {1 0 1}", added)
	}

	added = w.Attach(model.TierCounts{2, 0, 0}, rates)
	if added.Total() != 0 {
		t.Fatalf("shrinking population attached %v", added)
	}
	if got := w.Cumulative(); got != (model.TierCounts{8, 2, 1}) {
		t.Fatalf("cumulative = %v, want {8 2 1}", got)
	}
}

func TestWebsitesAttach_HalvesRoundToEven(t *testing.T) {
	rates := config.TierValues{Basic: 0.5, Pro: 0.5, Enterprise: 0.5}
	var w Websites

	// 5*0.5 = 2.5 -> 2, 3*0.5 = 1.5 -> 2, 1*0.5 = 0.5 -> 0
	added := w.Attach(model.TierCounts{5, 3, 1}, rates)
	if added != (model.TierCounts{2, 2, 0}) {
		t.Fatalf("attach = %v, want {2 2 0}", added)
	}
}

func TestConversionRates_Phases(t *testing.T) {
	cfg := config.Default().Customers.Websites
	if ConversionRates(cfg, 6).Basic != 0.7 {
		t.Error("month 6 should use early rates")
	}
	if ConversionRates(cfg, 7).Basic != 0.4 {
		t.Error("month 7 should use late rates")
	}
}
