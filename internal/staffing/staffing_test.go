package staffing

import (
	"math"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

func TestWorkloadAndRequired(t *testing.T) {
	capacity := config.Default().Staffing.Capacity

	w := Workload(model.TierCounts{10, 4, 2}, capacity, 0)
	if math.Abs(w-3) > 1e-9 {
		t.Fatalf("Workload = %v, want 3", w)
	}
	if got := Required(w, 0.1); got != 4 {
		t.Fatalf("Required = %d, want ceil(3.3)=4", got)
	}
	if got := Required(0, 0.1); got != 0 {
		t.Fatalf("Required(0) = %d, want 0", got)
	}

	boosted := Workload(model.TierCounts{12, 0, 0}, capacity, 0.2)
	if math.Abs(boosted-1) > 1e-9 {
		t.Fatalf("boosted Workload = %v, want 1", boosted)
	}
}

func TestUtilization_NoDesigners(t *testing.T) {
	if got := Utilization(0.4, 0); got != 0.4 {
		t.Fatalf("Utilization = %v, want raw workload", got)
	}
	if got := Utilization(3, 2); got != 1.5 {
		t.Fatalf("Utilization = %v, want 1.5", got)
	}
	if got := Utilization(0, 0); got != 0 {
		t.Fatalf("Utilization = %v, want 0", got)
	}
}

func TestStep(t *testing.T) {
	c := NewController(config.Default().Staffing)

	tests := []struct {
		name       string
		in         State
		required   int
		util       float64
		want       State
		wantAction string
	}{
		{"emergency from zero", State{}, 2, 1.4, State{Designers: 2}, model.StaffEmergencyHire},
		{"emergency scales with team", State{Designers: 3, LowMonths: 1}, 2, 1.5, State{Designers: 5}, model.StaffEmergencyHire},
		{"first hire", State{}, 1, 0.3, State{Designers: 1}, model.StaffHire},
		{"below first hire", State{}, 1, 0.2, State{}, model.StaffHold},
		{"subsequent hire", State{Designers: 1}, 2, 0.8, State{Designers: 2}, model.StaffHire},
		{"busy but enough", State{Designers: 2}, 2, 0.8, State{Designers: 2}, model.StaffHold},
		{"first low month", State{Designers: 2}, 1, 0.1, State{Designers: 2, LowMonths: 1}, model.StaffHold},
		{"second low month fires", State{Designers: 2, LowMonths: 1}, 1, 0.1, State{Designers: 1}, model.StaffFire},
		{"recovery resets counter", State{Designers: 2, LowMonths: 1}, 1, 0.5, State{Designers: 2}, model.StaffHold},
		{"nobody to fire", State{}, 0, 0, State{}, model.StaffHold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, action := c.Step(tt.in, tt.required, tt.util)
			if got != tt.want || action != tt.wantAction {
				t.Fatalf("Step = %+v %s, want %+v %s", got, action, tt.want, tt.wantAction)
			}
		})
	}
}

func TestStep_NoThrashing(t *testing.T) {
	c := NewController(config.Default().Staffing)
	s := State{Designers: 3}

	// Alternate just below the fire threshold and just below the hire threshold.
	utils := []float64{0.29, 0.74, 0.29, 0.74, 0.29, 0.74, 0.29, 0.74}
	changes := 0
	for _, u := range utils {
		next, _ := c.Step(s, 3, u)
		if next.Designers != s.Designers {
			changes++
		}
		s = next
	}
	if changes != 0 {
		t.Fatalf("designer count changed %d times under oscillating utilization", changes)
	}
}

func TestStep_SustainedLowFiresEverySecondMonth(t *testing.T) {
	c := NewController(config.Default().Staffing)
	s := State{Designers: 3}

	var counts []int
	for i := 0; i < 4; i++ {
		s, _ = c.Step(s, 0, 0.1)
		counts = append(counts, s.Designers)
	}
	want := []int{3, 2, 2, 1}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts = %v, want %v", counts, want)
		}
	}
}
