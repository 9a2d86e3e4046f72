// Package staffing sizes the designer team with a hysteresis controller.
package staffing

import (
	"math"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

// State is the controller's memory between months.
type State struct {
	Designers int
	LowMonths int // consecutive months below the fire threshold
}

// Workload returns designer-months of work for the new websites.
// capacityBoost raises per-designer capacity, e.g. 0.2 for +20%.
func Workload(newWebsites model.TierCounts, capacity config.TierValues, capacityBoost float64) float64 {
	var w float64
	for _, t := range model.Tiers {
		c := capacity.Of(t) * (1 + capacityBoost)
		if c <= 0 {
			continue
		}
		w += float64(newWebsites[t]) / c
	}
	return w
}

// Required inflates workload by the buffer and rounds up.
func Required(workload, buffer float64) int {
	if workload <= 0 {
		return 0
	}
	return int(math.Ceil(workload * (1 + buffer)))
}

// Utilization is workload per designer, or the raw workload with no designers.
func Utilization(workload float64, designers int) float64 {
	if designers > 0 {
		return workload / float64(designers)
	}
	return workload
}

// Controller applies the hire/fire rules.
type Controller struct {
	cfg config.StaffingConfig
}

// NewController returns a controller for the given thresholds.
func NewController(cfg config.StaffingConfig) Controller {
	return Controller{cfg: cfg}
}

// Step evaluates one month. Rules apply in priority order: emergency hire,
// threshold hire, sustained low utilization fire, hold.
func (c Controller) Step(s State, required int, utilization float64) (State, string) {
	switch {
	case utilization > c.cfg.Emergency:
		need := int(math.Floor(utilization*float64(s.Designers))) + 1
		return State{Designers: max(required, need)}, model.StaffEmergencyHire

	case utilization > c.hireThreshold(s.Designers) && required > s.Designers:
		return State{Designers: required}, model.StaffHire

	case utilization < c.cfg.Fire && s.Designers > 0:
		s.LowMonths++
		if s.LowMonths >= c.cfg.FireAfterMonths {
			return State{Designers: s.Designers - 1}, model.StaffFire
		}
		return s, model.StaffHold
	}

	s.LowMonths = 0
	return s, model.StaffHold
}

func (c Controller) hireThreshold(designers int) float64 {
	if designers == 0 {
		return c.cfg.FirstHire
	}
	return c.cfg.SubsequentHire
}
