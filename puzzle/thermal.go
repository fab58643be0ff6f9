package puzzle

import (
	"fmt"
	"time"

	"github.com/lixenwraith/lockdown/config"
	"github.com/lixenwraith/lockdown/feedback"
)

// Control identifies one of the three thermal inputs
type Control int

const (
	Fan Control = iota
	Vent
	Baffle
)

// Controls lists every control in display order
var Controls = []Control{Fan, Vent, Baffle}

func (c Control) String() string {
	switch c {
	case Fan:
		return "Fan RPM"
	case Vent:
		return "Vent Flow"
	case Baffle:
		return "Baffle Angle"
	default:
		return fmt.Sprintf("Control(%d)", int(c))
	}
}

const (
	ControlMin     = 0.0
	ControlMax     = 100.0
	controlInitial = 50.0
)

// Temperature is the fixed linear combination the controls feed
func Temperature(fan, vent, baffle float64) float64 {
	return 10 + 0.12*fan + 0.1*vent + 0.08*baffle
}

// Thermal is the cooling panel: the derived temperature must dwell inside
// the target band for a cumulative threshold without leaving it
type Thermal struct {
	base

	values [3]float64
	band   config.Band
	dwell  time.Duration

	step         time.Duration
	threshold    time.Duration
	confirmDelay time.Duration
}

// NewThermal creates the cooling lock, all controls start at 50
func NewThermal(band config.Band, step, threshold, confirmDelay time.Duration, deps Deps) *Thermal {
	return &Thermal{
		base:         newBase(config.PuzzleThermal, "Thermal Control", deps),
		values:       [3]float64{controlInitial, controlInitial, controlInitial},
		band:         band,
		step:         step,
		threshold:    threshold,
		confirmDelay: confirmDelay,
	}
}

// Set moves a control (clamped to [0,100]) and re-evaluates the temperature
// Each in-band change credits one step of dwell; leaving the band forfeits it all
func (t *Thermal) Set(c Control, v float64) bool {
	if t.solved || c < Fan || c > Baffle {
		return false
	}
	t.values[c] = clamp(v, ControlMin, ControlMax)

	temp := t.Temperature()
	if !t.band.Contains(temp) {
		t.dwell = 0
		return true
	}

	t.dwell += t.step
	if t.dwell >= t.threshold && t.markSolved() {
		t.notify(feedback.CueSuccess, "Cooling stable.")
		t.after(t.confirmDelay, t.fireSolved)
	}
	return true
}

// Adjust nudges a control by delta
func (t *Thermal) Adjust(c Control, delta float64) bool {
	if c < Fan || c > Baffle {
		return false
	}
	return t.Set(c, t.values[c]+delta)
}

// Value returns a control's current setting
func (t *Thermal) Value(c Control) float64 {
	if c < Fan || c > Baffle {
		return 0
	}
	return t.values[c]
}

// Temperature returns the derived scalar for the current settings
func (t *Thermal) Temperature() float64 {
	return Temperature(t.values[Fan], t.values[Vent], t.values[Baffle])
}

// Dwell returns the accumulated in-band time
func (t *Thermal) Dwell() time.Duration {
	return t.dwell
}

// Band returns the target band
func (t *Thermal) Band() config.Band {
	return t.band
}

func (t *Thermal) Hint(level int) string {
	return pickHint(level,
		"Use all three controls; changes are interdependent.",
		fmt.Sprintf("Aim for %g-%g °C by balancing fan/vent/baffle.", t.band.Min, t.band.Max))
}

// AutoSolve sets all three controls to the band midpoint and keeps
// re-applying them until enough dwell accrues
func (t *Thermal) AutoSolve() {
	mid := (t.band.Min + t.band.Max) / 2
	v := (mid - 10) / 0.3

	limit := int(t.threshold/t.step) + len(Controls) + 1
	for i := 0; i < limit && !t.solved; i++ {
		t.Set(Controls[i%len(Controls)], v)
	}
	if !t.solved {
		t.log.Warn().Float64("target", mid).Msg("band unreachable, auto-solve gave up")
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
