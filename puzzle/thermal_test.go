package puzzle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/lockdown/config"
)

const (
	dwellStep      = 100 * time.Millisecond
	dwellThreshold = time.Second
)

func newTestThermal(h *harness) *Thermal {
	return NewThermal(config.Band{Min: 22, Max: 24}, dwellStep, dwellThreshold, confirmDelay, h.deps)
}

func TestTemperatureFormula(t *testing.T) {
	assert.InDelta(t, 25.0, Temperature(50, 50, 50), 1e-9)
	assert.InDelta(t, 20.0, Temperature(33.3, 33.3, 33.3), 0.05)
	assert.InDelta(t, 10.0, Temperature(0, 0, 0), 1e-9)
	assert.InDelta(t, 40.0, Temperature(100, 100, 100), 1e-9)
}

func TestTemperatureBoundsMatchConfig(t *testing.T) {
	assert.InDelta(t, config.ReachableMin, Temperature(ControlMin, ControlMin, ControlMin), 1e-9)
	assert.InDelta(t, config.ReachableMax, Temperature(ControlMax, ControlMax, ControlMax), 1e-9)
}

func TestThermalDefaultsOutsideBandNeverSolve(t *testing.T) {
	h := newHarness()
	th := newTestThermal(h)

	assert.InDelta(t, 25.0, th.Temperature(), 1e-9)
	for i := 0; i < 50; i++ {
		th.Set(Fan, 50)
	}
	assert.False(t, th.IsSolved())
	assert.Zero(t, th.Dwell())
}

// enterBand stays well above the band until the last call lands on 22.6
func enterBand(th *Thermal) {
	th.Set(Fan, 100)
	th.Set(Vent, 40)
	th.Set(Baffle, 40)
	th.Set(Fan, 45)
}

func TestThermalDwellSolvesOnce(t *testing.T) {
	h := newHarness()
	th := newTestThermal(h)
	solved := solvedCounter{}
	th.OnSolved(solved.hook)

	enterBand(th)
	assert.InDelta(t, 22.6, th.Temperature(), 1e-9)
	assert.Equal(t, dwellStep, th.Dwell())

	for i := 0; i < 8; i++ {
		th.Adjust(Vent, 0.1)
	}
	assert.Equal(t, 900*time.Millisecond, th.Dwell())
	assert.False(t, th.IsSolved())

	th.Adjust(Vent, 0.1)
	assert.True(t, th.IsSolved())
	assert.Equal(t, "Cooling stable.", h.lastMessage())
	assert.Zero(t, solved["thermal"], "callback waits for the confirmation window")

	h.advance(confirmDelay)
	assert.Equal(t, 1, solved["thermal"])

	assert.False(t, th.Set(Fan, 45))
	h.advance(time.Second)
	assert.Equal(t, 1, solved["thermal"])
}

func TestThermalLeavingBandResetsDwell(t *testing.T) {
	h := newHarness()
	th := newTestThermal(h)

	enterBand(th)
	for i := 0; i < 8; i++ {
		th.Adjust(Vent, 0.1)
	}
	assert.Equal(t, 900*time.Millisecond, th.Dwell())

	th.Set(Fan, 100)
	assert.Zero(t, th.Dwell(), "no partial credit across excursions")

	th.Set(Fan, 45)
	assert.Equal(t, dwellStep, th.Dwell())
	assert.False(t, th.IsSolved())
}

func TestThermalClampsControls(t *testing.T) {
	th := newTestThermal(newHarness())

	th.Set(Fan, 150)
	th.Set(Vent, -20)
	assert.Equal(t, ControlMax, th.Value(Fan))
	assert.Equal(t, ControlMin, th.Value(Vent))
	assert.False(t, th.Set(Control(7), 10))
}

func TestThermalAutoSolve(t *testing.T) {
	h := newHarness()
	th := newTestThermal(h)
	solved := solvedCounter{}
	th.OnSolved(solved.hook)

	th.AutoSolve()

	assert.True(t, th.IsSolved())
	assert.True(t, th.Band().Contains(th.Temperature()))
	h.advance(confirmDelay)
	assert.Equal(t, 1, solved["thermal"])
}

func TestThermalAutoSolveUnreachableBand(t *testing.T) {
	h := newHarness()
	th := NewThermal(config.Band{Min: 80, Max: 90}, dwellStep, dwellThreshold, confirmDelay, h.deps)

	assert.NotPanics(t, th.AutoSolve)
	assert.False(t, th.IsSolved())
}

func TestThermalHints(t *testing.T) {
	th := newTestThermal(newHarness())

	assert.Equal(t, "Use all three controls; changes are interdependent.", th.Hint(1))
	assert.Equal(t, "Aim for 22-24 °C by balancing fan/vent/baffle.", th.Hint(2))
	assert.Equal(t, "Fan RPM", Fan.String())
}

func TestUnitsImplementUnit(t *testing.T) {
	h := newHarness()
	units := []Unit{
		NewSequence([]int{1}, h.deps),
		newTestCode(h),
		NewMapping(cableMap, confirmDelay, h.deps),
		newTestThermal(h),
	}

	ids := make([]string, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ID())
		assert.False(t, u.IsSolved())
		u.AutoSolve()
		assert.True(t, u.IsSolved(), u.ID())
	}
	assert.Equal(t, config.Required, ids)
}
