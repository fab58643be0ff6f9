package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/lockdown/clock"
)

// Timer accumulates elapsed play time, excluding paused intervals
type Timer struct {
	clock clock.Clock

	started bool
	running bool

	startTime      time.Time // shifted forward by every completed pause
	pauseStartTime time.Time
}

// NewTimer creates a stopped timer
func NewTimer(c clock.Clock) *Timer {
	return &Timer{clock: c}
}

// Start begins accumulation, only the first call has an effect
func (t *Timer) Start() {
	if t.started {
		return
	}
	t.started = true
	t.running = true
	t.startTime = t.clock.Now()
}

// Pause freezes accumulation, no-op unless running
func (t *Timer) Pause() {
	if !t.running {
		return
	}
	t.running = false
	t.pauseStartTime = t.clock.Now()
}

// Resume continues accumulation, no-op unless paused after Start
func (t *Timer) Resume() {
	if !t.started || t.running {
		return
	}
	t.startTime = t.startTime.Add(t.clock.Now().Sub(t.pauseStartTime))
	t.pauseStartTime = time.Time{}
	t.running = true
}

// Elapsed returns accumulated time regardless of running state
func (t *Timer) Elapsed() time.Duration {
	if !t.started {
		return 0
	}
	if t.running {
		return t.clock.Now().Sub(t.startTime)
	}
	return t.pauseStartTime.Sub(t.startTime)
}

// Running reports whether time is accumulating
func (t *Timer) Running() bool {
	return t.running
}

// FormatElapsed renders a duration as mm:ss, truncating partial seconds
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
