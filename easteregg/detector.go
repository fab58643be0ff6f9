// Package easteregg watches the breaker activation stream for a hidden
// pattern entered within a sliding time window
package easteregg

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/lockdown/clock"
)

// historyCap is how many recent activations are kept
const historyCap = 4

type entry struct {
	value int
	at    time.Time
}

// Detector matches the last four activations against a pattern
// It does not deduplicate: every activation that completes a matching window fires
type Detector struct {
	pattern []int
	window  time.Duration
	clock   clock.Clock

	history []entry
	rewards []func()
	matches int

	log zerolog.Logger
}

// NewDetector creates a detector for pattern within window
func NewDetector(pattern []int, window time.Duration, c clock.Clock, log zerolog.Logger) *Detector {
	return &Detector{
		pattern: append([]int(nil), pattern...),
		window:  window,
		clock:   c,
		history: make([]entry, 0, historyCap+1),
		log:     log.With().Str("component", "easteregg").Logger(),
	}
}

// OnReward registers a side effect run on every match
func (d *Detector) OnReward(fn func()) {
	d.rewards = append(d.rewards, fn)
}

// Observe records an activation and returns true if it completed the pattern
func (d *Detector) Observe(v int) bool {
	now := d.clock.Now()
	d.history = append(d.history, entry{value: v, at: now})

	// Evict by age first, then by cap
	kept := d.history[:0]
	for _, e := range d.history {
		if now.Sub(e.at) <= d.window {
			kept = append(kept, e)
		}
	}
	d.history = kept
	if len(d.history) > historyCap {
		d.history = append(d.history[:0], d.history[len(d.history)-historyCap:]...)
	}

	if len(d.history) < historyCap || len(d.pattern) != historyCap {
		return false
	}
	for i, e := range d.history {
		if e.value != d.pattern[i] {
			return false
		}
	}

	d.matches++
	d.log.Info().Ints("pattern", d.pattern).Msg("hidden pattern matched")
	for _, fn := range d.rewards {
		fn()
	}
	return true
}

// History returns the values currently retained, oldest first
func (d *Detector) History() []int {
	out := make([]int, len(d.history))
	for i, e := range d.history {
		out[i] = e.value
	}
	return out
}

// Matches returns how many times the pattern has fired
func (d *Detector) Matches() int {
	return d.matches
}
