// Package status keeps per-session play statistics for the HUD overlay and logs
package status

import (
	"fmt"
	"sync/atomic"
)

// Counter keys written by the engine
const (
	BreakerPresses  = "power.presses"
	WrongOrders     = "power.wrong_orders"
	CodeSubmits     = "keypad.submits"
	CablePlacements = "cabling.placements"
	ControlChanges  = "thermal.changes"
	HintsShown      = "hints.shown"
	IdleNudges      = "hints.idle_nudges"
	EggRewards      = "egg.rewards"
	PuzzlesSolved   = "puzzles.solved"
)

// Label keys written by the engine
const (
	SessionID = "session.id"
	Phase     = "session.phase"
	Focus     = "session.focus"
)

// Registry groups the counters and labels of one session
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Labels   *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Labels:   NewMetricMap[AtomicString](),
	}
}

// Inc bumps a counter by one
func (r *Registry) Inc(key string) int64 {
	return r.Counters.Get(key).Add(1)
}

// Count reads a counter
func (r *Registry) Count(key string) int64 {
	return r.Counters.Get(key).Load()
}

// Set stores a label
func (r *Registry) Set(key, val string) {
	r.Labels.Get(key).Store(val)
}

// Label reads a label
func (r *Registry) Label(key string) string {
	return r.Labels.Get(key).Load()
}

// Lines renders every metric as "key: value", labels first, sorted by key
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.Labels.Count()+r.Counters.Count())
	r.Labels.Range(func(k string, v *AtomicString) {
		lines = append(lines, fmt.Sprintf("%s: %s", k, v.Load()))
	})
	r.Counters.Range(func(k string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s: %d", k, v.Load()))
	})
	return lines
}
