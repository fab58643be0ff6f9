package engine

import "github.com/rs/zerolog"

// Aggregator collects puzzle solved events and fires the exit unlock once
// every required puzzle is in the solved set
type Aggregator struct {
	required map[string]bool
	solved   map[string]bool
	order    []string

	unlocked bool
	onUnlock []func()

	log zerolog.Logger
}

// NewAggregator creates an aggregator waiting on the given puzzle ids
func NewAggregator(required []string, log zerolog.Logger) *Aggregator {
	a := &Aggregator{
		required: make(map[string]bool, len(required)),
		solved:   make(map[string]bool, len(required)),
		log:      log.With().Str("component", "aggregator").Logger(),
	}
	for _, id := range required {
		a.required[id] = true
	}
	return a
}

// OnUnlock registers the exit unlock handler
func (a *Aggregator) OnUnlock(fn func()) {
	a.onUnlock = append(a.onUnlock, fn)
}

// MarkSolved adds id to the solved set, returns true if the set grew
// Repeated and unrelated ids never re-fire the unlock
func (a *Aggregator) MarkSolved(id string) bool {
	if a.solved[id] {
		return false
	}
	a.solved[id] = true
	a.order = append(a.order, id)
	a.log.Info().Str("puzzle", id).Int("solved", a.count()).Int("required", len(a.required)).Msg("puzzle solved")

	if a.unlocked || a.count() < len(a.required) {
		return true
	}
	a.unlocked = true
	a.log.Info().Msg("exit unlocked")
	for _, fn := range a.onUnlock {
		fn()
	}
	return true
}

// count returns how many required ids are solved
func (a *Aggregator) count() int {
	n := 0
	for id := range a.required {
		if a.solved[id] {
			n++
		}
	}
	return n
}

// Solved returns the solved ids in the order they arrived
func (a *Aggregator) Solved() []string {
	return append([]string(nil), a.order...)
}

// IsSolved reports membership in the solved set
func (a *Aggregator) IsSolved(id string) bool {
	return a.solved[id]
}

// Remaining returns how many required puzzles are still unsolved
func (a *Aggregator) Remaining() int {
	return len(a.required) - a.count()
}

// Unlocked reports whether the unlock event has fired
func (a *Aggregator) Unlocked() bool {
	return a.unlocked
}
