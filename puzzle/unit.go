// Package puzzle implements the four lock variants of the server room
//
// Every unit owns its state exclusively, validates player input locally and
// reports through three channels: IsSolved (monotonic), a one-time solved
// callback, and advisory feedback sent to an injected sink. Delayed effects
// (confirmation and error windows) are scheduled on a clock.Scheduler so the
// tick loop, and tests, decide when they run.
package puzzle

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/lockdown/clock"
	"github.com/lixenwraith/lockdown/feedback"
)

// Unit is the capability shared by all lock variants
type Unit interface {
	ID() string
	Label() string
	IsSolved() bool
	// Hint returns level 1 (nudge) or level 2 (explicit) text
	Hint(level int) string
	// AutoSolve drives the unit to solved through its public input path
	AutoSolve()
	// OnSolved registers a callback fired exactly once when the unit is solved
	OnSolved(fn func(id string))
}

// Deps are the collaborators injected into every unit
type Deps struct {
	Sink      feedback.Sink
	Scheduler *clock.Scheduler
	Log       zerolog.Logger
}

// base carries the bookkeeping common to all units
type base struct {
	id    string
	label string

	solved    bool
	fired     bool
	listeners []func(string)

	sink  feedback.Sink
	sched *clock.Scheduler
	log   zerolog.Logger
}

func newBase(id, label string, deps Deps) base {
	sink := deps.Sink
	if sink == nil {
		sink = feedback.Discard
	}
	return base{
		id:    id,
		label: label,
		sink:  sink,
		sched: deps.Scheduler,
		log:   deps.Log.With().Str("puzzle", id).Logger(),
	}
}

func (b *base) ID() string     { return b.id }
func (b *base) Label() string  { return b.label }
func (b *base) IsSolved() bool { return b.solved }

func (b *base) OnSolved(fn func(id string)) {
	b.listeners = append(b.listeners, fn)
}

// markSolved flips the solved flag, false if already solved
func (b *base) markSolved() bool {
	if b.solved {
		return false
	}
	b.solved = true
	b.log.Info().Msg("solved")
	return true
}

// fireSolved invokes the solved listeners once per unit lifetime
func (b *base) fireSolved() {
	if b.fired {
		return
	}
	b.fired = true
	for _, fn := range b.listeners {
		fn(b.id)
	}
}

// after defers fn by delay, runs it immediately without a scheduler
func (b *base) after(delay time.Duration, fn func()) {
	if b.sched == nil || delay <= 0 {
		fn()
		return
	}
	b.sched.After(delay, fn)
}

func (b *base) notify(cue feedback.Cue, msg string) {
	b.sink.Notify(feedback.Feedback{Cue: cue, Message: msg})
}

func (b *base) click() {
	b.sink.Notify(feedback.Feedback{Cue: feedback.CueNeutral})
}

// pickHint selects the level 1 or level 2 text
func pickHint(level int, nudge, explicit string) string {
	if level >= 2 {
		return explicit
	}
	return nudge
}
