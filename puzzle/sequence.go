package puzzle

import (
	"strconv"
	"strings"

	"github.com/lixenwraith/lockdown/config"
	"github.com/lixenwraith/lockdown/feedback"
)

// Sequence is the power sequencer: breakers must be flipped in a fixed order
type Sequence struct {
	base

	expected []int
	progress []int

	// every activation is reported here before validation, correct or not
	observers []func(v int)
}

// NewSequence creates the lock for the given breaker order
func NewSequence(expected []int, deps Deps) *Sequence {
	return &Sequence{
		base:     newBase(config.PuzzlePower, "Power Sequencer", deps),
		expected: append([]int(nil), expected...),
		progress: make([]int, 0, len(expected)),
	}
}

// OnActivate registers an observer for every breaker activation
func (s *Sequence) OnActivate(fn func(v int)) {
	s.observers = append(s.observers, fn)
}

// Press flips breaker v, returns false once the lock is solved
func (s *Sequence) Press(v int) bool {
	if s.solved {
		return false
	}
	s.click()

	for _, fn := range s.observers {
		fn(v)
	}

	s.progress = append(s.progress, v)
	k := len(s.progress)
	s.log.Debug().Int("breaker", v).Int("step", k).Msg("breaker flipped")

	if s.progress[k-1] != s.expected[k-1] {
		s.progress = s.progress[:0]
		s.notify(feedback.CueError, "Wrong breaker order. Try again.")
		return true
	}

	if k == len(s.expected) {
		s.markSolved()
		s.notify(feedback.CueSuccess, "Power restored.")
		s.fireSolved()
	}
	return true
}

// Progress returns a copy of the correct prefix entered so far
func (s *Sequence) Progress() []int {
	return append([]int(nil), s.progress...)
}

// Breakers returns how many breakers the expected order spans
func (s *Sequence) Breakers() int {
	maxV := 0
	for _, v := range s.expected {
		if v > maxV {
			maxV = v
		}
	}
	return maxV
}

func (s *Sequence) Hint(level int) string {
	return pickHint(level, "Follow the BOOT ORDER poster.", "Exact order: "+joinInts(s.expected, " → "))
}

// AutoSolve presses the remainder of the expected order from the current prefix
func (s *Sequence) AutoSolve() {
	for !s.solved {
		s.Press(s.expected[len(s.progress)])
	}
}

func joinInts(vs []int, sep string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
