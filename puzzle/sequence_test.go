package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/lockdown/feedback"
)

func TestSequenceProperPrefixesStayUnsolved(t *testing.T) {
	expected := []int{2, 4, 1, 3}

	for n := 0; n < len(expected); n++ {
		h := newHarness()
		s := NewSequence(expected, h.deps)

		for _, v := range expected[:n] {
			s.Press(v)
		}

		assert.False(t, s.IsSolved(), "prefix length %d", n)
		assert.Len(t, s.Progress(), n)
		if n == 0 {
			assert.Empty(t, s.Progress())
		} else {
			assert.Equal(t, expected[:n], s.Progress())
		}
	}
}

func TestSequenceMismatchResets(t *testing.T) {
	h := newHarness()
	s := NewSequence([]int{2, 4, 1, 3}, h.deps)

	s.Press(2)
	s.Press(4)
	s.Press(3)

	assert.Empty(t, s.Progress())
	assert.False(t, s.IsSolved())
	assert.Equal(t, "Wrong breaker order. Try again.", h.lastMessage())
	assert.Equal(t, 1, h.rec.Count(feedback.CueError))

	// a fresh attempt after the reset still works
	for _, v := range []int{2, 4, 1, 3} {
		s.Press(v)
	}
	assert.True(t, s.IsSolved())
}

func TestSequenceSolvesOnce(t *testing.T) {
	h := newHarness()
	s := NewSequence([]int{2, 4, 1, 3}, h.deps)
	solved := solvedCounter{}
	s.OnSolved(solved.hook)

	for _, v := range []int{2, 4, 1, 3} {
		assert.True(t, s.Press(v))
	}

	assert.True(t, s.IsSolved())
	assert.Equal(t, 1, solved["power"], "solved callback fires synchronously")
	assert.Equal(t, "Power restored.", h.lastMessage())

	assert.False(t, s.Press(2), "presses after solve are ignored")
	s.AutoSolve()
	assert.Equal(t, 1, solved["power"])
	assert.True(t, s.IsSolved())
}

func TestSequenceObserversSeeEveryActivation(t *testing.T) {
	h := newHarness()
	s := NewSequence([]int{2, 4, 1, 3}, h.deps)

	var seen []int
	s.OnActivate(func(v int) { seen = append(seen, v) })

	for _, v := range []int{3, 1, 4, 2} {
		s.Press(v)
	}

	assert.Equal(t, []int{3, 1, 4, 2}, seen, "wrong presses still reach observers")
	assert.Equal(t, []int{2}, s.Progress(), "trailing 2 is a correct first step")
}

func TestSequenceAutoSolveContinuesFromPrefix(t *testing.T) {
	h := newHarness()
	s := NewSequence([]int{2, 4, 1, 3}, h.deps)
	solved := solvedCounter{}
	s.OnSolved(solved.hook)

	var seen []int
	s.OnActivate(func(v int) { seen = append(seen, v) })

	s.Press(2)
	s.AutoSolve()

	assert.True(t, s.IsSolved())
	assert.Equal(t, 1, solved["power"])
	assert.Equal(t, []int{2, 4, 1, 3}, seen, "auto-solve goes through Press")
	assert.Zero(t, h.rec.Count(feedback.CueError))
}

func TestSequenceHintsAndBreakers(t *testing.T) {
	s := NewSequence([]int{2, 4, 1, 3}, newHarness().deps)

	assert.Equal(t, "Follow the BOOT ORDER poster.", s.Hint(1))
	assert.Equal(t, "Exact order: 2 → 4 → 1 → 3", s.Hint(2))
	assert.Equal(t, 4, s.Breakers())
	assert.Equal(t, "power", s.ID())
	assert.Equal(t, "Power Sequencer", s.Label())
}
