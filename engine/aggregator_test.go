package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/lockdown/config"
)

func TestAggregatorRepeatedIdNeverUnlocks(t *testing.T) {
	a := NewAggregator(config.Required, zerolog.Nop())
	fired := 0
	a.OnUnlock(func() { fired++ })

	assert.True(t, a.MarkSolved(config.PuzzlePower))
	for i := 0; i < 3; i++ {
		assert.False(t, a.MarkSolved(config.PuzzlePower))
	}

	assert.Zero(t, fired)
	assert.False(t, a.Unlocked())
	assert.Equal(t, 3, a.Remaining())
}

func TestAggregatorUnlocksOnceWhenAllSolved(t *testing.T) {
	a := NewAggregator(config.Required, zerolog.Nop())
	fired := 0
	a.OnUnlock(func() { fired++ })

	order := []string{config.PuzzleThermal, config.PuzzlePower, config.PuzzleCabling, config.PuzzleKeypad}
	for i, id := range order {
		a.MarkSolved(id)
		if i < len(order)-1 {
			assert.Zero(t, fired, "unlock before %s", id)
		}
	}
	assert.Equal(t, 1, fired)
	assert.True(t, a.Unlocked())
	assert.Equal(t, order, a.Solved())

	// repeats and unrelated ids never re-fire
	a.MarkSolved(config.PuzzlePower)
	a.MarkSolved("bonus")
	assert.Equal(t, 1, fired)
	assert.Zero(t, a.Remaining())
}

func TestAggregatorIgnoresUnrelatedIdsForCompletion(t *testing.T) {
	a := NewAggregator([]string{"a", "b"}, zerolog.Nop())
	fired := 0
	a.OnUnlock(func() { fired++ })

	a.MarkSolved("a")
	a.MarkSolved("x")
	assert.Zero(t, fired)
	assert.True(t, a.IsSolved("x"))

	a.MarkSolved("b")
	assert.Equal(t, 1, fired)
}
