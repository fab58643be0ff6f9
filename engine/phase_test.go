package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseMachineStartsInMenu(t *testing.T) {
	m := NewPhaseMachine()
	assert.Equal(t, PhaseMenu, m.Get())
	assert.Equal(t, "MENU", m.Get().String())
}

func TestPhaseMachineNotifiesInOrder(t *testing.T) {
	m := NewPhaseMachine()
	var seen []string
	m.OnChange(func(from, to Phase) { seen = append(seen, "a:"+from.String()+">"+to.String()) })
	m.OnChange(func(from, to Phase) { seen = append(seen, "b:"+from.String()+">"+to.String()) })

	m.Set(PhasePlay)
	m.Set(PhasePaused)

	assert.Equal(t, []string{
		"a:MENU>PLAY", "b:MENU>PLAY",
		"a:PLAY>PAUSED", "b:PLAY>PAUSED",
	}, seen)
	assert.Equal(t, PhasePaused, m.Get())
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Phase
		want     bool
	}{
		{PhaseMenu, PhasePlay, true},
		{PhasePlay, PhasePaused, true},
		{PhasePaused, PhasePlay, true},
		{PhasePlay, PhaseWon, true},
		{PhaseMenu, PhaseWon, false},
		{PhasePaused, PhaseWon, false},
		{PhaseWon, PhasePlay, false},
		{PhaseMenu, PhasePaused, false},
		{PhasePlay, PhaseMenu, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
