package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lockdown/clock"
	"github.com/lixenwraith/lockdown/config"
	"github.com/lixenwraith/lockdown/engine"
	"github.com/lixenwraith/lockdown/puzzle"
)

func newTestApp(t *testing.T) (*App, *clock.Mock, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 40)
	t.Cleanup(screen.Fini)

	mock := clock.NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	a, err := newApp(screen, config.Default(), mock, nil, zerolog.Nop())
	require.NoError(t, err)
	return a, mock, screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func typeRunes(a *App, s string) {
	for _, r := range s {
		a.handleEvent(runeKey(r))
	}
}

// focus puts the cursor on a target and lets the resolver see it
func focus(t *testing.T, a *App, id string) {
	t.Helper()
	b, ok := a.layout.find(id)
	require.True(t, ok, id)
	a.cursorX, a.cursorY = b.X+1, b.Y+1
	a.tick()
}

func screenText(screen tcell.SimulationScreen) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for i, c := range cells {
		if len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		} else {
			sb.WriteRune(' ')
		}
		if (i+1)%w == 0 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

func TestAppAnyKeyLeavesMenu(t *testing.T) {
	a, _, screen := newTestApp(t)

	a.draw()
	assert.Contains(t, screenText(screen), "DATA-CENTER LOCKDOWN")

	assert.True(t, a.handleEvent(runeKey('x')))
	assert.Equal(t, engine.PhasePlay, a.session.Phase())

	a.draw()
	assert.Contains(t, screenText(screen), "BOOT ORDER: 2-4-1-3")
}

func TestAppQuitKeys(t *testing.T) {
	a, _, _ := newTestApp(t)
	assert.False(t, a.handleEvent(runeKey('q')))
	assert.False(t, a.handleEvent(key(tcell.KeyCtrlC)))
}

func TestAppEscapePausesOutsidePanels(t *testing.T) {
	a, _, _ := newTestApp(t)
	require.True(t, a.handleEvent(runeKey('x')))
	require.Equal(t, engine.PhasePlay, a.session.Phase())

	assert.True(t, a.handleEvent(key(tcell.KeyEscape)))
	assert.Equal(t, engine.PhasePaused, a.session.Phase())

	assert.True(t, a.handleEvent(key(tcell.KeyEscape)))
	assert.Equal(t, engine.PhasePlay, a.session.Phase())
}

func TestAppBreakersViaCursor(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handleEvent(runeKey(' '))

	for _, n := range []int{2, 4, 1} {
		focus(t, a, engine.BreakerTarget(n))
		a.handleEvent(runeKey('e'))
	}
	assert.Equal(t, []int{2, 4, 1}, a.session.Power().Progress())

	focus(t, a, engine.BreakerTarget(3))
	a.handleEvent(key(tcell.KeyEnter))
	assert.True(t, a.session.Power().IsSolved())
}

func TestAppKeypadPanel(t *testing.T) {
	a, mock, screen := newTestApp(t)
	a.handleEvent(runeKey(' '))

	focus(t, a, engine.TargetKeypad)
	a.handleEvent(runeKey('e'))
	require.Equal(t, engine.TargetKeypad, a.session.Panel())

	typeRunes(a, "4269")
	a.draw()
	assert.Contains(t, screenText(screen), "••••")

	a.handleEvent(key(tcell.KeyEnter))
	assert.True(t, a.session.Keypad().IsSolved())

	mock.Advance(400 * time.Millisecond)
	a.tick()
	assert.Empty(t, a.session.Panel())
}

func TestAppKeypadEscapeClosesPanel(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handleEvent(runeKey(' '))

	focus(t, a, engine.TargetKeypad)
	a.handleEvent(runeKey('e'))
	typeRunes(a, "12")
	a.handleEvent(key(tcell.KeyBackspace2))
	assert.Empty(t, a.session.Keypad().Buffer())

	assert.True(t, a.handleEvent(key(tcell.KeyEscape)), "escape in a panel does not quit")
	assert.Empty(t, a.session.Panel())
}

func TestAppCablingPanel(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handleEvent(runeKey(' '))

	focus(t, a, engine.TargetCabling)
	a.handleEvent(runeKey('e'))
	require.Equal(t, engine.TargetCabling, a.session.Panel())

	typeRunes(a, "a2b4c1")
	assert.Equal(t, map[string]int{"A": 2, "B": 4, "C": 1}, a.session.Cabling().Placed())
	assert.Empty(t, a.cable)

	typeRunes(a, "d3")
	assert.True(t, a.session.Cabling().IsSolved())
}

func TestAppThermalPanel(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handleEvent(runeKey(' '))

	focus(t, a, engine.TargetThermal)
	a.handleEvent(runeKey('e'))
	require.Equal(t, engine.TargetThermal, a.session.Panel())

	a.handleEvent(key(tcell.KeyRight))
	assert.Equal(t, 55.0, a.session.Thermal().Value(puzzle.Fan))

	a.handleEvent(key(tcell.KeyDown))
	a.handleEvent(runeKey('-'))
	assert.Equal(t, 49.0, a.session.Thermal().Value(puzzle.Vent))

	a.handleEvent(key(tcell.KeyUp))
	a.handleEvent(key(tcell.KeyUp))
	assert.Equal(t, puzzle.Baffle, a.control, "selection wraps")
}

func TestAppRestartBuildsFreshSession(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handleEvent(runeKey(' '))
	before := a.session.ID()

	a.handleEvent(runeKey('r'))
	assert.NotEqual(t, before, a.session.ID())
	assert.Equal(t, engine.PhaseMenu, a.session.Phase())
}

func TestAppPauseOverlay(t *testing.T) {
	a, _, screen := newTestApp(t)
	a.handleEvent(runeKey(' '))
	a.handleEvent(runeKey('p'))
	require.Equal(t, engine.PhasePaused, a.session.Phase())

	a.draw()
	assert.Contains(t, screenText(screen), "PAUSED")
}

func TestAppMouseClickInteracts(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handleEvent(runeKey(' '))
	a.draw()

	b, ok := a.layout.find(engine.BreakerTarget(2))
	require.True(t, ok)
	x, y := a.originX+b.X+1, a.originY+b.Y+1

	a.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	a.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	assert.Equal(t, []int{2}, a.session.Power().Progress(), "held button fires once")

	a.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	assert.False(t, a.mouseDown)
}

func TestAppToastShowsFeedback(t *testing.T) {
	a, mock, screen := newTestApp(t)
	a.handleEvent(runeKey(' '))

	focus(t, a, engine.TargetDoor)
	a.handleEvent(runeKey('e'))
	a.draw()
	assert.Contains(t, screenText(screen), "Door is locked.")

	mock.Advance(toastDuration)
	a.draw()
	assert.NotContains(t, screenText(screen), "Door is locked.")
}

func TestAppDebugRunReachesWinScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 40)
	defer screen.Fini()

	cfg := config.Default()
	cfg.Debug = true
	mock := clock.NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	a, err := newApp(screen, cfg, mock, nil, zerolog.Nop())
	require.NoError(t, err)

	a.handleEvent(runeKey(' '))
	for i := 0; i < 40; i++ {
		mock.Advance(100 * time.Millisecond)
		a.tick()
	}
	require.Equal(t, engine.PhaseWon, a.session.Phase())

	a.draw()
	text := screenText(screen)
	assert.Contains(t, text, "SYSTEM RESTORED")
	assert.Contains(t, text, "Time to escape: 00:01")
}

func TestLoadConfigFlagsAndEnv(t *testing.T) {
	t.Setenv("LOCKDOWN_CODE", "1234")
	cfg, err := loadConfig("", true)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "1234", cfg.Code)

	t.Setenv("LOCKDOWN_CODE", "12ab")
	_, err = loadConfig("", false)
	assert.Error(t, err)

	_, err = loadConfig("does-not-exist.yaml", false)
	assert.Error(t, err)
}
