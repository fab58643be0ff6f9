package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/lockdown/audio"
	"github.com/lixenwraith/lockdown/clock"
	"github.com/lixenwraith/lockdown/config"
	"github.com/lixenwraith/lockdown/engine"
	"github.com/lixenwraith/lockdown/feedback"
	"github.com/lixenwraith/lockdown/puzzle"
	"github.com/lixenwraith/lockdown/status"
)

const (
	frameInterval = 16 * time.Millisecond
	toastDuration = 3 * time.Second
	hudRows       = 2
	controlStep   = 5.0
	controlFine   = 1.0
)

// App owns the terminal and the current session
type App struct {
	screen tcell.Screen
	clock  clock.Clock
	cfg    *config.Config
	sound  *audio.SoundManager
	log    zerolog.Logger

	session *engine.Session
	layout  *layout

	cursorX, cursorY int
	originX, originY int
	mouseDown        bool

	toast   feedback.Feedback
	toastAt time.Time

	cable      string
	control    puzzle.Control
	showStatus bool
	restart    bool
}

// newApp builds the first session; sound may be nil
func newApp(screen tcell.Screen, cfg *config.Config, clk clock.Clock, sound *audio.SoundManager, log zerolog.Logger) (*App, error) {
	a := &App{
		screen: screen,
		clock:  clk,
		cfg:    cfg,
		sound:  sound,
		log:    log,
	}
	if err := a.reset(); err != nil {
		return nil, err
	}
	return a, nil
}

// reset discards the current session and starts a fresh one in the menu
func (a *App) reset() error {
	sinks := feedback.Fanout{feedback.SinkFunc(a.onFeedback)}
	if a.sound != nil {
		sinks = append(sinks, a.sound)
	}

	s, err := engine.NewSession(a.cfg, engine.Deps{
		Clock:  a.clock,
		Sink:   sinks,
		Log:    a.log,
		Status: status.NewRegistry(),
	})
	if err != nil {
		return err
	}

	s.OnRestart(func() { a.restart = true })
	s.OnPanel(func(string) {
		a.cable = ""
		a.control = puzzle.Fan
	})
	s.OnWin(func(d time.Duration) {
		a.log.Info().Str("time", engine.FormatElapsed(d)).Msg("player escaped")
	})

	a.session = s
	a.layout = newLayout(s.Targets())
	a.cursorX, a.cursorY = a.layout.width/2, a.layout.height-3
	a.toast = feedback.Feedback{}
	a.showStatus = false
	a.restart = false
	return nil
}

func (a *App) onFeedback(fb feedback.Feedback) {
	if fb.Message == "" {
		return
	}
	a.toast = fb
	a.toastAt = a.clock.Now()
}

// picked returns the target under the cursor
func (a *App) picked() string {
	return a.layout.pick(a.cursorX, a.cursorY)
}

// tick advances the session one frame
func (a *App) tick() {
	a.session.Tick(a.picked())
}

// handleEvent returns false when the player quits
func (a *App) handleEvent(ev tcell.Event) bool {
	keep := true
	switch ev := ev.(type) {
	case *tcell.EventKey:
		keep = a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}

	if a.restart {
		if err := a.reset(); err != nil {
			a.log.Error().Err(err).Msg("restart failed")
			return false
		}
	}
	return keep
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}

	s := a.session
	if s.Panel() != "" && s.Phase() == engine.PhasePlay && a.panelKey(ev) {
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		s.Input(engine.InputPause)
	case tcell.KeyUp:
		a.move(0, -1)
	case tcell.KeyDown:
		a.move(0, 1)
	case tcell.KeyLeft:
		a.move(-1, 0)
	case tcell.KeyRight:
		a.move(1, 0)
	case tcell.KeyEnter:
		s.Input(engine.InputInteract)
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	default:
		s.Input(engine.InputActivity)
	}
	return true
}

func (a *App) handleRune(r rune) bool {
	s := a.session
	switch unicode.ToLower(r) {
	case 'q':
		return false
	case 'w':
		a.move(0, -1)
	case 's':
		a.move(0, 1)
	case 'a':
		a.move(-1, 0)
	case 'd':
		a.move(1, 0)
	case 'e', ' ':
		s.Input(engine.InputInteract)
	case 'p':
		s.Input(engine.InputPause)
	case 'r':
		s.Input(engine.InputRestart)
	case 'h':
		s.Input(engine.InputHintToggle)
	case '?':
		s.Input(engine.InputHint)
	case 'm':
		if a.sound != nil {
			a.sound.ToggleMute()
		}
		s.Input(engine.InputActivity)
	case 'i':
		a.showStatus = !a.showStatus
		s.Input(engine.InputActivity)
	default:
		s.Input(engine.InputActivity)
	}
	return true
}

// panelKey routes a key to the open panel, returns false if unconsumed
func (a *App) panelKey(ev *tcell.EventKey) bool {
	s := a.session
	if ev.Key() == tcell.KeyEscape {
		s.Input(engine.InputClose)
		return true
	}

	switch s.Panel() {
	case engine.TargetKeypad:
		switch ev.Key() {
		case tcell.KeyEnter:
			s.KeypadSubmit()
			return true
		case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
			s.KeypadClear()
			return true
		case tcell.KeyRune:
			return s.KeypadPress(ev.Rune())
		}

	case engine.TargetCabling:
		if ev.Key() != tcell.KeyRune {
			return false
		}
		r := ev.Rune()
		if r >= '0' && r <= '9' {
			if a.cable != "" {
				s.PlaceCable(a.cable, int(r-'0'))
				a.cable = ""
			}
			return true
		}
		label := string(unicode.ToUpper(r))
		for _, l := range s.Cabling().Labels() {
			if l == label {
				a.cable = label
				s.Input(engine.InputActivity)
				return true
			}
		}

	case engine.TargetThermal:
		n := puzzle.Control(len(puzzle.Controls))
		switch ev.Key() {
		case tcell.KeyUp, tcell.KeyBacktab:
			a.control = (a.control + n - 1) % n
			s.Input(engine.InputActivity)
			return true
		case tcell.KeyDown, tcell.KeyTab:
			a.control = (a.control + 1) % n
			s.Input(engine.InputActivity)
			return true
		case tcell.KeyLeft:
			s.AdjustControl(a.control, -controlStep)
			return true
		case tcell.KeyRight:
			s.AdjustControl(a.control, controlStep)
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case '-':
				s.AdjustControl(a.control, -controlFine)
				return true
			case '+', '=':
				s.AdjustControl(a.control, controlFine)
				return true
			}
		}
	}
	return false
}

func (a *App) move(dx, dy int) {
	a.cursorX, a.cursorY = a.layout.clamp(a.cursorX+dx, a.cursorY+dy)
	a.session.Input(engine.InputActivity)
}

// handleMouse moves the cursor to the pointer and interacts on click
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	rx, ry := x-a.originX, y-a.originY
	if rx >= 0 && rx < a.layout.width && ry >= 0 && ry < a.layout.height {
		a.cursorX, a.cursorY = a.layout.clamp(rx, ry)
	}

	pressed := ev.Buttons()&tcell.Button1 != 0
	if pressed && !a.mouseDown {
		a.session.Tick(a.picked())
		a.session.Input(engine.InputInteract)
	} else {
		a.session.Input(engine.InputActivity)
	}
	a.mouseDown = pressed
}

// run drives the frame ticker and the event poller until quit
func (a *App) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.tick()
			a.draw()
		}
	}
}
