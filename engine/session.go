package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/lockdown/clock"
	"github.com/lixenwraith/lockdown/config"
	"github.com/lixenwraith/lockdown/easteregg"
	"github.com/lixenwraith/lockdown/feedback"
	"github.com/lixenwraith/lockdown/hint"
	"github.com/lixenwraith/lockdown/interact"
	"github.com/lixenwraith/lockdown/puzzle"
	"github.com/lixenwraith/lockdown/status"
)

// InputKind is a discrete player signal from the input-event source
type InputKind int

const (
	// InputActivity is any key or pointer activity with no other meaning
	InputActivity InputKind = iota
	InputInteract
	InputPause
	InputRestart
	InputHintToggle
	InputHint
	InputClose
)

// Interactable ids registered by every session
const (
	TargetKeypad  = config.PuzzleKeypad
	TargetCabling = config.PuzzleCabling
	TargetThermal = config.PuzzleThermal
	TargetDoor    = "door"
)

// BreakerTarget returns the interactable id of breaker n (1-based)
func BreakerTarget(n int) string {
	return fmt.Sprintf("breaker-%d", n)
}

const minBreakers = 4

// Deps are the collaborators a session is built on
type Deps struct {
	Clock  clock.Clock
	Sink   feedback.Sink
	Log    zerolog.Logger
	Status *status.Registry
}

// Session is one playthrough: it owns every engine component and routes
// input, ticks and puzzle events between them
// All methods must be called from the loop goroutine
type Session struct {
	id  string
	cfg *config.Config

	clock    clock.Clock
	sched    *clock.Scheduler
	phase    *PhaseMachine
	timer    *Timer
	resolver *interact.Resolver
	agg      *Aggregator
	egg      *easteregg.Detector
	hints    *hint.Dispatcher
	stats    *status.Registry
	sink     feedback.Sink

	power   *puzzle.Sequence
	keypad  *puzzle.Code
	cabling *puzzle.Mapping
	thermal *puzzle.Thermal
	units   []puzzle.Unit

	targets []string
	panel   string
	neon    bool

	doorOpening bool
	doorStart   time.Time
	finalTime   time.Duration

	onWin     []func(time.Duration)
	onRestart []func()
	onPanel   []func(string)

	log zerolog.Logger
}

// NewSession validates cfg and wires a fresh playthrough in PhaseMenu
func NewSession(cfg *config.Config, deps Deps) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	if deps.Clock == nil {
		deps.Clock = clock.NewMonotonic()
	}
	if deps.Sink == nil {
		deps.Sink = feedback.Discard
	}
	if deps.Status == nil {
		deps.Status = status.NewRegistry()
	}

	id := uuid.NewString()
	log := deps.Log.With().Str("session", id).Logger()
	sched := clock.NewScheduler(deps.Clock)

	s := &Session{
		id:       id,
		cfg:      cfg,
		clock:    deps.Clock,
		sched:    sched,
		phase:    NewPhaseMachine(),
		timer:    NewTimer(deps.Clock),
		resolver: interact.NewResolver(log),
		agg:      NewAggregator(config.Required, log),
		egg:      easteregg.NewDetector(cfg.Egg.Pattern, cfg.Egg.Window, deps.Clock, log),
		hints:    hint.NewDispatcher(deps.Clock, cfg.Timing.IdleHint, log),
		stats:    deps.Status,
		sink:     deps.Sink,
		log:      log,
	}

	unitDeps := puzzle.Deps{Sink: deps.Sink, Scheduler: sched, Log: log}
	t := cfg.Timing
	s.power = puzzle.NewSequence(cfg.Sequence, unitDeps)
	s.keypad = puzzle.NewCode(cfg.Code, cfg.CodeMaxLen, t.ConfirmDelay, t.ErrorDelay, unitDeps)
	s.cabling = puzzle.NewMapping(cfg.Mapping, t.ConfirmDelay, unitDeps)
	s.thermal = puzzle.NewThermal(cfg.Band, t.DwellStep, t.DwellThreshold, t.ConfirmDelay, unitDeps)
	s.units = []puzzle.Unit{s.power, s.keypad, s.cabling, s.thermal}

	if err := s.wire(); err != nil {
		return nil, err
	}

	s.stats.Set(status.SessionID, id)
	s.stats.Set(status.Phase, s.phase.Get().String())
	log.Info().Msg("session created")
	return s, nil
}

// wire connects components and registers interactables
func (s *Session) wire() error {
	for _, u := range s.units {
		u.OnSolved(s.unitSolved)
	}
	s.power.OnActivate(func(v int) { s.egg.Observe(v) })
	s.agg.OnUnlock(s.unlock)
	s.egg.OnReward(s.reward)

	s.phase.OnChange(func(from, to Phase) {
		s.stats.Set(status.Phase, to.String())
		s.log.Info().Stringer("from", from).Stringer("to", to).Msg("phase change")
	})
	s.resolver.OnEnter(func(i interact.Interactable) { s.stats.Set(status.Focus, i.Label) })
	s.resolver.OnLeave(func(interact.Interactable) { s.stats.Set(status.Focus, "") })

	s.hints.Register([]string{"Power", "Sequencer", "Breaker"}, s.power)
	s.hints.Register([]string{"Keypad"}, s.keypad)
	s.hints.Register([]string{"Cable"}, s.cabling)
	s.hints.Register([]string{"Thermal"}, s.thermal)

	breakers := s.power.Breakers()
	if breakers < minBreakers {
		breakers = minBreakers
	}
	for n := 1; n <= breakers; n++ {
		n := n
		if err := s.register(BreakerTarget(n), fmt.Sprintf("Power Breaker %d", n), func() { s.pressBreaker(n) }); err != nil {
			return err
		}
	}
	for _, u := range []puzzle.Unit{s.keypad, s.cabling, s.thermal} {
		u := u
		if err := s.register(u.ID(), u.Label(), func() { s.openPanel(u) }); err != nil {
			return err
		}
	}
	return s.register(TargetDoor, "Exit Door", s.tryDoor)
}

func (s *Session) register(id, label string, fn func()) error {
	if err := s.resolver.Register(id, label, fn); err != nil {
		return fmt.Errorf("register %s: %w", id, err)
	}
	s.targets = append(s.targets, id)
	return nil
}

// Input handles a discrete player signal
func (s *Session) Input(kind InputKind) {
	if kind == InputRestart {
		s.log.Info().Msg("restart requested")
		for _, fn := range s.onRestart {
			fn()
		}
		return
	}

	started := s.activity()
	if s.phase.Get() == PhaseWon {
		return
	}

	switch kind {
	case InputInteract:
		if s.phase.Get() == PhasePlay {
			s.resolver.TryInteract()
		}
	case InputPause:
		if !started {
			s.togglePause()
		}
	case InputHintToggle:
		s.hints.Toggle()
	case InputHint:
		if s.phase.Get() == PhasePlay && s.hints.Show(s.focusLabel(), 1) != "" {
			s.stats.Inc(status.HintsShown)
		}
	case InputClose:
		s.closePanel()
	}
}

// activity re-arms the idle watchdog and leaves the menu on first input
// Returns true if this input started play
func (s *Session) activity() bool {
	s.hints.Touch()
	if s.phase.Get() != PhaseMenu {
		return false
	}
	s.start()
	return true
}

func (s *Session) start() {
	s.phase.Set(PhasePlay)
	s.timer.Start()
	if s.cfg.Debug {
		s.log.Warn().Dur("delay", s.cfg.Timing.DebugDelay).Msg("debug auto-solve scheduled")
		s.sched.After(s.cfg.Timing.DebugDelay, s.AutoSolveAll)
	}
}

func (s *Session) togglePause() {
	switch s.phase.Get() {
	case PhasePlay:
		s.phase.Set(PhasePaused)
		s.timer.Pause()
	case PhasePaused:
		s.phase.Set(PhasePlay)
		s.timer.Resume()
		s.hints.Touch()
	}
}

// Tick advances the session by one frame given the picking signal
// Deferred effects are frozen while paused
func (s *Session) Tick(pickedID string) {
	switch s.phase.Get() {
	case PhasePaused, PhaseMenu:
		return
	}

	s.sched.Poll()
	if s.phase.Get() != PhasePlay {
		return
	}

	s.resolver.Update(pickedID)
	if s.hints.Check(s.focusLabel()) {
		s.stats.Inc(status.IdleNudges)
		s.stats.Inc(status.HintsShown)
	}
}

// playing gates puzzle input to PhasePlay, counting it as activity
func (s *Session) playing() bool {
	s.activity()
	return s.phase.Get() == PhasePlay
}

func (s *Session) pressBreaker(n int) {
	if s.power.IsSolved() {
		s.notify(feedback.CueNeutral, s.power.Label()+" already online.")
		return
	}
	s.stats.Inc(status.BreakerPresses)
	s.power.Press(n)
	if !s.power.IsSolved() && len(s.power.Progress()) == 0 {
		s.stats.Inc(status.WrongOrders)
	}
}

// KeypadPress types a digit on the access keypad
func (s *Session) KeypadPress(d rune) bool {
	return s.playing() && s.keypad.Press(d)
}

// KeypadClear clears the keypad buffer
func (s *Session) KeypadClear() {
	if s.playing() {
		s.keypad.Clear()
	}
}

// KeypadSubmit submits the keypad buffer
func (s *Session) KeypadSubmit() bool {
	if !s.playing() || s.keypad.IsSolved() {
		return false
	}
	s.stats.Inc(status.CodeSubmits)
	return s.keypad.Submit()
}

// PlaceCable plugs a cable into a port
func (s *Session) PlaceCable(label string, port int) bool {
	if !s.playing() {
		return false
	}
	ok := s.cabling.Place(label, port)
	if ok {
		s.stats.Inc(status.CablePlacements)
	}
	return ok
}

// SetControl moves a thermal control to an absolute value
func (s *Session) SetControl(c puzzle.Control, v float64) bool {
	if !s.playing() {
		return false
	}
	ok := s.thermal.Set(c, v)
	if ok {
		s.stats.Inc(status.ControlChanges)
	}
	return ok
}

// AdjustControl nudges a thermal control
func (s *Session) AdjustControl(c puzzle.Control, delta float64) bool {
	return s.SetControl(c, s.thermal.Value(c)+delta)
}

// AutoSolveAll drives every unit to solved through its input path
func (s *Session) AutoSolveAll() {
	s.log.Warn().Msg("auto-solving all puzzles")
	for _, u := range s.units {
		u.AutoSolve()
	}
}

func (s *Session) openPanel(u puzzle.Unit) {
	if u.IsSolved() {
		s.notify(feedback.CueNeutral, u.Label()+" already online.")
		return
	}
	s.panel = u.ID()
	for _, fn := range s.onPanel {
		fn(s.panel)
	}
}

func (s *Session) closePanel() {
	if s.panel == "" {
		return
	}
	s.panel = ""
	for _, fn := range s.onPanel {
		fn("")
	}
}

func (s *Session) tryDoor() {
	if s.agg.Unlocked() {
		s.notify(feedback.CueNeutral, "The exit is open.")
		return
	}
	s.notify(feedback.CueNeutral, s.cfg.Theme.DoorLocked)
}

func (s *Session) unitSolved(id string) {
	s.stats.Inc(status.PuzzlesSolved)
	if s.panel == id {
		s.closePanel()
	}
	s.agg.MarkSolved(id)
}

func (s *Session) unlock() {
	s.doorOpening = true
	s.doorStart = s.clock.Now()
	s.notify(feedback.CueSuccess, "Exit unlocked.")
	s.sched.After(s.cfg.Timing.DoorOpen, s.exitOpened)
}

// exitOpened runs when the door animation completes
func (s *Session) exitOpened() {
	s.doorOpening = false
	if !CanTransition(s.phase.Get(), PhaseWon) {
		return
	}
	s.timer.Pause()
	s.finalTime = s.timer.Elapsed()
	s.phase.Set(PhaseWon)
	s.log.Info().Dur("elapsed", s.finalTime).Msg("escaped")
	for _, fn := range s.onWin {
		fn(s.finalTime)
	}
}

func (s *Session) reward() {
	s.neon = true
	s.stats.Inc(status.EggRewards)
	s.notify(feedback.CueSuccess, "MARGINHUNTER unlocked: Cost Saved!")
}

func (s *Session) notify(cue feedback.Cue, msg string) {
	s.sink.Notify(feedback.Feedback{Cue: cue, Message: msg})
}

func (s *Session) focusLabel() string {
	if cur, ok := s.resolver.Current(); ok {
		return cur.Label
	}
	return ""
}

// OnWin registers a handler receiving the final elapsed time
func (s *Session) OnWin(fn func(time.Duration)) { s.onWin = append(s.onWin, fn) }

// OnRestart registers a handler for restart requests; the owner builds a new session
func (s *Session) OnRestart(fn func()) { s.onRestart = append(s.onRestart, fn) }

// OnPanel registers a handler told which panel opened, "" when closed
func (s *Session) OnPanel(fn func(string)) { s.onPanel = append(s.onPanel, fn) }

// OnPhase registers a phase transition listener
func (s *Session) OnPhase(fn func(from, to Phase)) { s.phase.OnChange(fn) }

// OnUnlock registers an exit unlock listener
func (s *Session) OnUnlock(fn func()) { s.agg.OnUnlock(fn) }

func (s *Session) ID() string                { return s.id }
func (s *Session) Config() *config.Config    { return s.cfg }
func (s *Session) Phase() Phase              { return s.phase.Get() }
func (s *Session) Elapsed() time.Duration    { return s.timer.Elapsed() }
func (s *Session) FinalTime() time.Duration  { return s.finalTime }
func (s *Session) Hint() string              { return s.hints.Current() }
func (s *Session) HintsEnabled() bool        { return s.hints.Enabled() }
func (s *Session) Panel() string             { return s.panel }
func (s *Session) NeonMode() bool            { return s.neon }
func (s *Session) Unlocked() bool            { return s.agg.Unlocked() }
func (s *Session) Solved() []string          { return s.agg.Solved() }
func (s *Session) Remaining() int            { return s.agg.Remaining() }
func (s *Session) Power() *puzzle.Sequence   { return s.power }
func (s *Session) Keypad() *puzzle.Code      { return s.keypad }
func (s *Session) Cabling() *puzzle.Mapping  { return s.cabling }
func (s *Session) Thermal() *puzzle.Thermal  { return s.thermal }
func (s *Session) Units() []puzzle.Unit      { return append([]puzzle.Unit(nil), s.units...) }
func (s *Session) Status() *status.Registry  { return s.stats }
func (s *Session) Targets() []string         { return append([]string(nil), s.targets...) }
func (s *Session) Pending() int              { return s.sched.Pending() }

// Focus returns the focused interactable
func (s *Session) Focus() (interact.Interactable, bool) {
	return s.resolver.Current()
}

// Target looks up a registered interactable
func (s *Session) Target(id string) (interact.Interactable, bool) {
	return s.resolver.Lookup(id)
}

// DoorProgress returns the exit animation progress in [0,1]
func (s *Session) DoorProgress() float64 {
	switch {
	case s.phase.Get() == PhaseWon:
		return 1
	case !s.doorOpening:
		return 0
	case s.cfg.Timing.DoorOpen <= 0:
		return 1
	}
	p := float64(s.clock.Now().Sub(s.doorStart)) / float64(s.cfg.Timing.DoorOpen)
	if p > 1 {
		p = 1
	}
	return p
}
