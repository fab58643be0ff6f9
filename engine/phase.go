package engine

// Phase is the overall game phase
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlay
	PhasePaused
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "MENU"
	case PhasePlay:
		return "PLAY"
	case PhasePaused:
		return "PAUSED"
	case PhaseWon:
		return "WON"
	default:
		return "UNKNOWN"
	}
}

// CanTransition reports whether from→to is a legal game transition
// PhaseMachine does not enforce this; callers consult it before Set
func CanTransition(from, to Phase) bool {
	switch to {
	case PhasePlay:
		return from == PhaseMenu || from == PhasePaused
	case PhasePaused:
		return from == PhasePlay
	case PhaseWon:
		return from == PhasePlay
	default:
		return false
	}
}

// PhaseMachine holds the current phase and broadcasts transitions
type PhaseMachine struct {
	current   Phase
	listeners []func(from, to Phase)
}

// NewPhaseMachine starts in PhaseMenu
func NewPhaseMachine() *PhaseMachine {
	return &PhaseMachine{current: PhaseMenu}
}

// Set transitions unconditionally and notifies listeners in registration order
func (m *PhaseMachine) Set(p Phase) {
	from := m.current
	m.current = p
	for _, fn := range m.listeners {
		fn(from, p)
	}
}

// Get returns the current phase
func (m *PhaseMachine) Get() Phase {
	return m.current
}

// OnChange registers a transition listener
func (m *PhaseMachine) OnChange(fn func(from, to Phase)) {
	m.listeners = append(m.listeners, fn)
}
