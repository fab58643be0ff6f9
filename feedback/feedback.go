// Package feedback carries advisory player feedback from puzzle logic to whichever
// presentation collaborators are listening (HUD toast, audio tones)
package feedback

// Cue is an opaque feedback category, consumed by audio/visual collaborators
type Cue int

const (
	CueNeutral Cue = iota
	CueSuccess
	CueError
)

func (c Cue) String() string {
	switch c {
	case CueSuccess:
		return "success"
	case CueError:
		return "error"
	default:
		return "neutral"
	}
}

// Feedback is a single notification, Message may be empty for pure cues (key clicks)
type Feedback struct {
	Cue     Cue
	Message string
}

// Sink accepts feedback, implementations must not block
type Sink interface {
	Notify(Feedback)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Feedback)

func (f SinkFunc) Notify(fb Feedback) { f(fb) }

// Discard drops everything
var Discard Sink = SinkFunc(func(Feedback) {})

// Fanout forwards every notification to all sinks in order
type Fanout []Sink

func (f Fanout) Notify(fb Feedback) {
	for _, s := range f {
		if s != nil {
			s.Notify(fb)
		}
	}
}

// Recorder keeps every notification, used by the HUD toast and by tests
type Recorder struct {
	entries []Feedback
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(fb Feedback) {
	r.entries = append(r.entries, fb)
}

// Entries returns a copy of all notifications received
func (r *Recorder) Entries() []Feedback {
	out := make([]Feedback, len(r.entries))
	copy(out, r.entries)
	return out
}

// Last returns the most recent notification carrying a message
func (r *Recorder) Last() (Feedback, bool) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Message != "" {
			return r.entries[i], true
		}
	}
	return Feedback{}, false
}

// Count returns how many notifications carried the given cue
func (r *Recorder) Count(c Cue) int {
	n := 0
	for _, fb := range r.entries {
		if fb.Cue == c {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far
func (r *Recorder) Reset() {
	r.entries = r.entries[:0]
}
