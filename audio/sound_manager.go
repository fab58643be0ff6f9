package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/lockdown/feedback"
)

// SoundManager plays synthesized cues for engine feedback
// It satisfies feedback.Sink and degrades to silence without an audio device
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	played      [soundTypeCount]int

	log zerolog.Logger
}

// NewSoundManager creates a manager, call Initialize before cues are audible
func NewSoundManager(cfg *Config, log zerolog.Logger) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		muted: !cfg.Enabled,
		log:   log.With().Str("component", "audio").Logger(),
	}
}

// Initialize opens the speaker, a no-op when already initialized
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debug().Int("rate", sm.cfg.SampleRate).Msg("speaker ready")
	return nil
}

// Cleanup silences all cues
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Notify plays the cue for a feedback event
func (sm *SoundManager) Notify(fb feedback.Feedback) {
	sm.Play(SoundFor(fb.Cue))
}

// Play mixes in a cue, dropped when muted or uninitialized
func (sm *SoundManager) Play(st SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.muted || !sm.initialized {
		return
	}
	s := GetSoundEffect(st, sm.cfg)
	if s == nil {
		return
	}
	sm.played[st]++

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// SetMuted sets mute explicitly
func (sm *SoundManager) SetMuted(m bool) {
	sm.mu.Lock()
	sm.muted = m
	sm.mu.Unlock()
}

// Muted reports whether cues are suppressed
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Played returns how many cues of a type reached the mixer
func (sm *SoundManager) Played(st SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if st < 0 || st >= soundTypeCount {
		return 0
	}
	return sm.played[st]
}

// SoundFor maps a feedback cue to its sound
func SoundFor(c feedback.Cue) SoundType {
	switch c {
	case feedback.CueSuccess:
		return SoundSuccess
	case feedback.CueError:
		return SoundError
	default:
		return SoundClick
	}
}
