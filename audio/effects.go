package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// Cue shapes
const (
	clickFreq     = 600.0
	clickDuration = 60 * time.Millisecond
	clickAttack   = 2 * time.Millisecond
	clickRelease  = 40 * time.Millisecond

	successFreq     = 880.0
	successDuration = 120 * time.Millisecond
	successAttack   = 5 * time.Millisecond
	successRelease  = 80 * time.Millisecond

	errorFreq     = 220.0
	errorDuration = 160 * time.Millisecond
	errorAttack   = 5 * time.Millisecond
	errorRelease  = 60 * time.Millisecond
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a wave streamer that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 4.0*math.Abs(o.phase-0.5) - 1.0
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.attackSamples > 0 && e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly, log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(cfg *Config, st SoundType, freq float64, wave WaveType, duration, attack, release time.Duration) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	osc := NewOscillator(freq, duration, wave, rate)
	shaped := NewEnvelope(osc, duration, attack, release, rate)
	return newVolume(shaped, cfg.EffectVolumes[st]*cfg.MasterVolume)
}

// CreateClickSound generates the short square click for button presses
func CreateClickSound(cfg *Config) beep.Streamer {
	return tone(cfg, SoundClick, clickFreq, WaveSquare, clickDuration, clickAttack, clickRelease)
}

// CreateSuccessSound generates the triangle chime for accepted input
func CreateSuccessSound(cfg *Config) beep.Streamer {
	return tone(cfg, SoundSuccess, successFreq, WaveTriangle, successDuration, successAttack, successRelease)
}

// CreateErrorSound generates the saw buzz for rejected input
func CreateErrorSound(cfg *Config) beep.Streamer {
	return tone(cfg, SoundError, errorFreq, WaveSaw, errorDuration, errorAttack, errorRelease)
}

// GetSoundEffect returns the streamer for a sound type, nil if unknown
func GetSoundEffect(st SoundType, cfg *Config) beep.Streamer {
	switch st {
	case SoundClick:
		return CreateClickSound(cfg)
	case SoundSuccess:
		return CreateSuccessSound(cfg)
	case SoundError:
		return CreateErrorSound(cfg)
	default:
		return nil
	}
}
