package audio

import (
	"os"
	"strconv"
)

const defaultSampleRate = 44100

// Config controls cue synthesis and playback
type Config struct {
	Enabled       bool
	MasterVolume  float64
	EffectVolumes [soundTypeCount]float64
	SampleRate    int
}

// DefaultConfig returns audible defaults
func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MasterVolume:  0.6,
		EffectVolumes: [soundTypeCount]float64{0.5, 0.8, 0.7},
		SampleRate:    defaultSampleRate,
	}
}

// LoadConfig overlays LOCKDOWN_AUDIO, LOCKDOWN_VOLUME (0-100) and
// LOCKDOWN_SAMPLE_RATE onto the defaults, ignoring malformed values
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("LOCKDOWN_AUDIO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}

	if v := os.Getenv("LOCKDOWN_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MasterVolume = clampUnit(float64(n) / 100.0)
		}
	}

	if v := os.Getenv("LOCKDOWN_SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SampleRate = n
		}
	}

	return cfg
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
