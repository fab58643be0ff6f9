// Package config holds the immutable session-wide settings: the four puzzle
// configurations, the hidden pattern, timing windows and theme strings
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"
)

// Puzzle identifiers, also used as completion ids
const (
	PuzzlePower   = "power"
	PuzzleKeypad  = "keypad"
	PuzzleCabling = "cabling"
	PuzzleThermal = "thermal"
)

// Required lists every puzzle the exit waits for
var Required = []string{PuzzlePower, PuzzleKeypad, PuzzleCabling, PuzzleThermal}

// Band is an inclusive numeric target range
type Band struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max" validate:"gtefield=Min"`
}

// Temperature range the thermal controls can produce, all at 0 and all at 100
const (
	ReachableMin = 10.0
	ReachableMax = 40.0
)

// Reachable reports whether the band overlaps the producible temperature range
func (b Band) Reachable() bool {
	return b.Max >= ReachableMin && b.Min <= ReachableMax
}

// Contains reports whether v lies within the inclusive band
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Egg configures the hidden timed pattern on the breakers
type Egg struct {
	Pattern []int         `yaml:"pattern" validate:"len=4,dive,min=1,max=4"`
	Window  time.Duration `yaml:"window" validate:"gt=0"`
}

// Timing holds every delay the engine schedules
type Timing struct {
	ConfirmDelay   time.Duration `yaml:"confirm_delay" validate:"gte=0"`
	ErrorDelay     time.Duration `yaml:"error_delay" validate:"gte=0"`
	IdleHint       time.Duration `yaml:"idle_hint" validate:"gt=0"`
	DebugDelay     time.Duration `yaml:"debug_delay" validate:"gte=0"`
	DoorOpen       time.Duration `yaml:"door_open" validate:"gte=0"`
	DwellStep      time.Duration `yaml:"dwell_step" validate:"gt=0"`
	DwellThreshold time.Duration `yaml:"dwell_threshold" validate:"gt=0"`
}

// Theme carries presentation strings shown by the front end
type Theme struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	DoorLocked  string `yaml:"door_locked"`
	WinTitle    string `yaml:"win_title"`
	WinSubtitle string `yaml:"win_subtitle"`
}

// Config is loaded once before the session starts and never mutated during play
type Config struct {
	Theme       Theme          `yaml:"theme"`
	PuzzleOrder []string       `yaml:"puzzle_order"`
	Sequence    []int          `yaml:"sequence" validate:"min=1,dive,min=1,max=4"`
	Code        string         `yaml:"code" validate:"required,number"`
	CodeMaxLen  int            `yaml:"code_max_len" validate:"min=1"`
	Mapping     map[string]int `yaml:"mapping" validate:"min=1,dive,keys,required,endkeys,min=1"`
	Band        Band           `yaml:"band"`
	Egg         Egg            `yaml:"egg"`
	Timing      Timing         `yaml:"timing"`
	Debug       bool           `yaml:"debug"`
}

// Default returns the stock data-center configuration
func Default() *Config {
	return &Config{
		Theme: Theme{
			Name:        "Data-Center Lockdown",
			Title:       "DATA-CENTER LOCKDOWN",
			Subtitle:    "Restore systems • Unlock the door",
			DoorLocked:  "Door is locked. Solve all 4 puzzles.",
			WinTitle:    "SYSTEM RESTORED",
			WinSubtitle: "You escaped the server room.",
		},
		PuzzleOrder: []string{PuzzlePower, PuzzleKeypad, PuzzleCabling, PuzzleThermal},
		Sequence:    []int{2, 4, 1, 3},
		Code:        "4269",
		CodeMaxLen:  6,
		Mapping:     map[string]int{"A": 2, "B": 4, "C": 1, "D": 3},
		Band:        Band{Min: 22, Max: 24},
		Egg: Egg{
			Pattern: []int{3, 1, 4, 2},
			Window:  10 * time.Second,
		},
		Timing: Timing{
			ConfirmDelay:   400 * time.Millisecond,
			ErrorDelay:     400 * time.Millisecond,
			IdleHint:       60 * time.Second,
			DebugDelay:     500 * time.Millisecond,
			DoorOpen:       time.Second,
			DwellStep:      100 * time.Millisecond,
			DwellThreshold: time.Second,
		},
	}
}

// Labels returns the mapping's cable labels in sorted order
func (c *Config) Labels() []string {
	labels := make([]string, 0, len(c.Mapping))
	for l := range c.Mapping {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Clone returns a deep copy so callers can tweak a config without aliasing slices
func (c *Config) Clone() *Config {
	out := *c
	out.PuzzleOrder = append([]string(nil), c.PuzzleOrder...)
	out.Sequence = append([]int(nil), c.Sequence...)
	out.Egg.Pattern = append([]int(nil), c.Egg.Pattern...)
	out.Mapping = make(map[string]int, len(c.Mapping))
	for k, v := range c.Mapping {
		out.Mapping[k] = v
	}
	return &out
}

// ApplyEnv overrides selected fields from LOCKDOWN_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("LOCKDOWN_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOCKDOWN_DEBUG: %w", err)
		}
		c.Debug = b
	}
	if v := os.Getenv("LOCKDOWN_CODE"); v != "" {
		c.Code = v
	}
	return nil
}
