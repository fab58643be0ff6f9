// Package hint maps the player's focus to two tiers of hint text and nudges
// an idle player with the explicit tier
package hint

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/lockdown/clock"
)

// Fallback is shown when nothing recognisable is focused
const Fallback = "Explore the panels. Press E to interact."

// Hinter produces level 1 or level 2 text, puzzle units satisfy it
type Hinter interface {
	Hint(level int) string
}

// HinterFunc adapts a function to Hinter
type HinterFunc func(level int) string

func (f HinterFunc) Hint(level int) string { return f(level) }

type category struct {
	keywords []string
	hinter   Hinter
}

// Dispatcher selects hint text by substring match on the focus label
// It never looks at puzzle correctness
type Dispatcher struct {
	categories []category

	enabled bool
	current string
	shown   int

	clock     clock.Clock
	idle      time.Duration
	lastInput time.Time

	log zerolog.Logger
}

// NewDispatcher creates a dispatcher with the idle watchdog armed from now
func NewDispatcher(c clock.Clock, idle time.Duration, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		enabled:   true,
		clock:     c,
		idle:      idle,
		lastInput: c.Now(),
		log:       log.With().Str("component", "hint").Logger(),
	}
}

// Register adds a category matched when the label contains any keyword
// Categories are tried in registration order
func (d *Dispatcher) Register(keywords []string, h Hinter) {
	d.categories = append(d.categories, category{keywords: keywords, hinter: h})
}

// Text resolves hint text for a focus label without displaying it
func (d *Dispatcher) Text(focusLabel string, level int) string {
	if focusLabel != "" {
		for _, c := range d.categories {
			for _, kw := range c.keywords {
				if strings.Contains(focusLabel, kw) {
					return c.hinter.Hint(level)
				}
			}
		}
	}
	return Fallback
}

// Show resolves and displays a hint, returns "" while hints are toggled off
func (d *Dispatcher) Show(focusLabel string, level int) string {
	if !d.enabled {
		return ""
	}
	d.current = d.Text(focusLabel, level)
	d.shown++
	d.log.Debug().Str("focus", focusLabel).Int("level", level).Msg("hint shown")
	return d.current
}

// Current returns the displayed hint, "" if none
func (d *Dispatcher) Current() string {
	return d.current
}

// Hide clears the displayed hint
func (d *Dispatcher) Hide() {
	d.current = ""
}

// Toggle flips hint visibility, hiding the panel when turned off
// Returns the new state
func (d *Dispatcher) Toggle() bool {
	d.enabled = !d.enabled
	if !d.enabled {
		d.Hide()
	}
	return d.enabled
}

// Enabled reports whether hints are shown
func (d *Dispatcher) Enabled() bool {
	return d.enabled
}

// Shown returns how many hints have been displayed
func (d *Dispatcher) Shown() int {
	return d.shown
}

// Touch records player input, re-arming the idle watchdog
func (d *Dispatcher) Touch() {
	d.lastInput = d.clock.Now()
}

// Check runs the idle watchdog once per tick
// After the idle duration without input it shows the level 2 hint for the
// current focus and re-arms; returns true when a hint was displayed
func (d *Dispatcher) Check(focusLabel string) bool {
	now := d.clock.Now()
	if now.Sub(d.lastInput) < d.idle {
		return false
	}
	d.lastInput = now
	return d.Show(focusLabel, 2) != ""
}
