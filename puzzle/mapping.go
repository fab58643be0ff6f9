package puzzle

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lixenwraith/lockdown/config"
	"github.com/lixenwraith/lockdown/feedback"
)

// Mapping is the cable routing panel: each labelled cable goes into one port
type Mapping struct {
	base

	expected map[string]int
	labels   []string
	placed   map[string]int

	confirmDelay time.Duration
}

// NewMapping creates the routing lock for a label→port bijection
func NewMapping(expected map[string]int, confirmDelay time.Duration, deps Deps) *Mapping {
	m := &Mapping{
		base:         newBase(config.PuzzleCabling, "Cable Routing", deps),
		expected:     make(map[string]int, len(expected)),
		placed:       make(map[string]int, len(expected)),
		confirmDelay: confirmDelay,
	}
	for k, v := range expected {
		m.expected[k] = v
		m.labels = append(m.labels, k)
	}
	sort.Strings(m.labels)
	return m
}

// Place plugs cable label into port, overwriting any earlier placement
// Validation runs once every label has been placed; a wrong mapping keeps
// the placements so the player can correct them one at a time
func (m *Mapping) Place(label string, port int) bool {
	if m.solved {
		return false
	}
	if _, ok := m.expected[label]; !ok || port < 1 || port > m.Ports() {
		return false
	}
	m.click()

	m.placed[label] = port
	m.log.Debug().Str("cable", label).Int("port", port).Msg("cable placed")

	if len(m.placed) < len(m.expected) {
		return true
	}

	for l, want := range m.expected {
		if m.placed[l] != want {
			m.notify(feedback.CueError, "Wrong mapping. Try again.")
			return true
		}
	}

	m.markSolved()
	m.notify(feedback.CueSuccess, "Cabling correct.")
	m.after(m.confirmDelay, m.fireSolved)
	return true
}

// Placed returns a copy of the current assignment
func (m *Mapping) Placed() map[string]int {
	out := make(map[string]int, len(m.placed))
	for k, v := range m.placed {
		out[k] = v
	}
	return out
}

// Labels returns the cable labels in sorted order
func (m *Mapping) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Ports returns the number of ports, numbered from 1
func (m *Mapping) Ports() int {
	return len(m.expected)
}

func (m *Mapping) Hint(level int) string {
	pairs := make([]string, len(m.labels))
	for i, l := range m.labels {
		pairs[i] = fmt.Sprintf("%s→%d", l, m.expected[l])
	}
	return pickHint(level, "Match labels by color/numbering.", strings.Join(pairs, ", "))
}

// AutoSolve plugs every cable into its expected port in label order
func (m *Mapping) AutoSolve() {
	for _, l := range m.labels {
		if m.solved {
			return
		}
		m.Place(l, m.expected[l])
	}
}
