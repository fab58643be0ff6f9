package puzzle

import (
	"strings"
	"time"

	"github.com/lixenwraith/lockdown/config"
	"github.com/lixenwraith/lockdown/feedback"
)

const (
	DisplayEmpty    = "----"
	DisplayUnlocked = "UNLOCKED"
	DisplayError    = "ERROR"
)

// Code is the access keypad: digits accumulate in a bounded buffer and are
// compared against the fixed code on submit
type Code struct {
	base

	code    string
	max     int
	buffer  string
	display string

	confirmDelay time.Duration
	errorDelay   time.Duration
}

// NewCode creates the keypad lock
func NewCode(code string, maxLen int, confirmDelay, errorDelay time.Duration, deps Deps) *Code {
	return &Code{
		base:         newBase(config.PuzzleKeypad, "Access Keypad", deps),
		code:         code,
		max:          maxLen,
		display:      DisplayEmpty,
		confirmDelay: confirmDelay,
		errorDelay:   errorDelay,
	}
}

// Press appends a digit, keeping only the most recent max characters
// Non-digits are rejected
func (c *Code) Press(d rune) bool {
	if c.solved || d < '0' || d > '9' {
		return false
	}
	c.click()

	c.buffer += string(d)
	if len(c.buffer) > c.max {
		c.buffer = c.buffer[len(c.buffer)-c.max:]
	}
	c.display = mask(c.buffer)
	return true
}

// Clear empties the buffer immediately
func (c *Code) Clear() {
	if c.solved {
		return
	}
	c.buffer = ""
	c.display = DisplayEmpty
	c.notify(feedback.CueError, "")
}

// Submit compares the buffer to the code
// A mismatch schedules a reset of buffer and display after the error window;
// digits typed inside that window are wiped by the reset
func (c *Code) Submit() bool {
	if c.solved {
		return false
	}

	if c.buffer == c.code {
		c.markSolved()
		c.display = DisplayUnlocked
		c.notify(feedback.CueSuccess, "Access granted.")
		c.after(c.confirmDelay, c.fireSolved)
		return true
	}

	c.log.Debug().Int("len", len(c.buffer)).Msg("wrong code")
	c.display = DisplayError
	c.notify(feedback.CueError, "Access denied.")
	c.after(c.errorDelay, func() {
		if c.solved {
			return
		}
		c.buffer = ""
		c.display = DisplayEmpty
	})
	return false
}

// Buffer returns the raw digits entered
func (c *Code) Buffer() string {
	return c.buffer
}

// Display returns what the keypad screen shows
func (c *Code) Display() string {
	return c.display
}

func (c *Code) Hint(level int) string {
	return pickHint(level,
		"Look for labels/posters with numbers around the room.",
		"The code is the rack label sequence: "+strings.Join(strings.Split(c.code, ""), "-")+".")
}

// AutoSolve types the code on a clean buffer and submits
func (c *Code) AutoSolve() {
	if c.solved {
		return
	}
	if c.buffer != "" {
		c.Clear()
	}
	for _, d := range c.code {
		c.Press(d)
	}
	c.Submit()
}

func mask(s string) string {
	if s == "" {
		return DisplayEmpty
	}
	return strings.Repeat("•", len(s))
}
