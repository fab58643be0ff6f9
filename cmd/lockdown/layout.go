package main

import (
	"strings"

	"github.com/lixenwraith/lockdown/engine"
)

// Room geometry in cells, relative to the room origin
const (
	roomMinWidth = 64
	roomHeight   = 18

	breakerX    = 2
	breakerY    = 3
	breakerW    = 6
	breakerH    = 3
	breakerStep = 7

	consoleY = 9
	consoleH = 4

	doorW = 6
	doorH = 11
)

// box is the on-screen footprint of one interactable
type box struct {
	ID   string
	X, Y int
	W, H int
}

func (b box) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// layout places every session target in the room
type layout struct {
	width  int
	height int
	boxes  []box
}

// newLayout lays breakers out in a row, consoles below them and the door
// against the right wall; unknown ids are ignored
func newLayout(targets []string) *layout {
	breakers := 0
	for _, id := range targets {
		if strings.HasPrefix(id, "breaker-") {
			breakers++
		}
	}

	width := breakerX + breakers*breakerStep + doorW + 4
	if width < roomMinWidth {
		width = roomMinWidth
	}
	l := &layout{width: width, height: roomHeight}

	n := 0
	for _, id := range targets {
		switch {
		case strings.HasPrefix(id, "breaker-"):
			l.boxes = append(l.boxes, box{ID: id, X: breakerX + n*breakerStep, Y: breakerY, W: breakerW, H: breakerH})
			n++
		case id == engine.TargetKeypad:
			l.boxes = append(l.boxes, box{ID: id, X: 2, Y: consoleY, W: 12, H: consoleH})
		case id == engine.TargetCabling:
			l.boxes = append(l.boxes, box{ID: id, X: 16, Y: consoleY, W: 14, H: consoleH})
		case id == engine.TargetThermal:
			l.boxes = append(l.boxes, box{ID: id, X: 32, Y: consoleY, W: 14, H: consoleH})
		case id == engine.TargetDoor:
			l.boxes = append(l.boxes, box{ID: id, X: width - doorW - 2, Y: 3, W: doorW, H: doorH})
		}
	}
	return l
}

// pick returns the id under room cell (x, y), "" for empty floor
func (l *layout) pick(x, y int) string {
	for _, b := range l.boxes {
		if b.contains(x, y) {
			return b.ID
		}
	}
	return ""
}

// find returns the box of an id
func (l *layout) find(id string) (box, bool) {
	for _, b := range l.boxes {
		if b.ID == id {
			return b, true
		}
	}
	return box{}, false
}

// clamp keeps a cursor inside the room walls
func (l *layout) clamp(x, y int) (int, int) {
	if x < 1 {
		x = 1
	}
	if x > l.width-2 {
		x = l.width - 2
	}
	if y < 1 {
		y = 1
	}
	if y > l.height-2 {
		y = l.height - 2
	}
	return x, y
}
