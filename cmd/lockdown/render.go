package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lockdown/engine"
	"github.com/lixenwraith/lockdown/feedback"
	"github.com/lixenwraith/lockdown/puzzle"
)

var (
	styleDefault = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleSolved  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleLit     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleLocked  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCursor  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleHint    = tcell.StyleDefault.Foreground(tcell.ColorLightSkyBlue)
	styleOK      = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleErr     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

func (a *App) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	a.originX = max(0, (w-a.layout.width)/2)
	a.originY = hudRows

	s := a.session
	if s.Phase() == engine.PhaseMenu {
		a.drawMenu(w, h)
		a.screen.Show()
		return
	}

	a.drawHUD(w)
	a.drawRoom()
	a.drawFooter(a.originY + a.layout.height)

	switch {
	case s.Phase() == engine.PhaseWon:
		a.drawWin(w, h)
	case s.Phase() == engine.PhasePaused:
		a.drawCentered(w, h, []string{"PAUSED", "", "P to resume  R to restart  Q to quit"}, styleTitle)
	case s.Panel() != "":
		a.drawPanel(w, h)
	}
	if a.showStatus {
		a.drawStatus(w)
	}
	a.screen.Show()
}

const rackStep = 8

var consoleLabels = map[string]string{
	engine.TargetKeypad:  "KEYPAD",
	engine.TargetCabling: "CABLES",
	engine.TargetThermal: "THERMAL",
}

func breakerNumber(id string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(id, "breaker-"))
	return n
}

func (a *App) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (a *App) frame(x, y, w, h int, style tcell.Style) {
	for i := x; i < x+w; i++ {
		a.screen.SetContent(i, y, '─', nil, style)
		a.screen.SetContent(i, y+h-1, '─', nil, style)
	}
	for j := y; j < y+h; j++ {
		a.screen.SetContent(x, j, '│', nil, style)
		a.screen.SetContent(x+w-1, j, '│', nil, style)
	}
	a.screen.SetContent(x, y, '┌', nil, style)
	a.screen.SetContent(x+w-1, y, '┐', nil, style)
	a.screen.SetContent(x, y+h-1, '└', nil, style)
	a.screen.SetContent(x+w-1, y+h-1, '┘', nil, style)
}

func (a *App) fill(x, y, w, h int) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			a.screen.SetContent(i, j, ' ', nil, styleDefault)
		}
	}
}

func (a *App) drawCentered(w, h int, lines []string, style tcell.Style) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	bw, bh := width+4, len(lines)+2
	x, y := (w-bw)/2, (h-bh)/2
	a.fill(x, y, bw, bh)
	a.frame(x, y, bw, bh, style)
	for i, l := range lines {
		a.text(x+2+(width-len([]rune(l)))/2, y+1+i, style, l)
	}
}

func (a *App) drawMenu(w, h int) {
	th := a.session.Config().Theme
	a.drawCentered(w, h, []string{
		th.Title,
		th.Subtitle,
		"",
		"Press any key to start",
		"",
		"Move: arrows/WASD  Interact: E  Hint: ?  Hints on/off: H",
		"Pause: P/Esc  Restart: R  Mute: M  Stats: I  Quit: Q",
	}, styleTitle)
}

func (a *App) drawHUD(w int) {
	s := a.session
	th := s.Config().Theme
	a.text(1, 0, styleTitle, th.Title)

	timer := "⏱ " + engine.FormatElapsed(s.Elapsed())
	a.text(w-len([]rune(timer))-1, 0, styleDefault, timer)

	solved := fmt.Sprintf("Systems online %d/%d", len(s.Units())-s.Remaining(), len(s.Units()))
	a.text(1, 1, styleDim, solved)
	if s.NeonMode() {
		a.text(len(solved)+3, 1, tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true), "MARGINHUNTER")
	}
}

// roomStyle is the wall color, neon once the hidden pattern is found
func (a *App) roomStyle() tcell.Style {
	if a.session.NeonMode() {
		return tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorTeal)
}

func (a *App) drawRoom() {
	s := a.session
	ox, oy := a.originX, a.originY
	a.frame(ox, oy, a.layout.width, a.layout.height, a.roomStyle())

	a.text(ox+2, oy+1, styleDim, "BOOT ORDER: "+joinDigits(s.Config().Sequence, "-"))

	focus, _ := s.Focus()
	lit := map[int]bool{}
	for _, v := range s.Power().Progress() {
		lit[v] = true
	}

	for _, b := range a.layout.boxes {
		t, ok := s.Target(b.ID)
		if !ok {
			continue
		}
		style := styleDefault
		label := t.Label
		switch b.ID {
		case engine.TargetDoor:
			style = styleLocked
			if s.Unlocked() {
				style = styleSolved
			}
			label = "EXIT"
		case engine.TargetKeypad, engine.TargetCabling, engine.TargetThermal:
			label = consoleLabels[b.ID]
			if u := a.unit(b.ID); u != nil && u.IsSolved() {
				style = styleSolved
			}
		default:
			n := breakerNumber(b.ID)
			label = fmt.Sprintf("BRK%d", n)
			if s.Power().IsSolved() {
				style = styleSolved
			} else if lit[n] {
				style = styleLit
			}
		}
		if focus.ID == b.ID {
			style = style.Reverse(true)
		}
		a.frame(ox+b.X, oy+b.Y, b.W, b.H, style)
		a.text(ox+b.X+1, oy+b.Y+1, style, truncate(label, b.W-2))
	}

	if door, ok := a.layout.find(engine.TargetDoor); ok {
		open := int(s.DoorProgress() * float64(door.H-2))
		for j := 0; j < open; j++ {
			a.text(ox+door.X+1, oy+door.Y+door.H-2-j, styleSolved, strings.Repeat("░", door.W-2))
		}
	}

	// rack labels spell out the access code
	for i, d := range s.Config().Code {
		x := 2 + i*rackStep
		if x+rackStep > a.layout.width-1 {
			break
		}
		a.text(ox+x, oy+a.layout.height-3, styleDim, "RACK "+string(d))
	}

	a.screen.SetContent(ox+a.cursorX, oy+a.cursorY, '+', nil, styleCursor)
}

func (a *App) unit(id string) puzzle.Unit {
	for _, u := range a.session.Units() {
		if u.ID() == id {
			return u
		}
	}
	return nil
}

func (a *App) drawFooter(y int) {
	s := a.session
	if f, ok := s.Focus(); ok {
		a.text(a.originX+1, y, styleDefault, "[E] "+f.Label)
	}
	if hint := s.Hint(); hint != "" {
		a.text(a.originX+1, y+1, styleHint, "Hint: "+hint)
	}
	if a.toast.Message != "" && a.clock.Now().Sub(a.toastAt) < toastDuration {
		style := styleDefault
		switch a.toast.Cue {
		case feedback.CueSuccess:
			style = styleOK
		case feedback.CueError:
			style = styleErr
		}
		a.text(a.originX+1, y+2, style, a.toast.Message)
	}
	help := "E interact  ? hint  H hints on/off  P pause  R restart  Q quit"
	if !s.HintsEnabled() {
		help += "  (hints off)"
	}
	a.text(a.originX+1, y+3, styleDim, help)
}

func (a *App) drawPanel(w, h int) {
	s := a.session
	var lines []string
	switch s.Panel() {
	case engine.TargetKeypad:
		lines = []string{
			"ACCESS KEYPAD",
			"",
			"[ " + s.Keypad().Display() + " ]",
			"",
			"0-9 type  Enter submit  Backspace clear  Esc close",
		}
	case engine.TargetCabling:
		lines = []string{"CABLE ROUTING", ""}
		placed := s.Cabling().Placed()
		for _, l := range s.Cabling().Labels() {
			port := "·"
			if p, ok := placed[l]; ok {
				port = fmt.Sprintf("%d", p)
			}
			mark := " "
			if l == a.cable {
				mark = ">"
			}
			lines = append(lines, fmt.Sprintf("%s cable %s -> port %s", mark, l, port))
		}
		lines = append(lines, "",
			fmt.Sprintf("Letter selects cable  1-%d plugs port  Esc close", s.Cabling().Ports()))
	case engine.TargetThermal:
		th := s.Thermal()
		band := th.Band()
		lines = []string{
			"THERMAL CONTROL",
			"",
			fmt.Sprintf("Temperature %.1f °C  target %g-%g", th.Temperature(), band.Min, band.Max),
			fmt.Sprintf("Stability %.1fs", th.Dwell().Seconds()),
			"",
		}
		for _, c := range puzzle.Controls {
			mark := " "
			if c == a.control {
				mark = ">"
			}
			lines = append(lines, fmt.Sprintf("%s %-12s %s %5.1f", mark, c, bar(th.Value(c), 20), th.Value(c)))
		}
		lines = append(lines, "", "Up/Down select  Left/Right ±5  -/+ ±1  Esc close")
	default:
		return
	}
	a.drawCentered(w, h, lines, styleTitle)
}

func (a *App) drawWin(w, h int) {
	s := a.session
	th := s.Config().Theme
	a.drawCentered(w, h, []string{
		th.WinTitle,
		th.WinSubtitle,
		"",
		"Time to escape: " + engine.FormatElapsed(s.FinalTime()),
		"",
		"R to restart  Q to quit",
	}, styleOK)
}

func (a *App) drawStatus(w int) {
	lines := a.session.Status().Lines()
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	x := w - width - 4
	a.fill(x, hudRows, width+4, len(lines)+2)
	a.frame(x, hudRows, width+4, len(lines)+2, styleDim)
	for i, l := range lines {
		a.text(x+2, hudRows+1+i, styleDim, l)
	}
}

func bar(v float64, width int) string {
	n := int(v / puzzle.ControlMax * float64(width))
	n = min(max(n, 0), width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func joinDigits(vs []int, sep string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, sep)
}
