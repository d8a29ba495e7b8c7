// Package render draws the tower onto a tcell screen.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"mages-tower/internal/tower"
)

// Frame is everything one screen shows. The game builds it from the live
// state after every turn.
type Frame struct {
	Energy       float64
	Mana         float64
	Lore         int
	LoreProgress float64
	Floor        int
	Tempo        int
	TopFloor     int

	NextFloor  string
	FloorStats string
	Statuses   []string

	Actions []tower.ActionState
	// Running marks actions whose repeat loop or hold is in progress.
	Running map[tower.Action]bool

	Inventory map[string]int
	Journal   []string // newest first
	// JournalScroll skips that many of the newest entries.
	JournalScroll int

	Prompt string // non-empty while the floor 5 fork waits

	Readme       bool
	ReadmeScroll int
	Debug        string // JSON dump; empty hides the panel
}

// Button is the screen area of one action bar button.
type Button struct {
	Action  tower.Action
	X, Y, W int
	Enabled bool
}

// Renderer draws frames and remembers where the buttons went.
type Renderer struct {
	screen  tcell.Screen
	buttons []Button
	readme  readmeCache

	readmeMax  int
	journalMax int
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw renders f and shows it.
func (r *Renderer) Draw(f Frame) {
	r.screen.Clear()
	r.fill(styleBase)
	if f.Readme {
		r.buttons = r.buttons[:0]
		r.drawReadme(f.ReadmeScroll)
	} else {
		r.drawHUD(f)
	}
	r.screen.Show()
}

// HitTest returns the enabled button under (x, y).
func (r *Renderer) HitTest(x, y int) (tower.Action, bool) {
	for _, b := range r.buttons {
		if b.Enabled && y == b.Y && x >= b.X && x < b.X+b.W {
			return b.Action, true
		}
	}
	return "", false
}

// Buttons returns the buttons placed by the last frame, in drawing order.
func (r *Renderer) Buttons() []Button {
	return append([]Button(nil), r.buttons...)
}

// ReadmeMaxScroll is the furthest the last readme frame could scroll.
func (r *Renderer) ReadmeMaxScroll() int { return r.readmeMax }

// JournalMaxScroll is the furthest the last frame's journal could scroll.
func (r *Renderer) JournalMaxScroll() int { return r.journalMax }

func (r *Renderer) fill(style tcell.Style) {
	w, h := r.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// putStr draws s from (x, y), stopping before maxX, and returns the column
// after the last cell drawn. Zero-width runes such as variation selectors
// are dropped.
func (r *Renderer) putStr(x, y, maxX int, s string, style tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}

func (r *Renderer) drawHLine(y, x0, x1 int, style tcell.Style) {
	for x := x0; x < x1; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawVLine(x, y0, y1 int, style tcell.Style) {
	for y := y0; y < y1; y++ {
		r.screen.SetContent(x, y, '│', nil, style)
	}
}

// truncate clips s to w columns, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}
