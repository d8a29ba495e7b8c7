package render

import (
	"fmt"
	"math"
	"strings"

	"mages-tower/assets"
	"mages-tower/internal/tower"
)

// keyHints is the bottom line.
const keyHints = "f focus  s study  m meditate  i/I intent  c climb  p ponder  w save  o load  x/X export/import  ? help  d debug  q quit"

// drawHUD lays out the main screen top to bottom: title, resources,
// statuses, action bar, inventory, prompt, journal and key hints.
func (r *Renderer) drawHUD(f Frame) {
	w, h := r.screen.Size()
	y := 0

	title := IconTower + " The Mage's Tower"
	r.putStr(0, y, w, title, styleTitle)
	where := fmt.Sprintf("Tempo %d  Floor %d/%d", f.Tempo, f.Floor, f.TopFloor)
	r.putStr(max(0, w-len(where)), y, w, where, styleTitle)
	y++
	r.drawHLine(y, 0, w, styleRule)
	y++

	res := fmt.Sprintf("%s Energy %d   %s Mana %d   %s Lore %d (%d%%)",
		IconEnergy, floorInt(f.Energy), IconMana, floorInt(f.Mana), IconLore, f.Lore, int(f.LoreProgress*100))
	r.putStr(0, y, w, res, styleBase)
	y++
	r.putStr(0, y, w, f.NextFloor, styleDim)
	y++
	r.putStr(0, y, w, f.FloorStats, styleDim)
	y++
	r.drawHLine(y, 0, w, styleRule)
	y++

	for _, s := range f.Statuses {
		r.putStr(0, y, w, "• "+truncate(s, w-2), styleStatus)
		y++
	}
	y++

	y = r.drawActionBar(y, w, f)
	y++

	r.putStr(0, y, w, truncate(inventoryLine(f.Inventory), w), styleBase)
	y++
	if f.Prompt != "" {
		r.putStr(0, y, w, truncate(f.Prompt, w), stylePrompt)
		y++
	}
	r.drawHLine(y, 0, w, styleRule)
	y++

	bottom := h - 1
	journalW := w
	if f.Debug != "" {
		journalW = w / 2
		r.drawVLine(journalW, y, bottom, styleRule)
		r.drawDebug(journalW+2, y, w, bottom, f.Debug)
	}
	r.drawJournal(y, bottom, journalW, f.Journal, f.JournalScroll)
	r.putStr(0, h-1, w, truncate(keyHints, w), styleDim)
}

// drawActionBar draws one row of buttons in the order given, featured
// action first, and records their hit areas.
func (r *Renderer) drawActionBar(y, w int, f Frame) int {
	r.buttons = r.buttons[:0]
	x := 0
	featured := featuredOf(f.Actions)
	for _, a := range f.Actions {
		if !a.Visible {
			continue
		}
		label := fmt.Sprintf(" %s %s [%s] ", ActionIcons[a.Action], a.Label, ActionKeys[a.Action])
		style := styleButton
		switch {
		case !a.Enabled:
			style = styleDisabled
		case f.Running[a.Action]:
			style = styleActive
		case a.Action == featured:
			style = styleFeatured
		}
		end := r.putStr(x, y, w, label, style)
		if end == x {
			break
		}
		r.buttons = append(r.buttons, Button{Action: a.Action, X: x, Y: y, W: end - x, Enabled: a.Enabled})
		x = end + 1
	}
	return y + 1
}

func featuredOf(actions []tower.ActionState) tower.Action {
	for _, a := range actions {
		if a.Featured {
			return a.Action
		}
	}
	return ""
}

func inventoryLine(inv map[string]int) string {
	parts := make([]string, 0, len(assets.Items))
	for _, it := range assets.Items {
		parts = append(parts, fmt.Sprintf("%s %s ×%d", ItemIcons[it], it, inv[it]))
	}
	return IconBag + " " + strings.Join(parts, "  ")
}

// drawJournal fills rows [y0, y1) with journal entries, newest on top.
func (r *Renderer) drawJournal(y0, y1, w int, journal []string, scroll int) {
	rows := y1 - y0
	r.journalMax = max(0, len(journal)-rows)
	scroll = min(max(scroll, 0), r.journalMax)
	for i := 0; i < rows && scroll+i < len(journal); i++ {
		r.putStr(0, y0+i, w, truncate(journal[scroll+i], w), styleJournal)
	}
}

func (r *Renderer) drawDebug(x0, y0, x1, y1 int, dump string) {
	lines := strings.Split(dump, "\n")
	for i := 0; i < y1-y0 && i < len(lines); i++ {
		r.putStr(x0, y0+i, x1, truncate(lines[i], x1-x0), styleDebug)
	}
}

func floorInt(v float64) int { return int(math.Floor(v)) }
