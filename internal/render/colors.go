package render

import (
	"github.com/gdamore/tcell/v2"

	"mages-tower/assets"
	"mages-tower/internal/tower"
)

// Styles used across the HUD.
var (
	styleBase     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleTitle    = styleBase.Foreground(tcell.ColorGold).Bold(true)
	styleRule     = styleBase.Foreground(tcell.ColorGray)
	styleDim      = styleBase.Foreground(tcell.ColorGray)
	styleStatus   = styleBase.Foreground(tcell.ColorLightCyan)
	styleJournal  = styleBase.Foreground(tcell.ColorLightYellow)
	stylePrompt   = styleBase.Foreground(tcell.ColorYellow).Bold(true)
	styleDebug    = styleBase.Foreground(tcell.ColorLightGreen)
	styleButton   = styleBase.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleFeatured = styleBase.Foreground(tcell.ColorBlack).Background(tcell.ColorGold).Bold(true)
	styleDisabled = styleBase.Foreground(tcell.ColorDarkGray).Background(tcell.ColorDimGray)
	styleActive   = styleBase.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGreen).Bold(true)
)

// Resource glyphs. Each is two columns wide.
const (
	IconEnergy = "⚡"
	IconMana   = "🔮"
	IconLore   = "📜"
	IconTower  = "🗼"
	IconBag    = "🎒"
)

// ItemIcons are keyed by item name.
var ItemIcons = map[string]string{
	assets.ItemEnergyPotion: "🧪",
	assets.ItemManaCrystal:  "💎",
	assets.ItemGlyphShard:   "🔷",
}

// ActionIcons decorate the action bar buttons.
var ActionIcons = map[tower.Action]string{
	tower.ActionFocus:    "🔥",
	tower.ActionMeditate: "🧘",
	tower.ActionIntent:   "💫",
	tower.ActionStudy:    "📖",
	tower.ActionClimb:    "🧗",
}

// ActionKeys are the keyboard shortcuts shown on each button.
var ActionKeys = map[tower.Action]string{
	tower.ActionFocus:    "f",
	tower.ActionMeditate: "m",
	tower.ActionIntent:   "i",
	tower.ActionStudy:    "s",
	tower.ActionClimb:    "c",
}
