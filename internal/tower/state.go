// Package tower implements the progression core of the mage's tower: the
// resource ledger, unlock gate, player actions, floor/tempo advancement and
// the rest/intent sub-timer. Everything here is synchronous; timers live in
// the controller that owns the Engine.
package tower

import (
	"maps"
	"slices"
	"time"

	"mages-tower/assets"
)

// RestMode says why the player is resting. The zero value means not resting.
type RestMode string

const (
	RestNone       RestMode = ""
	RestMeditation RestMode = "meditation"
	RestForced     RestMode = "forced-rest"
)

// Unlocks are one-way capability flags. Study, Climb and Intent are set by
// the unlock gate; Focus and Meditate record that the first-use bonus of
// that action category has been paid.
type Unlocks struct {
	Study    bool
	Climb    bool
	Intent   bool
	Focus    bool
	Meditate bool
}

// UIPrefs are persisted presentation toggles.
type UIPrefs struct {
	ShowReadme bool
	ShowDebug  bool
}

// State is the whole persisted game.
type State struct {
	Energy       float64
	Mana         float64
	Lore         int
	LoreProgress float64 // in [0,1)

	Floor int
	Tempo int

	Unlocked Unlocks

	Resting   bool
	RestMode  RestMode
	RestUntil time.Time

	MeditationCount int
	Inventory       map[string]int
	LogHistory      []string // newest first

	StartTime      time.Time // zero until the first climb of a tempo
	FloorEnteredAt time.Time
	TempoStartedAt time.Time
	LastTick       time.Time

	UI UIPrefs
}

// NewState returns a fresh game at floor 0 with all clocks stamped at now.
func NewState(now time.Time) *State {
	return &State{
		Inventory:      assets.DefaultInventory(),
		FloorEnteredAt: now,
		TempoStartedAt: now,
		LastTick:       now,
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Inventory = maps.Clone(s.Inventory)
	c.LogHistory = slices.Clone(s.LogHistory)
	return &c
}

// ClearRest drops any in-flight rest. Used when the driving timer is gone.
func (s *State) ClearRest() {
	s.Resting = false
	s.RestMode = RestNone
	s.RestUntil = time.Time{}
}
