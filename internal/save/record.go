// Package save converts game state to and from its portable JSON record and
// reads and writes that record through a storage.Store.
package save

import (
	"encoding/json"
	"maps"
	"slices"
	"time"

	"mages-tower/internal/tower"
)

// Record is the serialized game. Field names and the unix-millisecond
// timestamps are shared with saves exported by earlier versions of the game.
type Record struct {
	Energy          float64        `json:"energy"`
	Mana            float64        `json:"mana"`
	Lore            int            `json:"lore"`
	LoreProgress    float64        `json:"loreProgress"`
	Unlocked        UnlockRecord   `json:"unlocked"`
	LastTick        int64          `json:"lastTick"`
	Floor           int            `json:"floor"`
	Tempo           int            `json:"tempo"`
	StartTime       *int64         `json:"startTime"`
	FloorEnteredAt  int64          `json:"floorEnteredAt"`
	TempoStartedAt  int64          `json:"tempoStartedAt"`
	Resting         bool           `json:"resting"`
	RestMode        *string        `json:"restMode"`
	RestUntil       *int64         `json:"restUntil"`
	MeditationCount int            `json:"meditationCount"`
	Inventory       map[string]int `json:"inventory"`
	LogHistory      []string       `json:"logHistory"`
	UI              UIRecord       `json:"ui"`
}

// UnlockRecord holds the capability and first-use flags.
type UnlockRecord struct {
	Study    bool `json:"study"`
	Climb    bool `json:"climb"`
	Intent   bool `json:"intent"`
	Focus    bool `json:"focus"`
	Meditate bool `json:"meditate"`
}

// UIRecord holds persisted presentation toggles.
type UIRecord struct {
	ShowReadme bool `json:"showReadme"`
	ShowDebug  bool `json:"showDebug"`
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func optMillis(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// FromState snapshots st.
func FromState(st *tower.State) Record {
	r := Record{
		Energy:       st.Energy,
		Mana:         st.Mana,
		Lore:         st.Lore,
		LoreProgress: st.LoreProgress,
		Unlocked: UnlockRecord{
			Study:    st.Unlocked.Study,
			Climb:    st.Unlocked.Climb,
			Intent:   st.Unlocked.Intent,
			Focus:    st.Unlocked.Focus,
			Meditate: st.Unlocked.Meditate,
		},
		LastTick:        millis(st.LastTick),
		Floor:           st.Floor,
		Tempo:           st.Tempo,
		StartTime:       optMillis(st.StartTime),
		FloorEnteredAt:  millis(st.FloorEnteredAt),
		TempoStartedAt:  millis(st.TempoStartedAt),
		Resting:         st.Resting,
		RestUntil:       optMillis(st.RestUntil),
		MeditationCount: st.MeditationCount,
		Inventory:       maps.Clone(st.Inventory),
		LogHistory:      slices.Clone(st.LogHistory),
		UI:              UIRecord{ShowReadme: st.UI.ShowReadme, ShowDebug: st.UI.ShowDebug},
	}
	if st.RestMode != tower.RestNone {
		mode := string(st.RestMode)
		r.RestMode = &mode
	}
	if r.LogHistory == nil {
		r.LogHistory = []string{}
	}
	if r.Inventory == nil {
		r.Inventory = map[string]int{}
	}
	return r
}

// Encode serializes st compactly, as written to storage.
func Encode(st *tower.State) ([]byte, error) {
	return json.Marshal(FromState(st))
}

// EncodeIndent serializes st for export files.
func EncodeIndent(st *tower.State) ([]byte, error) {
	return json.MarshalIndent(FromState(st), "", "  ")
}
