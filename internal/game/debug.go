package game

import (
	"encoding/json"

	"mages-tower/internal/save"
	"mages-tower/internal/tower"
)

type debugGame struct {
	Energy                   float64           `json:"energy"`
	Mana                     float64           `json:"mana"`
	Lore                     int               `json:"lore"`
	LoreProgress             float64           `json:"loreProgress"`
	Floor                    int               `json:"floor"`
	Tempo                    int               `json:"tempo"`
	TempoStartedAt           int64             `json:"tempoStartedAt"`
	StartTime                *int64            `json:"startTime"`
	LastTick                 int64             `json:"lastTick"`
	Resting                  bool              `json:"resting"`
	MeditationCount          int               `json:"meditationCount"`
	Unlocked                 save.UnlockRecord `json:"unlocked"`
	NextFloorLoreRequirement int               `json:"nextFloorLoreRequirement"`
	NextFloor                int               `json:"nextFloor"`
	FloorEnteredAt           int64             `json:"floorEnteredAt"`
	Inventory                map[string]int    `json:"inventory"`
	LogHistoryLength         int               `json:"logHistoryLength"`
	FeaturedAction           tower.Action      `json:"featuredAction"`
	UI                       save.UIRecord     `json:"ui"`
}

type debugGlobals struct {
	ReadmeActive         bool    `json:"readmeActive"`
	AutosavePending      bool    `json:"autosavePending"`
	IntentSessionEnergy  int     `json:"intentSessionEnergy"`
	IntentActive         bool    `json:"intentActive"`
	IntentHoldStart      *int64  `json:"intentHoldStart"`
	IntentHoldCompleted  bool    `json:"intentHoldCompleted"`
	PassiveLoreRate      float64 `json:"PASSIVE_LORE_RATE"`
	IntentUnlockMeds     int     `json:"INTENT_UNLOCK_MEDITATIONS"`
	IntentMaxBonus       int     `json:"INTENT_MAX_BONUS"`
	IntentClickBonus     int     `json:"INTENT_CLICK_BONUS"`
	IntentHoldDurationMS int64   `json:"INTENT_HOLD_DURATION"`
	AutoRefreshScheduled bool    `json:"autoRefreshScheduled"`
	FocusLoop            bool    `json:"focusLoop"`
	StudyLoop            bool    `json:"studyLoop"`
	StorageWrites        int     `json:"storageWrites"`
}

// DebugJSON dumps the game and the controller's transient values for the
// debug panel.
func (c *Controller) DebugJSON() string {
	st := c.engine.State
	rec := save.FromState(st)
	in := c.engine.Intent
	var holdStart *int64
	if !in.HoldStart.IsZero() {
		ms := in.HoldStart.UnixMilli()
		holdStart = &ms
	}
	dump := struct {
		Game    debugGame    `json:"game"`
		Globals debugGlobals `json:"globals"`
	}{
		Game: debugGame{
			Energy:                   st.Energy,
			Mana:                     st.Mana,
			Lore:                     st.Lore,
			LoreProgress:             st.LoreProgress,
			Floor:                    st.Floor,
			Tempo:                    st.Tempo,
			TempoStartedAt:           rec.TempoStartedAt,
			StartTime:                rec.StartTime,
			LastTick:                 rec.LastTick,
			Resting:                  st.Resting,
			MeditationCount:          st.MeditationCount,
			Unlocked:                 rec.Unlocked,
			NextFloorLoreRequirement: tower.LoreRequirement(st.Floor + 1),
			NextFloor:                st.Floor + 1,
			FloorEnteredAt:           rec.FloorEnteredAt,
			Inventory:                st.Inventory,
			LogHistoryLength:         len(st.LogHistory),
			FeaturedAction:           c.engine.Featured(),
			UI:                       rec.UI,
		},
		Globals: debugGlobals{
			ReadmeActive:         c.readme,
			AutosavePending:      c.dirty,
			IntentSessionEnergy:  in.Energy,
			IntentActive:         in.Active,
			IntentHoldStart:      holdStart,
			IntentHoldCompleted:  in.HoldCompleted,
			PassiveLoreRate:      c.rules.LoreRate,
			IntentUnlockMeds:     c.rules.IntentUnlock,
			IntentMaxBonus:       c.rules.IntentCap,
			IntentClickBonus:     c.rules.IntentClick,
			IntentHoldDurationMS: c.rules.IntentHold.Milliseconds(),
			AutoRefreshScheduled: c.refresh.armed(),
			FocusLoop:            c.focus.armed(),
			StudyLoop:            c.study.armed(),
			StorageWrites:        c.writes,
		},
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
