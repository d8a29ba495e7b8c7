package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"mages-tower/assets"
	"mages-tower/internal/tower"
)

// ErrMalformed is returned for data that is not a JSON object.
var ErrMalformed = errors.New("save: malformed record")

// Decode parses data into a loosely typed record for Merge.
func Decode(data []byte) (map[string]any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: not an object", ErrMalformed)
	}
	return obj, nil
}

// Merge overlays raw onto a copy of base. Each field is taken only when it
// is present with the expected JSON type; otherwise the field keeps base's
// value or falls back to its default. Out-of-range numbers are clamped.
//
// Transient rest fields are copied as-is; callers that cannot resume the
// rest timer clear them afterwards.
func Merge(base *tower.State, raw map[string]any, now time.Time) *tower.State {
	st := base.Clone()

	if v, ok := number(raw, "energy"); ok {
		st.Energy = v
	}
	if v, ok := number(raw, "mana"); ok {
		st.Mana = v
	}
	if v, ok := number(raw, "lore"); ok {
		st.Lore = toInt(v)
	}
	st.LoreProgress = 0
	if v, ok := number(raw, "loreProgress"); ok {
		st.LoreProgress = v
	}
	if v, ok := number(raw, "floor"); ok {
		st.Floor = toInt(v)
	}
	if v, ok := number(raw, "tempo"); ok {
		st.Tempo = toInt(v)
	}
	if v, ok := raw["resting"].(bool); ok {
		st.Resting = v
	}
	if v, ok := raw["startTime"]; ok {
		switch t := v.(type) {
		case nil:
			st.StartTime = time.Time{}
		case float64:
			st.StartTime = stamp(t)
		}
	}
	if v, ok := number(raw, "lastTick"); ok {
		st.LastTick = stamp(v)
	}

	st.FloorEnteredAt = now
	if v, ok := number(raw, "floorEnteredAt"); ok {
		st.FloorEnteredAt = stamp(v)
	}
	st.TempoStartedAt = now
	if v, ok := number(raw, "tempoStartedAt"); ok {
		st.TempoStartedAt = stamp(v)
	}

	st.Unlocked = tower.Unlocks{}
	if m, ok := raw["unlocked"].(map[string]any); ok {
		st.Unlocked = mergeUnlocks(m)
	}

	if m, ok := raw["inventory"].(map[string]any); ok {
		inv := assets.DefaultInventory()
		for k, v := range m {
			if n, ok := v.(float64); ok {
				inv[k] = toInt(n)
			}
		}
		st.Inventory = inv
	}

	st.MeditationCount = 0
	if v, ok := number(raw, "meditationCount"); ok {
		st.MeditationCount = toInt(v)
	}

	st.UI = tower.UIPrefs{}
	if m, ok := raw["ui"].(map[string]any); ok {
		st.UI.ShowReadme, _ = m["showReadme"].(bool)
		st.UI.ShowDebug, _ = m["showDebug"].(bool)
	}

	st.LogHistory = []string{}
	if list, ok := raw["logHistory"].([]any); ok {
		hist := make([]string, 0, len(list))
		for _, v := range list {
			if s, ok := v.(string); ok {
				hist = append(hist, s)
			}
		}
		st.LogHistory = tower.NormalizeJournal(hist)
	}

	if st.Resting {
		if s, ok := raw["restMode"].(string); ok {
			st.RestMode = tower.RestMode(s)
		}
		if v, ok := number(raw, "restUntil"); ok {
			st.RestUntil = stamp(v)
		}
	}

	normalize(st)
	return st
}

// mergeUnlocks reads the flag object. "rest" is the older name of the
// meditate first-use flag.
func mergeUnlocks(m map[string]any) tower.Unlocks {
	flag := func(k string) bool {
		b, _ := m[k].(bool)
		return b
	}
	return tower.Unlocks{
		Study:    flag("study"),
		Climb:    flag("climb"),
		Intent:   flag("intent"),
		Focus:    flag("focus"),
		Meditate: flag("meditate") || flag("rest"),
	}
}

func normalize(st *tower.State) {
	st.Energy = math.Max(0, st.Energy)
	st.Mana = math.Max(0, st.Mana)
	st.Lore = max(0, st.Lore)
	st.Floor = max(0, st.Floor)
	st.Tempo = max(0, st.Tempo)
	st.MeditationCount = max(0, st.MeditationCount)
	if st.LoreProgress < 0 {
		st.LoreProgress = 0
	}
	if st.LoreProgress >= 1 {
		whole := math.Floor(st.LoreProgress)
		st.Lore = toInt(float64(st.Lore) + whole)
		st.LoreProgress -= whole
	}
	for k, n := range st.Inventory {
		if n < 0 {
			st.Inventory[k] = 0
		}
	}
}

func number(raw map[string]any, key string) (float64, bool) {
	v, ok := raw[key].(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// maxCount bounds every imported counter so huge values clamp instead of
// wrapping on conversion.
const maxCount = math.MaxInt32

func toInt(v float64) int {
	return int(math.Max(-maxCount, math.Min(maxCount, math.Floor(v))))
}

func stamp(ms float64) time.Time {
	return fromMillis(int64(ms))
}
