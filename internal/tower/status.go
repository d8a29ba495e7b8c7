package tower

import (
	"fmt"
	"math"
	"time"
)

// Action identifies a button on the action bar.
type Action string

const (
	ActionFocus    Action = "focus"
	ActionMeditate Action = "meditate"
	ActionIntent   Action = "intent"
	ActionStudy    Action = "study"
	ActionClimb    Action = "climb"
)

// ActionOrder is the base left-to-right order of the action bar.
var ActionOrder = []Action{ActionFocus, ActionMeditate, ActionIntent, ActionStudy, ActionClimb}

var actionPriority = map[Action]int{
	ActionClimb:    5,
	ActionStudy:    4,
	ActionMeditate: 3,
	ActionIntent:   2,
	ActionFocus:    1,
}

// ActionState is how one action should be drawn.
type ActionState struct {
	Action   Action
	Visible  bool
	Enabled  bool
	Featured bool
	Label    string
}

// Availability returns every action in display order. The highest
// priority visible and enabled action is featured and moved to the front.
func (e *Engine) Availability() []ActionState {
	st := e.State
	nextReq := LoreRequirement(st.Floor + 1)
	states := make([]ActionState, 0, len(ActionOrder))
	for _, a := range ActionOrder {
		s := ActionState{Action: a, Visible: true, Enabled: !st.Resting}
		switch a {
		case ActionFocus:
			s.Label = "Focus"
		case ActionMeditate:
			s.Label = "Meditate"
		case ActionIntent:
			s.Visible = st.Resting && st.Unlocked.Intent && e.Intent.Active
			remaining := e.IntentRemaining()
			s.Enabled = s.Visible && remaining > 0
			if remaining > 0 {
				s.Label = fmt.Sprintf("Intent (+%d Energy)", remaining)
			} else {
				s.Label = "Intent (Maxed)"
			}
		case ActionStudy:
			s.Label = "Study Glyphs"
			s.Visible = st.Unlocked.Study
			s.Enabled = s.Enabled && st.Mana >= e.Rules.StudyCost
		case ActionClimb:
			s.Label = "Climb"
			s.Visible = st.Unlocked.Climb
			s.Enabled = s.Enabled &&
				st.Energy >= float64(FloorCost(st.Floor)) &&
				st.Lore >= nextReq &&
				st.Floor < TopFloor(st.Tempo)
		}
		states = append(states, s)
	}

	best, bestPrio := -1, math.MinInt
	for i, s := range states {
		if !s.Visible || !s.Enabled {
			continue
		}
		if p := actionPriority[s.Action]; p > bestPrio {
			best, bestPrio = i, p
		}
	}
	if best < 0 {
		return states
	}
	states[best].Featured = true
	out := make([]ActionState, 0, len(states))
	out = append(out, states[best])
	out = append(out, states[:best]...)
	return append(out, states[best+1:]...)
}

// Featured returns the featured action, or "" if none is usable.
func (e *Engine) Featured() Action {
	for _, s := range e.Availability() {
		if s.Featured {
			return s.Action
		}
	}
	return ""
}

// RestRemaining is the whole seconds left in the current rest, rounded up.
func (e *Engine) RestRemaining() int {
	st := e.State
	if !st.Resting || st.RestUntil.IsZero() {
		return 0
	}
	d := st.RestUntil.Sub(e.now())
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

// Statuses lists the active effects for the status panel.
func (e *Engine) Statuses() []string {
	st := e.State
	var out []string
	if st.Resting {
		label := "Meditating"
		if st.RestMode == RestForced {
			label = "Forced Rest"
		}
		if r := e.RestRemaining(); r > 0 {
			out = append(out, fmt.Sprintf("%s – %ds remaining", label, r))
		} else {
			out = append(out, label)
		}
	}
	if st.Unlocked.Intent && e.Intent.Active {
		if r := e.IntentRemaining(); r > 0 {
			out = append(out, fmt.Sprintf("Intent channel open – +%d Energy available", r))
		} else {
			out = append(out, "Intent reserves maxed for this rest.")
		}
	}
	if !st.Resting && e.Intent.Energy > 0 {
		out = append(out, fmt.Sprintf("Intent energy banked: +%d", e.Intent.Energy))
	}
	if !st.StartTime.IsZero() && st.Floor > 0 {
		out = append(out, "Tempo sprint: "+FormatDuration(e.now().Sub(st.StartTime))+" elapsed")
	}
	if st.Floor >= TopFloor(st.Tempo) {
		out = append(out, "Tempo peak reached – prepare to reset the tower.")
	}
	if len(out) == 0 {
		out = append(out, "No active effects.")
	}
	return out
}

// NextFloorLine describes the lore gate of the next floor.
func (e *Engine) NextFloorLine() string {
	return fmt.Sprintf("Next floor requires Lore %d (you have %d).", LoreRequirement(e.State.Floor+1), e.State.Lore)
}

// FloorStats reports time spent on the floor and the tempo.
func (e *Engine) FloorStats() string {
	st := e.State
	now := e.now()
	since := func(t time.Time) time.Duration {
		if t.IsZero() {
			t = st.LastTick
		}
		if t.IsZero() {
			return 0
		}
		return now.Sub(t)
	}
	return fmt.Sprintf("Time on Floor: %s | Time on Tempo: %s (Top Floor: %d)",
		FormatDuration(since(st.FloorEnteredAt)), FormatDuration(since(st.TempoStartedAt)), TopFloor(st.Tempo))
}

// FormatDuration renders d as mm:ss. Negative durations render as 00:00.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
