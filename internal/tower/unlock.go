package tower

import "mages-tower/assets"

// EvaluateUnlocks flips every capability flag whose threshold is met.
// Flags are never cleared here.
func (e *Engine) EvaluateUnlocks() {
	st := e.State
	if st.Lore >= e.Rules.StudyUnlock && !st.Unlocked.Study {
		st.Unlocked.Study = true
		e.Log(assets.UnlockStudy)
		e.emit(EventUnlocked, UnlockedData{Flag: "study"})
	}
	if st.Lore >= e.Rules.ClimbUnlock && !st.Unlocked.Climb {
		st.Unlocked.Climb = true
		e.Log(assets.UnlockClimb)
		e.emit(EventUnlocked, UnlockedData{Flag: "climb"})
	}
	if st.MeditationCount >= e.Rules.IntentUnlock && !st.Unlocked.Intent {
		st.Unlocked.Intent = true
		e.Log(assets.UnlockIntent)
		e.emit(EventUnlocked, UnlockedData{Flag: "intent"})
	}
}

// firstUseFlag maps an action category onto its first-use flag. "rest" is
// the old name of meditate and shares its flag. Study shares the gate flag,
// so its bonus is already spent by the time the action is usable.
func (u *Unlocks) firstUseFlag(action string) *bool {
	switch action {
	case "focus":
		return &u.Focus
	case "study":
		return &u.Study
	case "meditate", "rest":
		return &u.Meditate
	}
	return nil
}

// gainLoreIfFirst pays the one-time +1 lore the first time an action
// category succeeds.
func (e *Engine) gainLoreIfFirst(action, message string) {
	flag := e.State.Unlocked.firstUseFlag(action)
	if flag == nil || *flag {
		return
	}
	*flag = true
	e.Log(message)
	e.gainLore(1)
}
