package tower

import (
	"fmt"

	"mages-tower/assets"
)

// Focus converts energy into mana one whole unit at a time until less than
// one energy remains. It returns the number of units converted.
func (e *Engine) Focus() (int, error) {
	st := e.State
	if st.Resting {
		return 0, ErrResting
	}
	if st.Energy < 1 {
		e.reject("You are too tired to focus.")
		return 0, ErrTooTired
	}
	count := 0
	for st.Energy >= 1 {
		st.Energy--
		st.Mana++
		count++
	}
	e.gainLoreIfFirst("focus", assets.FirstFocus)
	e.logf("Focused %d times: Energy -%d (Energy: %d), Mana +%d (Mana: %d)",
		count, count, floorInt(st.Energy), count, floorInt(st.Mana))
	return count, nil
}

// CanStudy reports whether Study would convert at least one unit.
func (e *Engine) CanStudy() bool {
	st := e.State
	return !st.Resting && st.Unlocked.Study && st.Mana >= e.Rules.StudyCost
}

// Study spends StudyCost mana per lore until mana runs short. Unlocks are
// re-checked after every unit.
func (e *Engine) Study() (int, error) {
	st := e.State
	switch {
	case st.Resting:
		return 0, ErrResting
	case !st.Unlocked.Study:
		return 0, ErrLocked
	case st.Mana < e.Rules.StudyCost:
		return 0, ErrNeedMana
	}
	count := 0
	for st.Mana >= e.Rules.StudyCost {
		e.spendMana(e.Rules.StudyCost)
		e.gainLoreIfFirst("study", assets.FirstStudy)
		e.gainLore(1)
		count++
	}
	e.logf("You study ancient glyphs %d times. Mana -%d (Mana: %d), Lore +%d (Lore: %d)",
		count, count*int(e.Rules.StudyCost), floorInt(st.Mana), count, st.Lore)
	return count, nil
}

// Meditate starts a voluntary rest. The controller completes it with
// CompleteRest once RestDuration has passed.
func (e *Engine) Meditate() error {
	if e.State.Resting {
		e.reject("You are already meditating...")
		return ErrAlreadyResting
	}
	e.beginRest(RestMeditation)
	e.logf("You begin to meditate for %d seconds...", int(e.Rules.RestDuration.Seconds()))
	return nil
}

// forceRest starts an involuntary rest from a floor event.
func (e *Engine) forceRest() {
	e.Log("A mysterious force forces you to rest!")
	e.beginRest(RestForced)
}

func (e *Engine) beginRest(mode RestMode) {
	st := e.State
	st.Resting = true
	st.RestMode = mode
	st.RestUntil = e.now().Add(e.Rules.RestDuration)
	e.startIntentSession()
	e.emit(EventRestStarted, mode)
}

// CompleteRest ends the current rest and pays out. Meditation grants the
// base gain plus banked intent energy, counts toward the intent unlock and
// pays the meditate first-use bonus. A forced rest pays only banked intent.
// It returns the energy gained.
func (e *Engine) CompleteRest() float64 {
	st := e.State
	if !st.Resting {
		return 0
	}
	mode := st.RestMode
	bonus := float64(e.Intent.Energy)
	st.ClearRest()
	e.endIntentSession()

	var gain float64
	switch mode {
	case RestForced:
		gain = bonus
		st.Energy += gain
		if gain > 0 {
			e.logf("You recover from the forced rest. Intent Energy +%d (Energy: %d)", int(gain), floorInt(st.Energy))
		} else {
			e.Log("You recover from the forced rest.")
		}
	default:
		gain = e.Rules.MeditateGain + bonus
		st.Energy += gain
		e.logf("You feel renewed. Energy +%d (Energy: %d)", int(gain), floorInt(st.Energy))
		st.MeditationCount++
		e.EvaluateUnlocks()
		e.gainLoreIfFirst("meditate", assets.FirstMeditate)
	}
	e.emit(EventRestEnded, RestEndedData{Mode: mode, Gain: gain})
	return gain
}

// AddItem puts one item into the inventory.
func (e *Engine) AddItem(item string) {
	inv := e.State.Inventory
	inv[item]++
	e.logf("You found a %s! Inventory now: %s x%d", item, item, inv[item])
	e.emit(EventItemFound, item)
}

// UseItem consumes one item if any is held.
func (e *Engine) UseItem(item string) bool {
	inv := e.State.Inventory
	if inv[item] <= 0 {
		return false
	}
	inv[item]--
	e.logf("You used a %s. Inventory now: %s x%d", item, item, inv[item])
	return true
}

func (e *Engine) reject(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.Log(msg)
	e.emit(EventRejected, msg)
}
