package tower

import "math"

// loreEpsilon absorbs float drift so that twenty 0.05 increments still
// carry into a whole point of lore.
const loreEpsilon = 1e-9

// Tick accrues passive resources for the wall time since the last tick.
// A clock that went backwards accrues nothing.
func (e *Engine) Tick() {
	now := e.now()
	elapsed := now.Sub(e.State.LastTick).Seconds()
	e.State.LastTick = now
	e.AccruePassive(elapsed)
}

// AccruePassive adds elapsed seconds worth of energy, mana and lore
// progress. Whole points of progress move into lore.
func (e *Engine) AccruePassive(elapsed float64) {
	if !(elapsed > 0) || math.IsInf(elapsed, 0) {
		return
	}
	st := e.State
	st.Energy += elapsed * e.Rules.EnergyRate
	st.Mana += elapsed * e.Rules.ManaRate
	st.LoreProgress += elapsed * e.Rules.LoreRate

	if st.LoreProgress+loreEpsilon >= 1 {
		gained := math.Floor(st.LoreProgress + loreEpsilon)
		st.Lore += int(gained)
		st.LoreProgress = math.Max(0, st.LoreProgress-gained)
		e.EvaluateUnlocks()
	}
}

// spendEnergy takes n energy, never below zero.
func (e *Engine) spendEnergy(n float64) {
	e.State.Energy = math.Max(0, e.State.Energy-n)
}

func (e *Engine) spendMana(n float64) {
	e.State.Mana = math.Max(0, e.State.Mana-n)
}

// drainEnergy loses up to limit whole points and reports how many were lost.
func (e *Engine) drainEnergy(limit int) int {
	lost := min(limit, int(math.Floor(e.State.Energy)))
	e.spendEnergy(float64(lost))
	return lost
}

func (e *Engine) drainMana(limit int) int {
	lost := min(limit, int(math.Floor(e.State.Mana)))
	e.spendMana(float64(lost))
	return lost
}

func (e *Engine) gainLore(n int) {
	e.State.Lore += n
	e.EvaluateUnlocks()
}

func floorInt(v float64) int { return int(math.Floor(v)) }
