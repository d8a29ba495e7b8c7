package tower

// floorEvents are the equally likely outcomes of a successful event roll.
var floorEvents = []func(e *Engine){
	func(e *Engine) {
		e.State.Energy += 2
		e.logf("You found a hidden energy spring! Energy +2 (Energy: %d)", floorInt(e.State.Energy))
	},
	func(e *Engine) {
		e.State.Mana += 2
		e.logf("A mana crystal glows nearby. Mana +2 (Mana: %d)", floorInt(e.State.Mana))
	},
	func(e *Engine) {
		e.State.Lore++
		e.logf("You discover ancient runes. Lore +1 (Lore: %d)", e.State.Lore)
		e.EvaluateUnlocks()
	},
	func(e *Engine) {
		lost := e.drainEnergy(2)
		e.logf("A sudden chill drains your strength. Energy -%d (Energy: %d)", lost, floorInt(e.State.Energy))
	},
	func(e *Engine) {
		lost := e.drainMana(2)
		e.logf("A magical backlash saps your mana. Mana -%d (Mana: %d)", lost, floorInt(e.State.Mana))
	},
	func(e *Engine) {
		e.forceRest()
	},
}

// Floor event indexes, in roll order.
const (
	EventEnergySpring = iota
	EventManaGlow
	EventRunes
	EventChill
	EventBacklash
	EventForcedRest
)

func (e *Engine) floorEvent() {
	floorEvents[e.Rand.Intn(len(floorEvents))](e)
}
