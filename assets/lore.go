package assets

// PonderQuips are the musings logged when the player stops to ponder.
// One is picked at random each time.
var PonderQuips = []string{
	"You trace the cracks between floors; they form unseen constellations.",
	"The tower hums softly, as if whispering a forgotten lullaby.",
	"A draft of ancient breath circles you, carrying the scent of old wars.",
	"Visions of staircases curling into infinity flicker behind your eyes.",
	"You sense the tower thinking back—quiet, patient, assessing.",
	"Walls breathe in tandem with you, their heartbeat slow and deep.",
	"The floor beneath your feet feels lighter, as if ready to rise.",
	"You recall advice from a forgotten mentor: \"Listen before you climb.\"",
	"Glyphs shimmer in your mind, rearranging themselves into new meanings.",
	"A distant bell tolls once; resonance lingers in your bones.",
}

// First-use lines, logged once per action category.
const (
	FirstFocus    = "You feel a pulse of magic. Mana flows at the cost of your strength."
	FirstStudy    = "You study the glyphs and glimpse deeper knowledge..."
	FirstMeditate = "Your mind clears and energy flows anew."
)

// Unlock lines, logged when a capability flag first flips.
const (
	UnlockStudy  = "You’ve unlocked the ability to Study Glyphs!"
	UnlockClimb  = "You feel the pull of the tower above you... You may now climb!"
	UnlockIntent = "Your meditations crystallize into intent. You can now channel extra energy while resting."
)

// Intent grant lines, keyed by how the grant was earned.
const (
	IntentHoldLine  = "You sustain your intent, drawing deeply on the stillness."
	IntentClickLine = "A burst of intent surges through you as you focus your will."
)

// Journal lines for loading and refreshing.
const (
	NewJourney      = "A new journey begins..."
	AwakenRefreshed = "You awaken, memories of your ascent swirling in your mind. (Game state restored after refresh)"
	PonderOpening   = "You pause your ascent to ponder the tower's mysteries."
	PonderFailed    = "Your reflections are interrupted; the tower resists being remembered."
)
