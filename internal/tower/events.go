package tower

import "time"

// EventType describes the kind of event emitted by the engine.
type EventType string

const (
	EventLogged        EventType = "Logged"
	EventUnlocked      EventType = "Unlocked"
	EventRejected      EventType = "Rejected"
	EventRestStarted   EventType = "RestStarted"
	EventRestEnded     EventType = "RestEnded"
	EventItemFound     EventType = "ItemFound"
	EventFloorReached  EventType = "FloorReached"
	EventTempoAdvanced EventType = "TempoAdvanced"
)

// UnlockedData names the flag that flipped.
type UnlockedData struct {
	Flag string
}

// RestEndedData is the payload when a rest completes.
type RestEndedData struct {
	Mode RestMode
	Gain float64
}

// TempoAdvancedData is the payload for a tempo advance.
type TempoAdvancedData struct {
	From      int
	To        int
	TopFloor  int
	StartedAt time.Time // first climb of the finished tempo
	Elapsed   time.Duration
	Sprint    bool // finished inside the sprint window
}

// Event is a notification produced while applying an action.
type Event struct {
	At   time.Time
	Type EventType
	Data any
}
