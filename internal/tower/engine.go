package tower

import (
	"errors"
	"fmt"
	"time"

	"mages-tower/internal/clock"
	"mages-tower/internal/config"
)

// Action rejections. Each one leaves every game field untouched; most also
// write a narrative line to the journal.
var (
	ErrResting         = errors.New("tower: resting")
	ErrAlreadyResting  = errors.New("tower: already resting")
	ErrLocked          = errors.New("tower: action locked")
	ErrTooTired        = errors.New("tower: not enough energy")
	ErrNeedMana        = errors.New("tower: not enough mana")
	ErrWardsReject     = errors.New("tower: not enough lore")
	ErrChoicePending   = errors.New("tower: path choice pending")
	ErrNoChoicePending = errors.New("tower: no path choice pending")
	ErrInvalidChoice   = errors.New("tower: invalid path choice")
	ErrIntentClosed    = errors.New("tower: intent channel closed")
)

// Rand is the randomness the engine consumes. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Engine applies player actions and passive accrual to a State. It is not
// safe for concurrent use; the owning controller serialises every call.
type Engine struct {
	State *State
	Rules config.Rules
	Clock clock.Clock
	Rand  Rand

	// Intent is the live intent session. Never persisted.
	Intent Intent
	// Pending is set while the floor 5 fork waits for ChoosePath.
	Pending *PathPrompt

	// OnEvent, if set, receives every emitted event synchronously.
	OnEvent func(Event)
}

// NewEngine wires an engine around st.
func NewEngine(st *State, rules config.Rules, clk clock.Clock, rng Rand) *Engine {
	return &Engine{State: st, Rules: rules, Clock: clk, Rand: rng}
}

func (e *Engine) now() time.Time { return e.Clock.Now() }

func (e *Engine) emit(t EventType, data any) {
	if e.OnEvent == nil {
		return
	}
	e.OnEvent(Event{At: e.now(), Type: t, Data: data})
}

// Log writes text to the journal, newest first.
func (e *Engine) Log(text string) {
	e.State.LogHistory = append([]string{JournalLine(e.now(), text)}, e.State.LogHistory...)
	e.emit(EventLogged, text)
}

func (e *Engine) logf(format string, args ...any) {
	e.Log(fmt.Sprintf(format, args...))
}

// ResetTransient drops everything that depends on a live timer: the rest,
// the intent session and any pending path choice.
func (e *Engine) ResetTransient() {
	e.State.ClearRest()
	e.endIntentSession()
	e.Pending = nil
}
