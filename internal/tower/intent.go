package tower

import (
	"time"

	"mages-tower/assets"
)

// Intent is the per-rest bonus energy accumulator.
type Intent struct {
	Active        bool
	Energy        int
	HoldStart     time.Time
	HoldCompleted bool
}

// IntentRemaining is the capacity left in the current session.
func (e *Engine) IntentRemaining() int {
	if r := e.Rules.IntentCap - e.Intent.Energy; r > 0 {
		return r
	}
	return 0
}

// CanUseIntent reports whether a press on the intent channel would bank
// anything.
func (e *Engine) CanUseIntent() bool {
	return e.State.Resting && e.State.Unlocked.Intent && e.Intent.Active && e.IntentRemaining() > 0
}

func (e *Engine) resetIntentHold() {
	e.Intent.HoldStart = time.Time{}
	e.Intent.HoldCompleted = false
}

func (e *Engine) startIntentSession() {
	e.resetIntentHold()
	if !e.State.Unlocked.Intent {
		e.Intent.Active = false
		return
	}
	e.Intent.Energy = 0
	e.Intent.Active = true
}

func (e *Engine) endIntentSession() {
	e.Intent = Intent{}
}

// IntentPressStart begins a press. It reports whether a hold timer of
// Rules.IntentHold should be armed; the caller owns that timer and calls
// IntentHoldElapsed when it fires.
func (e *Engine) IntentPressStart() bool {
	if !e.CanUseIntent() {
		return false
	}
	e.resetIntentHold()
	e.Intent.HoldStart = e.now()
	return true
}

// IntentHoldElapsed completes a sustained press by granting all remaining
// capacity.
func (e *Engine) IntentHoldElapsed() int {
	if e.Intent.HoldStart.IsZero() {
		return 0
	}
	e.Intent.HoldStart = time.Time{}
	if !e.CanUseIntent() {
		return 0
	}
	e.Intent.HoldCompleted = true
	return e.grantIntent(e.IntentRemaining(), assets.IntentHoldLine)
}

// IntentPressEnd finishes a press. A release before the hold completed
// counts as a click.
func (e *Engine) IntentPressEnd() int {
	completed := e.Intent.HoldCompleted
	e.resetIntentHold()
	if completed || !e.CanUseIntent() {
		return 0
	}
	return e.grantIntent(min(e.Rules.IntentClick, e.IntentRemaining()), assets.IntentClickLine)
}

// IntentCancel abandons a press without granting anything.
func (e *Engine) IntentCancel() {
	e.resetIntentHold()
}

func (e *Engine) grantIntent(amount int, line string) int {
	grant := min(amount, e.IntentRemaining())
	if grant <= 0 {
		return 0
	}
	e.Intent.Energy += grant
	e.logf("%s Intent stores +%d Energy (pending %d/%d).", line, grant, e.Intent.Energy, e.Rules.IntentCap)
	return grant
}
