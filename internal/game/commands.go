package game

import (
	"time"

	"mages-tower/internal/tower"
)

// FocusPress converts energy once and keeps converting on every focus
// cadence until released, resting or out of energy. Pressing while the loop
// runs or while resting does nothing.
func (c *Controller) FocusPress() {
	c.turn("focus", func() {
		if c.engine.State.Resting || c.focus.armed() {
			return
		}
		c.engine.Focus()
		c.arm(&c.focus, "focus", c.rules.FocusCadence, c.focusStep)
	})
}

func (c *Controller) focusStep() {
	st := c.engine.State
	if st.Resting || st.Energy < 1 {
		return
	}
	c.engine.Focus()
	c.arm(&c.focus, "focus", c.rules.FocusCadence, c.focusStep)
}

// FocusRelease stops the focus loop.
func (c *Controller) FocusRelease() {
	c.turn("focus-release", func() { c.disarm(&c.focus) })
}

// StudyPress is FocusPress for study.
func (c *Controller) StudyPress() {
	c.turn("study", func() {
		if c.engine.State.Resting || c.study.armed() {
			return
		}
		c.engine.Study()
		c.arm(&c.study, "study", c.rules.StudyCadence, c.studyStep)
	})
}

func (c *Controller) studyStep() {
	if !c.engine.CanStudy() {
		return
	}
	c.engine.Study()
	c.arm(&c.study, "study", c.rules.StudyCadence, c.studyStep)
}

// StudyRelease stops the study loop.
func (c *Controller) StudyRelease() {
	c.turn("study-release", func() { c.disarm(&c.study) })
}

// Meditate begins a rest.
func (c *Controller) Meditate() {
	c.turn("meditate", func() { c.engine.Meditate() })
}

// armRest schedules the completion of the rest that just began, plus a
// once-a-second redraw for the countdown.
func (c *Controller) armRest() {
	d := c.engine.State.RestUntil.Sub(c.clock.Now())
	c.arm(&c.rest, "rest", d, c.finishRest)
	c.arm(&c.restCountdown, "rest-countdown", time.Second, c.countdown)
}

func (c *Controller) countdown() {
	if c.engine.State.Resting {
		c.arm(&c.restCountdown, "rest-countdown", time.Second, c.countdown)
	}
}

func (c *Controller) finishRest() {
	c.disarm(&c.restCountdown)
	c.disarm(&c.hold)
	c.engine.CompleteRest()
}

// Climb attempts the next floor. At the fork it leaves a path prompt
// pending; see ChoosePath.
func (c *Controller) Climb() {
	c.turn("climb", func() { c.engine.Climb() })
}

// ChoosePath answers the pending fork with "left" or "right". Anything else
// is rejected and the prompt stays open.
func (c *Controller) ChoosePath(choice string) {
	c.turn("choose-path", func() { c.engine.ChoosePath(tower.ParsePath(choice)) })
}

// PathPending reports whether the fork prompt is waiting for an answer.
func (c *Controller) PathPending() bool { return c.engine.Pending != nil }

// IntentPress starts an intent hold. Holding for the full hold duration
// fills the channel; releasing early counts as a click.
func (c *Controller) IntentPress() {
	c.turn("intent-press", func() {
		c.disarm(&c.hold)
		if c.engine.IntentPressStart() {
			c.arm(&c.hold, "intent-hold", c.rules.IntentHold, func() { c.engine.IntentHoldElapsed() })
		}
	})
}

// IntentRelease ends the press.
func (c *Controller) IntentRelease() {
	c.turn("intent-release", func() {
		c.disarm(&c.hold)
		c.engine.IntentPressEnd()
	})
}

// IntentCancel abandons the press without granting anything.
func (c *Controller) IntentCancel() {
	c.turn("intent-cancel", func() {
		c.disarm(&c.hold)
		c.engine.IntentCancel()
	})
}

// IntentClick is a press and an immediate release.
func (c *Controller) IntentClick() {
	c.turn("intent-click", func() {
		c.disarm(&c.hold)
		if c.engine.IntentPressStart() {
			c.engine.IntentPressEnd()
		}
	})
}

// ToggleReadme shows or hides the help overlay. The choice is saved.
func (c *Controller) ToggleReadme() {
	c.turn("toggle-readme", func() {
		c.readme = !c.readme
		c.engine.State.UI.ShowReadme = c.readme
		c.dirty = true
	})
}

// ToggleDebug shows or hides the debug panel. The choice is saved.
func (c *Controller) ToggleDebug() {
	c.turn("toggle-debug", func() {
		c.engine.State.UI.ShowDebug = !c.engine.State.UI.ShowDebug
		c.dirty = true
	})
}
