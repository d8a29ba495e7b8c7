package game

import (
	"errors"
	"fmt"

	"mages-tower/assets"
	"mages-tower/internal/save"
	"mages-tower/internal/tower"
)

// Journal lines for the save commands.
const (
	lineSaveLoaded   = "Save loaded."
	lineManualLoaded = "Save loaded from storage."
	lineNoSave       = "No saved game was found."
	lineGameSaved    = "Game saved."
	lineExported     = "Save exported to %s."
	lineExportFailed = "Failed to export save file."
	lineImportFailed = "Failed to import save file."
	linePonderPrefix = "[PONDER] "
)

// probe reads the first stored record, or nil when there is none.
func (c *Controller) probe() map[string]any {
	ctx, cancel := c.storageCtx()
	defer cancel()
	raw, key, err := c.repo.Probe(ctx)
	if err != nil {
		if !errors.Is(err, save.ErrNoSave) {
			c.log.Warn("save: probe failed", "error", err)
		}
		return nil
	}
	c.log.Info("save: loaded", "key", key)
	return raw
}

// takeFlavored consumes the refresh marker.
func (c *Controller) takeFlavored() bool {
	ctx, cancel := c.storageCtx()
	defer cancel()
	return c.repo.TakeFlavored(ctx)
}

// apply installs st as the live game. Anything driven by a timer cannot
// survive the swap, so rests, holds and repeat loops are dropped. msg, if
// not empty, is logged before the unlocks are re-checked.
func (c *Controller) apply(st *tower.State, msg string) {
	for _, s := range []*timerSlot{&c.rest, &c.restCountdown, &c.hold, &c.focus, &c.study} {
		c.disarm(s)
	}
	st.LastTick = c.clock.Now()
	c.engine.State = st
	c.engine.ResetTransient()
	if msg != "" {
		c.engine.Log(msg)
	}
	c.engine.EvaluateUnlocks()
	c.readme = st.UI.ShowReadme
	c.dirty = true
}

// restart loads the stored game the way a fresh process does. When storage
// holds nothing, fallback (if any) is kept quietly instead of starting over.
func (c *Controller) restart(fallback *tower.State) {
	now := c.clock.Now()
	raw := c.probe()
	switch {
	case raw != nil:
		c.apply(save.Merge(tower.NewState(now), raw, now), c.loadedLine(lineSaveLoaded))
	case fallback != nil:
		c.apply(fallback, c.loadedLine(""))
	default:
		c.apply(tower.NewState(now), assets.NewJourney)
	}
	c.armClock()
}

// loadedLine is the awakening line after a deliberate refresh, def otherwise.
func (c *Controller) loadedLine(def string) string {
	if c.takeFlavored() {
		return assets.AwakenRefreshed
	}
	return def
}

// Save writes the game now.
func (c *Controller) Save() {
	c.turn("save", func() {
		if err := c.flush(); err != nil {
			c.log.Warn("save: manual save failed", "error", err)
			return
		}
		c.engine.Log(lineGameSaved)
	})
}

// Load replaces the live game with the stored one, merged over the current
// state. With nothing stored the game carries on untouched.
func (c *Controller) Load() {
	c.turn("load", func() {
		raw := c.probe()
		if raw == nil {
			c.engine.Log(lineNoSave)
			return
		}
		st := save.Merge(c.engine.State, raw, c.clock.Now())
		c.apply(st, c.loadedLine(lineManualLoaded))
	})
}

// Export writes the game as indented JSON to path, or to the configured
// export path when path is empty.
func (c *Controller) Export(path string) {
	if path == "" {
		path = c.exportPath
	}
	c.turn("export", func() {
		ctx, cancel := c.storageCtx()
		defer cancel()
		if err := c.repo.Export(ctx, c.engine.State, path); err != nil {
			c.log.Warn("save: export failed", "path", path, "error", err)
			c.engine.Log(lineExportFailed)
			return
		}
		c.engine.Log(fmt.Sprintf(lineExported, path))
	})
}

// Import merges the record at path over the live game. No load line is
// logged; an unreadable file logs a failure line and changes nothing.
func (c *Controller) Import(path string) {
	if path == "" {
		path = c.exportPath
	}
	c.turn("import", func() {
		ctx, cancel := c.storageCtx()
		defer cancel()
		raw, err := c.repo.ReadImport(ctx, path)
		if err != nil {
			c.log.Warn("save: import failed", "path", path, "error", err)
			c.engine.Log(lineImportFailed)
			return
		}
		c.apply(save.Merge(c.engine.State, raw, c.clock.Now()), "")
	})
}

// Reload saves, then restarts the game from storage as if the process had
// been relaunched. A flavored reload greets the player with the awakening
// line. Storage failures never stop the reload.
func (c *Controller) Reload(flavored bool) {
	c.turn("reload", func() { c.reload(flavored) })
}

func (c *Controller) reload(flavored bool) {
	c.disarmAll()
	err := c.flush()
	if err == nil && flavored {
		err = c.markFlavored()
	}
	if err != nil {
		c.log.Warn("save: reload could not persist", "error", err)
	}
	c.restart(c.engine.State.Clone())
}

func (c *Controller) markFlavored() error {
	ctx, cancel := c.storageCtx()
	defer cancel()
	if err := c.repo.MarkFlavored(ctx); err != nil {
		return fmt.Errorf("mark refresh: %w", err)
	}
	return nil
}

// Ponder muses on the tower, then performs a flavored reload.
func (c *Controller) Ponder() {
	c.turn("ponder", func() {
		c.engine.Log(linePonderPrefix + assets.PonderOpening)
		c.engine.Log(linePonderPrefix + assets.PonderQuips[c.rng.Intn(len(assets.PonderQuips))])
		err := c.flush()
		if err == nil {
			err = c.markFlavored()
		}
		if err != nil {
			c.log.Warn("save: ponder could not persist", "error", err)
			c.engine.Log(linePonderPrefix + assets.PonderFailed)
		}
		c.disarmAll()
		c.restart(c.engine.State.Clone())
	})
}
