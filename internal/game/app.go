package game

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"mages-tower/internal/render"
	"mages-tower/internal/tower"
)

const pathPrompt = "You reach Floor 5: Choose your path (left/right). Press l or r."

// App runs one game on one screen. Input, timer callbacks and drawing all
// happen on the goroutine that calls Run.
type App struct {
	screen   tcell.Screen
	renderer *render.Renderer
	ctrl     *Controller

	posted chan func()
	done   chan struct{}

	journalScroll int
	readmeScroll  int

	intentDown bool         // keyboard intent hold in progress
	mouseDown  tower.Action // button held with the mouse
}

// NewApp wires a controller to screen. Timer callbacks are posted to the
// Run loop unless opts.Dispatch says otherwise.
func NewApp(screen tcell.Screen, opts Options) *App {
	a := &App{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		posted:   make(chan func(), 64),
		done:     make(chan struct{}),
	}
	if opts.Dispatch == nil {
		opts.Dispatch = a.post
	}
	a.ctrl = New(opts)
	a.ctrl.OnChange = a.draw
	return a
}

// Controller exposes the game for callers that need to inspect it.
func (a *App) Controller() *Controller { return a.ctrl }

func (a *App) post(f func()) {
	select {
	case a.posted <- f:
	case <-a.done:
	}
}

// Run loads the game and plays until the player quits, the screen closes
// or ctx is cancelled. The game is saved on the way out.
func (a *App) Run(ctx context.Context) error {
	defer close(a.done)
	a.ctrl.Start()
	defer a.ctrl.Stop()

	// Start an async input reader goroutine.
	eventCh := make(chan tcell.Event, 32)
	go func() {
		defer close(eventCh)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventCh <- ev:
			case <-a.done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-a.posted:
			f()
		case ev, ok := <-eventCh:
			if !ok {
				return nil // screen closed / disconnected
			}
			if a.handleEvent(ev) {
				return nil
			}
		}
	}
}

// handleEvent applies one input event and reports whether to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.draw()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	cmd := keyToCommand(ev)
	c := a.ctrl

	if c.ReadmeOpen() {
		switch cmd {
		case CmdReadme, CmdQuit:
			c.ToggleReadme()
		case CmdScrollUp:
			a.readmeScroll = max(0, a.readmeScroll-1)
			a.draw()
		case CmdScrollDown:
			a.readmeScroll = min(a.readmeScroll+1, a.renderer.ReadmeMaxScroll())
			a.draw()
		}
		return false
	}

	switch cmd {
	case CmdFocus:
		if c.FocusActive() {
			c.FocusRelease()
		} else {
			c.FocusPress()
		}
	case CmdStudy:
		if c.StudyActive() {
			c.StudyRelease()
		} else {
			c.StudyPress()
		}
	case CmdMeditate:
		c.Meditate()
	case CmdClimb:
		c.Climb()
	case CmdPathLeft, CmdPathRight:
		if c.PathPending() {
			choice := tower.PathLeft
			if cmd == CmdPathRight {
				choice = tower.PathRight
			}
			c.ChoosePath(choice.String())
		}
	case CmdIntent:
		c.IntentClick()
	case CmdIntentHold:
		if a.intentDown {
			a.intentDown = false
			c.IntentRelease()
		} else {
			a.intentDown = c.Engine().CanUseIntent()
			c.IntentPress()
		}
	case CmdPonder:
		c.Ponder()
	case CmdSave:
		c.Save()
	case CmdLoad:
		c.Load()
	case CmdExport:
		c.Export("")
	case CmdImport:
		c.Import("")
	case CmdReadme:
		a.readmeScroll = 0
		c.ToggleReadme()
	case CmdDebug:
		c.ToggleDebug()
	case CmdScrollUp:
		a.journalScroll = max(0, a.journalScroll-1)
		a.draw()
	case CmdScrollDown:
		a.journalScroll = min(a.journalScroll+1, a.renderer.JournalMaxScroll())
		a.draw()
	case CmdQuit:
		return true
	}
	return false
}

// handleMouse gives the action bar press and release semantics: holding a
// button repeats it, releasing stops it and dragging off cancels it.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()

	switch {
	case btn&tcell.WheelUp != 0:
		a.journalScroll = max(0, a.journalScroll-1)
		a.draw()
		return
	case btn&tcell.WheelDown != 0:
		a.journalScroll = min(a.journalScroll+1, a.renderer.JournalMaxScroll())
		a.draw()
		return
	}
	if a.ctrl.ReadmeOpen() {
		return
	}

	pressed := btn&tcell.Button1 != 0
	over, hit := a.renderer.HitTest(x, y)
	switch {
	case pressed && a.mouseDown == "":
		if hit {
			a.mouseDown = over
			a.press(over)
		}
	case pressed:
		if !hit || over != a.mouseDown {
			a.cancel(a.mouseDown)
			a.mouseDown = ""
		}
	case a.mouseDown != "":
		a.release(a.mouseDown)
		a.mouseDown = ""
	}
}

func (a *App) press(act tower.Action) {
	switch act {
	case tower.ActionFocus:
		a.ctrl.FocusPress()
	case tower.ActionStudy:
		a.ctrl.StudyPress()
	case tower.ActionIntent:
		a.ctrl.IntentPress()
	case tower.ActionMeditate:
		a.ctrl.Meditate()
	case tower.ActionClimb:
		a.ctrl.Climb()
	}
}

func (a *App) release(act tower.Action) {
	switch act {
	case tower.ActionFocus:
		a.ctrl.FocusRelease()
	case tower.ActionStudy:
		a.ctrl.StudyRelease()
	case tower.ActionIntent:
		a.ctrl.IntentRelease()
	}
}

func (a *App) cancel(act tower.Action) {
	switch act {
	case tower.ActionFocus:
		a.ctrl.FocusRelease()
	case tower.ActionStudy:
		a.ctrl.StudyRelease()
	case tower.ActionIntent:
		a.ctrl.IntentCancel()
	}
}

// frame snapshots the game for the renderer.
func (a *App) frame() render.Frame {
	c := a.ctrl
	e := c.Engine()
	st := e.State
	f := render.Frame{
		Energy:        st.Energy,
		Mana:          st.Mana,
		Lore:          st.Lore,
		LoreProgress:  st.LoreProgress,
		Floor:         st.Floor,
		Tempo:         st.Tempo,
		TopFloor:      tower.TopFloor(st.Tempo),
		NextFloor:     e.NextFloorLine(),
		FloorStats:    e.FloorStats(),
		Statuses:      e.Statuses(),
		Actions:       e.Availability(),
		Inventory:     st.Inventory,
		Journal:       st.LogHistory,
		JournalScroll: a.journalScroll,
		Readme:        c.ReadmeOpen(),
		ReadmeScroll:  a.readmeScroll,
		Running: map[tower.Action]bool{
			tower.ActionFocus:  c.FocusActive(),
			tower.ActionStudy:  c.StudyActive(),
			tower.ActionIntent: c.IntentHeld() || a.intentDown,
		},
	}
	if c.PathPending() {
		f.Prompt = pathPrompt
	}
	if st.UI.ShowDebug {
		f.Debug = c.DebugJSON()
	}
	return f
}

func (a *App) draw() {
	a.renderer.Draw(a.frame())
}
