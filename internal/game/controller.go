// Package game owns a running tower: it drives the engine from timers and
// player commands, persists after every turn, and presents it in a
// terminal.
package game

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"mages-tower/internal/audio"
	"mages-tower/internal/clock"
	"mages-tower/internal/config"
	"mages-tower/internal/save"
	"mages-tower/internal/storage"
	"mages-tower/internal/tower"
)

// storageTimeout bounds every storage call made from the loop.
const storageTimeout = 2 * time.Second

// Options configures a Controller. Zero fields get working defaults; a nil
// Repo keeps saves in memory.
type Options struct {
	Rules      config.Rules
	Clock      clock.Clock
	Scheduler  clock.Scheduler
	Rand       *rand.Rand
	Repo       *save.Repository
	Audio      audio.Player
	Log        *slog.Logger
	Tracer     trace.Tracer
	ExportPath string
	// RunLogDir receives runs.jsonl. Empty disables the run log.
	RunLogDir string
	// Dispatch moves a timer callback onto the goroutine that owns the
	// controller. Nil runs callbacks where they fire.
	Dispatch func(func())
}

// timerSlot holds one cancellable timer. The generation guards against a
// callback that was already queued when the slot was disarmed.
type timerSlot struct {
	t   clock.Timer
	gen uint64
}

func (s *timerSlot) armed() bool { return s.t != nil }

// Controller is the single owner of the game state. Every exported method
// is one turn: it runs to completion and then flushes the autosave at most
// once. It is not safe for concurrent use; see Options.Dispatch.
type Controller struct {
	rules      config.Rules
	clock      clock.Clock
	sched      clock.Scheduler
	rng        *rand.Rand
	repo       *save.Repository
	audio      audio.Player
	log        *slog.Logger
	tracer     trace.Tracer
	exportPath string
	runLogDir  string
	dispatch   func(func())

	engine *tower.Engine

	tick, refresh       timerSlot
	rest, restCountdown timerSlot
	focus, study, hold  timerSlot

	dirty   bool
	flushed bool // a write already happened this turn
	writes  int

	readme  bool
	started bool
	ctx     context.Context // span context of the running turn

	// OnChange, if set, is called at the end of every turn.
	OnChange func()
}

// New builds a Controller around a fresh state. Call Start to load the
// save and arm the timers.
func New(opts Options) *Controller {
	if opts.Rules == (config.Rules{}) {
		opts.Rules = config.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = clock.Real{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	if opts.Audio == nil {
		opts.Audio = audio.Silent{}
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer("game")
	}
	if opts.Repo == nil {
		opts.Repo = save.NewRepository(storage.NewMemory(), storage.NewMemory(), opts.Log, opts.Tracer)
	}
	if opts.Dispatch == nil {
		opts.Dispatch = func(f func()) { f() }
	}

	c := &Controller{
		rules:      opts.Rules,
		clock:      opts.Clock,
		sched:      opts.Scheduler,
		rng:        opts.Rand,
		repo:       opts.Repo,
		audio:      opts.Audio,
		log:        opts.Log,
		tracer:     opts.Tracer,
		exportPath: opts.ExportPath,
		runLogDir:  opts.RunLogDir,
		dispatch:   opts.Dispatch,
		ctx:        context.Background(),
	}
	c.engine = tower.NewEngine(tower.NewState(c.clock.Now()), c.rules, c.clock, c.rng)
	c.engine.OnEvent = c.onEvent
	return c
}

// Engine exposes the engine for read-only inspection by the view.
func (c *Controller) Engine() *tower.Engine { return c.engine }

// State is the live game state.
func (c *Controller) State() *tower.State { return c.engine.State }

// Writes counts storage flushes since the controller was built.
func (c *Controller) Writes() int { return c.writes }

// ReadmeOpen reports whether the help overlay is showing.
func (c *Controller) ReadmeOpen() bool { return c.readme }

// FocusActive and StudyActive report whether a repeat loop is running.
func (c *Controller) FocusActive() bool { return c.focus.armed() }
func (c *Controller) StudyActive() bool { return c.study.armed() }

// IntentHeld reports whether an intent hold is counting down.
func (c *Controller) IntentHeld() bool { return c.hold.armed() }

// turn runs f as one unit of work and ends the turn.
func (c *Controller) turn(name string, f func()) {
	ctx, span := c.tracer.Start(context.Background(), "tower."+name)
	c.ctx = ctx
	c.flushed = false
	f()
	span.SetAttributes(
		attribute.Int("tower.floor", c.engine.State.Floor),
		attribute.Int("tower.tempo", c.engine.State.Tempo),
	)
	span.End()
	c.EndTurn()
	c.ctx = context.Background()
}

// storageCtx bounds one storage call made from the running turn.
func (c *Controller) storageCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.ctx, storageTimeout)
}

// EndTurn flushes the autosave if anything changed and no write has
// happened yet this turn, then notifies the view.
func (c *Controller) EndTurn() {
	if c.dirty && !c.flushed && c.started {
		if err := c.flush(); err != nil {
			c.log.Warn("save: flush failed", "error", err)
		}
	}
	if c.OnChange != nil {
		c.OnChange()
	}
}

func (c *Controller) flush() error {
	ctx, cancel := c.storageCtx()
	defer cancel()
	c.flushed = true
	c.writes++
	if err := c.repo.Save(ctx, c.engine.State); err != nil {
		return err
	}
	c.dirty = false
	return nil
}

// arm (re)starts slot so that f runs as its own turn after d.
func (c *Controller) arm(s *timerSlot, name string, d time.Duration, f func()) {
	c.disarm(s)
	gen := s.gen
	s.t = c.sched.AfterFunc(d, func() {
		c.dispatch(func() {
			if s.gen != gen {
				return
			}
			s.t = nil
			c.turn(name, f)
		})
	})
}

func (c *Controller) disarm(s *timerSlot) {
	if s.t != nil {
		s.t.Stop()
		s.t = nil
	}
	s.gen++
}

func (c *Controller) disarmAll() {
	for _, s := range []*timerSlot{&c.tick, &c.refresh, &c.rest, &c.restCountdown, &c.focus, &c.study, &c.hold} {
		c.disarm(s)
	}
}

func (c *Controller) onEvent(ev tower.Event) {
	c.dirty = true
	switch ev.Type {
	case tower.EventLogged:
		c.log.Debug("journal", "text", ev.Data)
	case tower.EventUnlocked:
		c.log.Info("tower: unlocked", "flag", ev.Data.(tower.UnlockedData).Flag)
		c.audio.Play(audio.CueUnlock)
	case tower.EventRejected:
		c.audio.Play(audio.CueReject)
	case tower.EventRestStarted:
		c.armRest()
	case tower.EventRestEnded:
		c.audio.Play(audio.CueRestDone)
	case tower.EventFloorReached:
		c.audio.Play(audio.CueFloor)
	case tower.EventTempoAdvanced:
		d := ev.Data.(tower.TempoAdvancedData)
		c.log.Info("tower: tempo advanced", "from", d.From, "to", d.To, "elapsed", d.Elapsed, "sprint", d.Sprint)
		c.audio.Play(audio.CueTempo)
		if err := saveRunLog(c.runLogDir, newRunRecord(ev.At, d)); err != nil {
			c.log.Warn("run log: append failed", "error", err)
		}
	}
}

// Start loads the stored game (or begins a new one) and arms the world
// tick and the auto-refresh.
func (c *Controller) Start() {
	c.turn("start", func() {
		c.started = true
		c.restart(nil)
	})
}

// Stop cancels every timer and writes a final save.
func (c *Controller) Stop() {
	c.disarmAll()
	if !c.started {
		return
	}
	c.started = false
	if err := c.flush(); err != nil {
		c.log.Warn("save: final flush failed", "error", err)
	}
}

func (c *Controller) armClock() {
	c.arm(&c.tick, "tick", c.rules.TickInterval, c.onTick)
	if c.rules.AutoRefresh > 0 {
		c.arm(&c.refresh, "refresh", c.rules.AutoRefresh, func() { c.reload(true) })
	}
}

// Tick accrues passive resources now.
func (c *Controller) Tick() {
	c.turn("tick", c.onTick)
}

func (c *Controller) onTick() {
	c.engine.Tick()
	c.dirty = true
	c.arm(&c.tick, "tick", c.rules.TickInterval, c.onTick)
}
