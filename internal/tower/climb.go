package tower

import (
	"strings"
	"time"

	"mages-tower/assets"
)

// Path is the branch taken at the floor 5 fork.
type Path int

const (
	PathNone Path = iota
	PathLeft
	PathRight
)

// ParsePath reads "left"/"right" (any case, surrounding space ignored).
func ParsePath(s string) Path {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return PathLeft
	case "right", "r":
		return PathRight
	}
	return PathNone
}

func (p Path) String() string {
	switch p {
	case PathLeft:
		return "left"
	case PathRight:
		return "right"
	}
	return "none"
}

// PathPrompt is a climb from Floor waiting for the player's branch choice.
type PathPrompt struct {
	Floor int
}

// forkFloor and trapFloor are the floors whose departure has an encounter.
const (
	forkFloor = 5
	trapFloor = 8

	leftPathExtra = 2
	leftPathMana  = 3
	trapDrain     = 2
)

// ClimbResult describes a resolved (or deferred) climb.
type ClimbResult struct {
	AwaitingChoice bool
	From           int
	To             int
	Path           Path
	TempoAdvanced  bool
}

// CanClimb reports whether a climb from the current floor would pass its
// lore and energy checks.
func (e *Engine) CanClimb() bool {
	st := e.State
	return !st.Resting &&
		st.Lore >= LoreRequirement(st.Floor+1) &&
		st.Energy >= float64(FloorCost(st.Floor))
}

// Climb attempts to ascend one floor. Leaving the fork floor defers the
// climb until ChoosePath is called.
func (e *Engine) Climb() (ClimbResult, error) {
	if e.State.Resting {
		return ClimbResult{}, ErrResting
	}
	if e.Pending != nil {
		return ClimbResult{AwaitingChoice: true, From: e.Pending.Floor}, ErrChoicePending
	}
	if err := e.checkClimb(); err != nil {
		return ClimbResult{}, err
	}
	if e.State.Floor == forkFloor {
		e.Pending = &PathPrompt{Floor: forkFloor}
		e.logf("You reach Floor %d: Choose your path (left/right).", forkFloor)
		return ClimbResult{AwaitingChoice: true, From: forkFloor}, nil
	}
	return e.ascend(PathNone), nil
}

// ChoosePath resolves a pending fork. An invalid choice or a rest in
// progress keeps the prompt open. The lore and energy checks are re-run
// because time has passed.
func (e *Engine) ChoosePath(p Path) (ClimbResult, error) {
	if e.Pending == nil {
		return ClimbResult{}, ErrNoChoicePending
	}
	if p != PathLeft && p != PathRight {
		e.reject("Invalid choice. Please choose 'left' or 'right'.")
		return ClimbResult{AwaitingChoice: true, From: e.Pending.Floor}, ErrInvalidChoice
	}
	if e.State.Resting {
		return ClimbResult{AwaitingChoice: true, From: e.Pending.Floor}, ErrResting
	}
	e.Pending = nil
	if err := e.checkClimb(); err != nil {
		return ClimbResult{}, err
	}
	return e.ascend(p), nil
}

func (e *Engine) checkClimb() error {
	st := e.State
	target := st.Floor + 1
	if req := LoreRequirement(target); st.Lore < req {
		e.reject("The tower's wards reject you. Lore %d is required to reach Floor %d.", req, target)
		return ErrWardsReject
	}
	if st.Energy < float64(FloorCost(st.Floor)) {
		e.reject("You are too tired to climb.")
		return ErrTooTired
	}
	return nil
}

func (e *Engine) ascend(path Path) ClimbResult {
	st := e.State
	now := e.now()
	cost := float64(FloorCost(st.Floor))
	res := ClimbResult{From: st.Floor}

	switch st.Floor {
	case forkFloor:
		res.Path = e.takeFork(path, cost)
	case trapFloor:
		e.springTrap(cost)
	default:
		e.spendEnergy(cost)
		e.logf("Energy -%d (Energy: %d)", int(cost), floorInt(st.Energy))
	}

	if st.StartTime.IsZero() {
		st.StartTime = now
	}
	st.Floor++
	st.FloorEnteredAt = now
	e.logf("You ascend to Floor %d. (Floor: %d)", st.Floor, st.Floor)
	e.emit(EventFloorReached, st.Floor)

	if e.Rand.Float64() < e.Rules.EventChance {
		e.floorEvent()
	}
	if e.Rand.Float64() < e.Rules.DropChance {
		e.AddItem(assets.Items[e.Rand.Intn(len(assets.Items))])
	}
	if st.Floor%3 == 0 {
		st.Lore++
		e.logf("You uncover new lore as you climb. Lore +1 (Lore: %d)", st.Lore)
		e.EvaluateUnlocks()
	}

	res.To = st.Floor
	if top := TopFloor(st.Tempo); st.Floor >= top {
		elapsed := now.Sub(st.StartTime)
		sprint := elapsed <= e.Rules.SprintWindow
		if !sprint {
			e.Log("You’ve reached the top floor. The tower hums with quiet power...")
		}
		e.advanceTempo(top, elapsed, sprint)
		res.TempoAdvanced = true
	}
	return res
}

// takeFork pays for the chosen branch. The left path falls back to the
// right one when its extra cost is unaffordable.
func (e *Engine) takeFork(path Path, cost float64) Path {
	st := e.State
	if path == PathLeft {
		leftCost := cost + leftPathExtra
		if st.Energy >= leftCost {
			e.spendEnergy(leftCost)
			st.Mana += leftPathMana
			e.logf("You take the left path, draining but mana-rich. Energy -%d (Energy: %d), Mana +%d (Mana: %d)",
				int(leftCost), floorInt(st.Energy), leftPathMana, floorInt(st.Mana))
			return PathLeft
		}
		e.Log("You don't have enough energy for the left path. You take the right path instead.")
	}
	e.spendEnergy(cost)
	e.logf("You take the right path, safe but uneventful. Energy -%d (Energy: %d)", int(cost), floorInt(st.Energy))
	return PathRight
}

// springTrap resolves the trap on leaving trapFloor. A Glyph Shard negates
// the extra drain.
func (e *Engine) springTrap(cost float64) {
	st := e.State
	if e.UseItem(assets.ItemGlyphShard) {
		e.Log("A mystical trap triggers but your Glyph Shard protects you.")
		e.spendEnergy(cost)
		e.logf("Energy -%d (Energy: %d)", int(cost), floorInt(st.Energy))
		return
	}
	e.spendEnergy(cost)
	lost := e.drainEnergy(trapDrain)
	e.logf("A mystical trap drains your energy! Energy -%d (Energy: %d)", int(cost)+lost, floorInt(st.Energy))
}

// advanceTempo is the only path that resets floor and lore.
func (e *Engine) advanceTempo(top int, elapsed time.Duration, sprint bool) {
	st := e.State
	now := e.now()
	from := st.Tempo
	startedAt := st.StartTime

	e.logf("You conquer Floor %d. Tempo rises to %d!", top, from+1)
	st.Tempo = from + 1
	st.TempoStartedAt = now
	st.Lore = 0
	st.LoreProgress = 0
	e.Log("The tower resets, drawing you back to Floor 0.")
	st.Floor = 0
	st.FloorEnteredAt = now
	st.StartTime = time.Time{}

	e.emit(EventTempoAdvanced, TempoAdvancedData{
		From:      from,
		To:        st.Tempo,
		TopFloor:  top,
		StartedAt: startedAt,
		Elapsed:   elapsed,
		Sprint:    sprint,
	})
}
