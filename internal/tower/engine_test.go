package tower

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"mages-tower/assets"
	"mages-tower/internal/clock"
	"mages-tower/internal/config"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// scriptRand replays fixed rolls. Once exhausted, Float64 returns 0.99 (no
// event, no drop) and Intn returns 0.
type scriptRand struct {
	floats []float64
	ints   []int
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	i := r.ints[0]
	r.ints = r.ints[1:]
	return i % n
}

func newTestEngine(t *testing.T) (*Engine, *clock.Manual, *scriptRand) {
	t.Helper()
	clk := clock.NewManual(epoch)
	rng := &scriptRand{}
	e := NewEngine(NewState(epoch), config.Default(), clk, rng)
	return e, clk, rng
}

func lastLog(e *Engine) string {
	if len(e.State.LogHistory) == 0 {
		return ""
	}
	line := e.State.LogHistory[0]
	if i := strings.Index(line, "] "); i >= 0 {
		return line[i+2:]
	}
	return line
}

func hasLog(e *Engine, substr string) bool {
	for _, l := range e.State.LogHistory {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestAccruePassiveSplitsEvenly(t *testing.T) {
	for _, elapsed := range []float64{0, 0.5, 1, 7.3, 20, 123.4} {
		a, _, _ := newTestEngine(t)
		b, _, _ := newTestEngine(t)
		a.AccruePassive(elapsed)
		b.AccruePassive(elapsed / 2)
		b.AccruePassive(elapsed / 2)

		const tol = 1e-9
		if math.Abs(a.State.Energy-b.State.Energy) > tol || math.Abs(a.State.Mana-b.State.Mana) > tol {
			t.Errorf("elapsed %v: energy/mana %v/%v vs %v/%v", elapsed, a.State.Energy, a.State.Mana, b.State.Energy, b.State.Mana)
		}
		av := float64(a.State.Lore) + a.State.LoreProgress
		bv := float64(b.State.Lore) + b.State.LoreProgress
		if math.Abs(av-bv) > tol {
			t.Errorf("elapsed %v: lore %v vs %v", elapsed, av, bv)
		}
	}
}

func TestAccruePassiveKeepsProgressBelowOne(t *testing.T) {
	e, _, _ := newTestEngine(t)
	for i := 0; i < 500; i++ {
		e.AccruePassive(float64(i%7) * 0.9)
		if p := e.State.LoreProgress; p < 0 || p >= 1 {
			t.Fatalf("step %d: progress %v out of [0,1)", i, p)
		}
		if e.State.Lore < 0 {
			t.Fatalf("step %d: negative lore", i)
		}
	}
}

func TestAccruePassiveIgnoresBadElapsed(t *testing.T) {
	e, _, _ := newTestEngine(t)
	for _, bad := range []float64{-5, math.NaN(), math.Inf(1)} {
		e.AccruePassive(bad)
	}
	if e.State.Energy != 0 || e.State.Mana != 0 || e.State.LoreProgress != 0 {
		t.Errorf("state changed: %+v", e.State)
	}
}

func TestPassiveLoreUnlocksStudy(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.State.Lore = 1
	for i := 0; i < 20; i++ {
		e.AccruePassive(1)
	}
	if e.State.Lore != 2 {
		t.Fatalf("lore = %d; want 2", e.State.Lore)
	}
	if e.State.LoreProgress >= 1e-6 {
		t.Errorf("progress = %v; want ~0", e.State.LoreProgress)
	}
	if !e.State.Unlocked.Study {
		t.Error("study not unlocked")
	}
	if !hasLog(e, assets.UnlockStudy) {
		t.Error("unlock line missing")
	}
}

func TestTickUsesClock(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	clk.Advance(10 * time.Second)
	e.Tick()
	if math.Abs(e.State.Energy-2) > 1e-9 || math.Abs(e.State.Mana-1) > 1e-9 {
		t.Errorf("energy %v mana %v", e.State.Energy, e.State.Mana)
	}
	if !e.State.LastTick.Equal(clk.Now()) {
		t.Error("LastTick not advanced")
	}
	e.State.LastTick = clk.Now().Add(time.Minute)
	e.Tick()
	if math.Abs(e.State.Energy-2) > 1e-9 {
		t.Error("backwards clock accrued")
	}
}

func TestUnlocksAreMonotonic(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.State.Lore = 5
	e.State.MeditationCount = 3
	e.EvaluateUnlocks()
	want := Unlocks{Study: true, Climb: true, Intent: true}
	if e.State.Unlocked != want {
		t.Fatalf("unlocked = %+v", e.State.Unlocked)
	}
	e.State.Lore = 0
	e.State.MeditationCount = 0
	e.EvaluateUnlocks()
	if e.State.Unlocked != want {
		t.Errorf("flags reverted: %+v", e.State.Unlocked)
	}
}

func TestUnlockEventsFireOnce(t *testing.T) {
	e, _, _ := newTestEngine(t)
	var got []string
	e.OnEvent = func(ev Event) {
		if ev.Type == EventUnlocked {
			got = append(got, ev.Data.(UnlockedData).Flag)
		}
	}
	e.State.Lore = 4
	e.EvaluateUnlocks()
	e.EvaluateUnlocks()
	if !slices.Equal(got, []string{"study", "climb"}) {
		t.Errorf("events = %v", got)
	}
}

func TestFocus(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.State.Energy = 3.7
	n, err := e.Focus()
	if err != nil || n != 3 {
		t.Fatalf("Focus() = %d, %v", n, err)
	}
	if math.Abs(e.State.Energy-0.7) > 1e-9 || e.State.Mana != 3 {
		t.Errorf("energy %v mana %v", e.State.Energy, e.State.Mana)
	}
	if e.State.Lore != 1 || !e.State.Unlocked.Focus {
		t.Errorf("first-use bonus not paid: lore %d", e.State.Lore)
	}
	if !strings.HasPrefix(lastLog(e), "Focused 3 times") {
		t.Errorf("last log %q", lastLog(e))
	}

	e.State.Energy = 2
	e.Focus()
	if e.State.Lore != 1 {
		t.Error("first-use bonus paid twice")
	}
}

func TestFocusRejections(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.State.Energy = 0.5
	if _, err := e.Focus(); !errors.Is(err, ErrTooTired) {
		t.Errorf("err = %v", err)
	}
	if lastLog(e) != "You are too tired to focus." {
		t.Errorf("last log %q", lastLog(e))
	}
	e.State.Energy = 10
	e.State.Resting = true
	e.State.RestMode = RestMeditation
	if _, err := e.Focus(); !errors.Is(err, ErrResting) {
		t.Errorf("err = %v", err)
	}
	if e.State.Energy != 10 {
		t.Error("energy spent while resting")
	}
}

func TestStudy(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.State.Mana = 12
	if _, err := e.Study(); !errors.Is(err, ErrLocked) {
		t.Fatalf("err = %v", err)
	}
	e.State.Lore = 2
	e.EvaluateUnlocks()

	n, err := e.Study()
	if err != nil || n != 2 {
		t.Fatalf("Study() = %d, %v", n, err)
	}
	if e.State.Mana != 2 || e.State.Lore != 4 {
		t.Errorf("mana %v lore %d", e.State.Mana, e.State.Lore)
	}
	if !e.State.Unlocked.Climb {
		t.Error("climb not unlocked by study")
	}
	if _, err := e.Study(); !errors.Is(err, ErrNeedMana) {
		t.Errorf("err = %v", err)
	}
}

func TestMeditateCompletes(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	if err := e.Meditate(); err != nil {
		t.Fatal(err)
	}
	if !e.State.Resting || e.State.RestMode != RestMeditation {
		t.Fatalf("rest not started: %+v", e.State)
	}
	if got := e.RestRemaining(); got != 5 {
		t.Errorf("RestRemaining = %d", got)
	}
	if err := e.Meditate(); !errors.Is(err, ErrAlreadyResting) {
		t.Errorf("err = %v", err)
	}

	clk.Advance(5 * time.Second)
	gain := e.CompleteRest()
	if gain != 5 || e.State.Energy != 5 {
		t.Errorf("gain %v energy %v", gain, e.State.Energy)
	}
	if e.State.Resting || e.State.RestMode != RestNone || !e.State.RestUntil.IsZero() {
		t.Error("rest not cleared")
	}
	if e.State.MeditationCount != 1 || e.State.Lore != 1 {
		t.Errorf("count %d lore %d", e.State.MeditationCount, e.State.Lore)
	}
}

func TestThirdMeditationUnlocksIntent(t *testing.T) {
	e, _, _ := newTestEngine(t)
	for i := 0; i < 3; i++ {
		e.Meditate()
		e.CompleteRest()
	}
	if !e.State.Unlocked.Intent {
		t.Fatal("intent locked after 3 meditations")
	}
	if e.State.Lore != 1 {
		t.Errorf("lore %d; first-use bonus should pay once", e.State.Lore)
	}
}

func TestIntentInertWhenLocked(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Meditate()
	if e.Intent.Active || e.CanUseIntent() {
		t.Fatal("intent session opened while locked")
	}
	if e.IntentPressStart() {
		t.Error("press accepted while locked")
	}
	if got := e.IntentPressEnd(); got != 0 {
		t.Errorf("grant %d", got)
	}
}

func TestIntentClicksCapAtFifty(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.State.Unlocked.Intent = true
	e.Meditate()
	total := 0
	for i := 0; i < 8; i++ {
		e.IntentPressStart()
		total += e.IntentPressEnd()
	}
	if total != 50 || e.Intent.Energy != 50 {
		t.Fatalf("banked %d / %d", total, e.Intent.Energy)
	}
	if e.CanUseIntent() {
		t.Error("channel usable at cap")
	}
	if !slices.Contains(e.Statuses(), "Intent reserves maxed for this rest.") {
		t.Errorf("statuses %v", e.Statuses())
	}
	if got := e.CompleteRest(); got != 55 {
		t.Errorf("gain %v; want 55", got)
	}
	if e.Intent.Energy != 0 || e.Intent.Active {
		t.Error("session not closed")
	}
}

func TestIntentHoldGrantsRemaining(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.State.Unlocked.Intent = true
	e.Meditate()
	e.IntentPressStart()
	e.IntentPressEnd()
	if !e.IntentPressStart() {
		t.Fatal("press rejected")
	}
	if got := e.IntentHoldElapsed(); got != 40 {
		t.Errorf("hold grant %d; want 40", got)
	}
	if got := e.IntentPressEnd(); got != 0 {
		t.Errorf("release after hold granted %d", got)
	}
	if !strings.Contains(lastLog(e), "pending 50/50") {
		t.Errorf("last log %q", lastLog(e))
	}
}

func TestIntentCancelGrantsNothing(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.State.Unlocked.Intent = true
	e.Meditate()
	e.IntentPressStart()
	e.IntentCancel()
	if got := e.IntentHoldElapsed(); got != 0 {
		t.Errorf("stale hold granted %d", got)
	}
	if e.Intent.Energy != 0 {
		t.Errorf("energy %d", e.Intent.Energy)
	}
}

func TestClimbFromFreshState(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.State.Energy = 4
	res, err := e.Climb()
	if err != nil {
		t.Fatal(err)
	}
	if res.From != 0 || res.To != 1 || e.State.Floor != 1 || e.State.Energy != 0 {
		t.Errorf("res %+v floor %d energy %v", res, e.State.Floor, e.State.Energy)
	}
	if !e.State.StartTime.Equal(epoch) {
		t.Errorf("start time %v", e.State.StartTime)
	}
}

func TestClimbRejectsWithoutMutation(t *testing.T) {
	cases := []struct {
		name   string
		floor  int
		lore   int
		energy float64
		want   error
		line   string
	}{
		{"lore short", 1, 3, 50, ErrWardsReject, "The tower's wards reject you. Lore 4 is required to reach Floor 2."},
		{"energy short", 4, 6, 5.9, ErrTooTired, "You are too tired to climb."},
		{"floor 11 gate", 10, 9, 50, ErrWardsReject, "Lore 10 is required to reach Floor 11."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t)
			e.State.Floor, e.State.Lore, e.State.Energy = tc.floor, tc.lore, tc.energy
			e.State.Tempo = 1
			before := e.State.Clone()

			if _, err := e.Climb(); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v; want %v", err, tc.want)
			}
			if !strings.Contains(lastLog(e), tc.line) {
				t.Errorf("last log %q", lastLog(e))
			}
			after := e.State.Clone()
			after.LogHistory = before.LogHistory
			if after.Floor != before.Floor || after.Energy != before.Energy || after.Lore != before.Lore || !after.StartTime.Equal(before.StartTime) {
				t.Errorf("state mutated: %+v", after)
			}
		})
	}
}

func TestClimbEveryThirdFloorGrantsLore(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.State.Floor = 2
	e.State.Lore = 4
	e.State.Energy = 4
	if _, err := e.Climb(); err != nil {
		t.Fatal(err)
	}
	if e.State.Floor != 3 || e.State.Lore != 5 {
		t.Errorf("floor %d lore %d", e.State.Floor, e.State.Lore)
	}
}

func TestClimbForkAwaitsChoice(t *testing.T) {
	cases := []struct {
		name       string
		energy     float64
		choice     Path
		wantPath   Path
		wantEnergy float64
		wantMana   float64
	}{
		{"left", 10, PathLeft, PathLeft, 2, 3},
		{"left unaffordable", 7, PathLeft, PathRight, 1, 0},
		{"right", 10, PathRight, PathRight, 4, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t)
			e.State.Floor, e.State.Lore, e.State.Energy = 5, 6, tc.energy

			res, err := e.Climb()
			if err != nil || !res.AwaitingChoice {
				t.Fatalf("Climb() = %+v, %v", res, err)
			}
			if e.State.Floor != 5 || e.State.Energy != tc.energy {
				t.Fatal("fork paid before choice")
			}
			if _, err := e.Climb(); !errors.Is(err, ErrChoicePending) {
				t.Errorf("second climb err = %v", err)
			}
			if _, err := e.ChoosePath(PathNone); !errors.Is(err, ErrInvalidChoice) {
				t.Errorf("invalid choice err = %v", err)
			}
			if e.Pending == nil {
				t.Fatal("invalid choice closed the prompt")
			}

			res, err = e.ChoosePath(tc.choice)
			if err != nil {
				t.Fatal(err)
			}
			if res.Path != tc.wantPath || e.State.Floor != 6 {
				t.Errorf("res %+v floor %d", res, e.State.Floor)
			}
			if e.State.Energy != tc.wantEnergy || e.State.Mana != tc.wantMana {
				t.Errorf("energy %v mana %v", e.State.Energy, e.State.Mana)
			}
			if e.Pending != nil {
				t.Error("prompt still pending")
			}
		})
	}
}

func TestChoosePathWhileRestingKeepsPrompt(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.State.Floor, e.State.Lore, e.State.Energy = 5, 6, 10

	if _, err := e.Climb(); err != nil {
		t.Fatal(err)
	}
	if err := e.Meditate(); err != nil {
		t.Fatal(err)
	}
	res, err := e.ChoosePath(PathLeft)
	if !errors.Is(err, ErrResting) || !res.AwaitingChoice {
		t.Fatalf("ChoosePath while resting = %+v, %v", res, err)
	}
	if e.Pending == nil || e.State.Floor != 5 {
		t.Fatalf("choice consumed during rest: pending=%v floor=%d", e.Pending, e.State.Floor)
	}

	e.CompleteRest()
	if _, err := e.ChoosePath(PathLeft); err != nil {
		t.Fatalf("ChoosePath after rest: %v", err)
	}
	if e.State.Floor != 6 || e.Pending != nil {
		t.Errorf("floor %d pending %v", e.State.Floor, e.Pending)
	}
}

func TestChoosePathWithoutPrompt(t *testing.T) {
	e, _, _ := newTestEngine(t)
	if _, err := e.ChoosePath(PathLeft); !errors.Is(err, ErrNoChoicePending) {
		t.Errorf("err = %v", err)
	}
}

func TestParsePath(t *testing.T) {
	cases := map[string]Path{"left": PathLeft, " RIGHT ": PathRight, "l": PathLeft, "up": PathNone, "": PathNone}
	for in, want := range cases {
		if got := ParsePath(in); got != want {
			t.Errorf("ParsePath(%q) = %v", in, got)
		}
	}
}

func TestTrapFloor(t *testing.T) {
	t.Run("shard protects", func(t *testing.T) {
		e, _, _ := newTestEngine(t)
		e.State.Floor, e.State.Lore, e.State.Energy = 8, 8, 12
		e.State.Inventory[assets.ItemGlyphShard] = 1
		if _, err := e.Climb(); err != nil {
			t.Fatal(err)
		}
		if e.State.Energy != 4 || e.State.Inventory[assets.ItemGlyphShard] != 0 {
			t.Errorf("energy %v shards %d", e.State.Energy, e.State.Inventory[assets.ItemGlyphShard])
		}
		if !hasLog(e, "Glyph Shard protects you") {
			t.Error("protect line missing")
		}
	})
	t.Run("trap drains", func(t *testing.T) {
		e, _, _ := newTestEngine(t)
		e.State.Floor, e.State.Lore, e.State.Energy = 8, 8, 9
		if _, err := e.Climb(); err != nil {
			t.Fatal(err)
		}
		if e.State.Energy != 0 {
			t.Errorf("energy %v; want 0 (8 + min(2, 1))", e.State.Energy)
		}
		if !hasLog(e, "A mystical trap drains your energy! Energy -9") {
			t.Error("drain line missing")
		}
	})
}

func TestClimbToTopAdvancesTempo(t *testing.T) {
	for _, tc := range []struct {
		name    string
		elapsed time.Duration
		sprint  bool
	}{
		{"sprint", 90 * time.Second, true},
		{"slow", 10 * time.Minute, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e, clk, _ := newTestEngine(t)
			var adv []TempoAdvancedData
			e.OnEvent = func(ev Event) {
				if ev.Type == EventTempoAdvanced {
					adv = append(adv, ev.Data.(TempoAdvancedData))
				}
			}
			e.State.Floor, e.State.Lore, e.State.Energy = 9, 8, 8
			e.State.LoreProgress = 0.4
			e.State.StartTime = epoch
			clk.Advance(tc.elapsed)

			res, err := e.Climb()
			if err != nil {
				t.Fatal(err)
			}
			if !res.TempoAdvanced || res.To != 10 {
				t.Errorf("res %+v", res)
			}
			st := e.State
			if st.Floor != 0 || st.Lore != 0 || st.LoreProgress != 0 || st.Tempo != 1 {
				t.Errorf("floor %d lore %d progress %v tempo %d", st.Floor, st.Lore, st.LoreProgress, st.Tempo)
			}
			if !st.StartTime.IsZero() || !st.TempoStartedAt.Equal(clk.Now()) {
				t.Errorf("start %v tempoStarted %v", st.StartTime, st.TempoStartedAt)
			}
			if len(adv) != 1 || adv[0].Sprint != tc.sprint || adv[0].From != 0 || adv[0].To != 1 {
				t.Errorf("advance events %+v", adv)
			}
			peak := hasLog(e, "You’ve reached the top floor.")
			if peak == tc.sprint {
				t.Errorf("top floor line present=%v for sprint=%v", peak, tc.sprint)
			}
			if !hasLog(e, "You conquer Floor 10. Tempo rises to 1!") {
				t.Error("conquer line missing")
			}
		})
	}
}

func TestFloorEvents(t *testing.T) {
	cases := []struct {
		index int
		check func(t *testing.T, e *Engine)
	}{
		{EventEnergySpring, func(t *testing.T, e *Engine) {
			if e.State.Energy != 3 {
				t.Errorf("energy %v", e.State.Energy)
			}
		}},
		{EventManaGlow, func(t *testing.T, e *Engine) {
			if e.State.Mana != 3 {
				t.Errorf("mana %v", e.State.Mana)
			}
		}},
		{EventRunes, func(t *testing.T, e *Engine) {
			if e.State.Lore != 1 {
				t.Errorf("lore %d", e.State.Lore)
			}
		}},
		{EventChill, func(t *testing.T, e *Engine) {
			if e.State.Energy != 0 {
				t.Errorf("energy %v", e.State.Energy)
			}
		}},
		{EventBacklash, func(t *testing.T, e *Engine) {
			if e.State.Mana != 0 {
				t.Errorf("mana %v", e.State.Mana)
			}
		}},
		{EventForcedRest, func(t *testing.T, e *Engine) {
			if !e.State.Resting || e.State.RestMode != RestForced {
				t.Errorf("rest %+v", e.State)
			}
		}},
	}
	for _, tc := range cases {
		e, _, rng := newTestEngine(t)
		e.State.Energy = 5
		e.State.Mana = 1
		rng.floats = []float64{0.1}
		rng.ints = []int{tc.index}
		if _, err := e.Climb(); err != nil {
			t.Fatal(err)
		}
		tc.check(t, e)
	}
}

func TestForcedRestPaysOnlyIntent(t *testing.T) {
	e, _, rng := newTestEngine(t)
	e.State.Energy = 4
	e.State.Unlocked.Intent = true
	rng.floats = []float64{0.1}
	rng.ints = []int{EventForcedRest}
	e.Climb()

	if err := e.Meditate(); !errors.Is(err, ErrAlreadyResting) {
		t.Fatalf("meditate during forced rest: %v", err)
	}
	e.IntentPressStart()
	e.IntentPressEnd()
	gain := e.CompleteRest()
	if gain != 10 || e.State.Energy != 10 {
		t.Errorf("gain %v energy %v", gain, e.State.Energy)
	}
	if e.State.MeditationCount != 0 || e.State.Unlocked.Meditate {
		t.Error("forced rest counted as meditation")
	}
	if !strings.HasPrefix(lastLog(e), "You recover from the forced rest.") {
		t.Errorf("last log %q", lastLog(e))
	}
}

func TestItemDrop(t *testing.T) {
	e, _, rng := newTestEngine(t)
	e.State.Energy = 4
	rng.floats = []float64{0.9, 0.1}
	rng.ints = []int{2}
	e.Climb()
	if e.State.Inventory[assets.ItemGlyphShard] != 1 {
		t.Errorf("inventory %v", e.State.Inventory)
	}
}

func TestAvailabilityFeatured(t *testing.T) {
	e, _, _ := newTestEngine(t)
	got := e.Availability()
	if got[0].Action != ActionMeditate || !got[0].Featured {
		t.Errorf("featured %+v", got[0])
	}

	e.State.Lore = 4
	e.State.Energy = 4
	e.EvaluateUnlocks()
	if f := e.Featured(); f != ActionClimb {
		t.Errorf("featured %q; want climb", f)
	}

	e.State.Resting = true
	e.State.RestMode = RestMeditation
	if f := e.Featured(); f != "" {
		t.Errorf("featured %q while resting", f)
	}
}

func TestStatusesAndLines(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	if got := e.Statuses(); !slices.Equal(got, []string{"No active effects."}) {
		t.Errorf("statuses %v", got)
	}
	e.State.Lore = 3
	if got := e.NextFloorLine(); got != "Next floor requires Lore 0 (you have 3)." {
		t.Errorf("next floor %q", got)
	}
	clk.Advance(75 * time.Second)
	if got := e.FloorStats(); got != "Time on Floor: 01:15 | Time on Tempo: 01:15 (Top Floor: 10)" {
		t.Errorf("floor stats %q", got)
	}
	e.Meditate()
	clk.Advance(1500 * time.Millisecond)
	if got := e.Statuses()[0]; got != "Meditating – 4s remaining" {
		t.Errorf("status %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		-time.Second:            "00:00",
		0:                       "00:00",
		59 * time.Second:        "00:59",
		61 * time.Second:        "01:01",
		100*time.Minute + 999e6: "100:00",
	}
	for d, want := range cases {
		if got := FormatDuration(d); got != want {
			t.Errorf("FormatDuration(%v) = %q; want %q", d, got, want)
		}
	}
}
