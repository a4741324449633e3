package core_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// eventRecorder collects engine events for assertions.
type eventRecorder struct {
	events []core.Event
}

func (r *eventRecorder) listen(ev core.Event) {
	r.events = append(r.events, ev)
}

func (r *eventRecorder) count(match func(core.Event) bool) int {
	n := 0
	for _, ev := range r.events {
		if match(ev) {
			n++
		}
	}
	return n
}

func isValidSwap(ev core.Event) bool {
	_, ok := ev.(core.ValidSwapExecutedEvent)
	return ok
}

func isInvalidSwap(ev core.Event) bool {
	_, ok := ev.(core.InvalidSwapAttemptedEvent)
	return ok
}

// playableRows has two legal swaps: (2,0)<->(3,0) completes B B B on row 0
// and (2,1)<->(2,2) completes R R R on row 1.
var playableRows = []string{
	"BBGB",
	"GRYR",
	"YGRY",
}

// deadRows is a checkerboard-like layout with no legal swaps.
var deadRows = []string{
	"RGBR",
	"BRGB",
	"GBRG",
}

func newEngine(t *testing.T, rows []string) (*core.Engine, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	e := core.NewEngine(core.WithRand(rand.New(rand.NewSource(42))), core.WithListener(rec.listen))
	if err := e.InitializeBoard(mustGrid(t, rows...)); err != nil {
		t.Fatalf("InitializeBoard: %v", err)
	}
	return e, rec
}

func TestInitializeBoardRejectsZeroGrid(t *testing.T) {
	e := core.NewEngine()

	if err := e.InitializeBoard(core.Grid{}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("InitializeBoard(zero): expected ErrInvalidArgument, got %v", err)
	}
	if err := e.UpdateBoard(core.Grid{}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("UpdateBoard(zero): expected ErrInvalidArgument, got %v", err)
	}
}

func TestInitializeBoardEmitsPossibleSwaps(t *testing.T) {
	e, rec := newEngine(t, playableRows)

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event after initialize, got %d", len(rec.events))
	}
	ev, ok := rec.events[0].(core.PossibleSwapsUpdatedEvent)
	if !ok {
		t.Fatalf("expected PossibleSwapsUpdatedEvent, got %T", rec.events[0])
	}
	if len(ev.Swaps) != len(e.PossibleSwaps()) {
		t.Errorf("event carries %d swaps, engine has %d", len(ev.Swaps), len(e.PossibleSwaps()))
	}
	if e.State() != core.StateIdle {
		t.Errorf("state after initialize = %v, want Idle", e.State())
	}
}

func TestPossibleSwapsMatchesBruteForce(t *testing.T) {
	boards := [][]string{
		playableRows,
		deadRows,
		{"RRGR", "GBRB", "BGBG", "RGRR"},
		{"YPYY", "PYPP", "YYPY", "PPYP"},
	}

	for _, rows := range boards {
		g := mustGrid(t, rows...)
		e := core.NewEngine()
		if err := e.InitializeBoard(g); err != nil {
			t.Fatalf("InitializeBoard: %v", err)
		}

		want := make([]core.Swap, 0)
		for _, a := range g.Coords() {
			for _, b := range []core.Coord{a.Add(1, 0), a.Add(0, 1)} {
				if !g.InBounds(b) {
					continue
				}
				swapped, _ := g.Swap(a, b)
				if len(core.FindMatchesTouching(swapped, a, b)) > 0 {
					want = append(want, core.NewSwap(a, b))
				}
			}
		}

		got := e.PossibleSwaps()
		if len(got) != len(want) {
			t.Fatalf("board %v: got %d swaps, want %d (%v vs %v)", rows, len(got), len(want), got, want)
		}
		for i := range want {
			if !got[i].Equal(want[i]) {
				t.Errorf("board %v: swap %d = %v, want %v", rows, i, got[i], want[i])
			}
		}
	}
}

func TestValidateAndExecuteSwapAgreesWithSimulation(t *testing.T) {
	rows := []string{"RRGR", "GBRB", "BGBG", "RGRR"}
	g := mustGrid(t, rows...)

	for _, a := range g.Coords() {
		for _, b := range []core.Coord{a.Add(1, 0), a.Add(0, 1)} {
			if !g.InBounds(b) {
				continue
			}
			swapped, _ := g.Swap(a, b)
			expected := len(core.FindMatchesTouching(swapped, a, b)) > 0

			e, _ := newEngine(t, rows)
			// Reversed order must behave the same.
			if got := e.ValidateAndExecuteSwap(core.NewSwap(b, a)); got != expected {
				t.Errorf("swap %v<->%v: got %v, want %v", a, b, got, expected)
			}
		}
	}
}

func TestValidSwapExecutes(t *testing.T) {
	e, rec := newEngine(t, playableRows)
	before := e.Grid()

	swap := core.NewSwap(core.C(2, 0), core.C(3, 0))
	if !e.ValidateAndExecuteSwap(swap) {
		t.Fatalf("expected %v to be legal; cache = %v", swap, e.PossibleSwaps())
	}

	after := e.Grid()
	if after.KindAt(core.C(2, 0)) != core.KindBlue || after.KindAt(core.C(3, 0)) != core.KindGreen {
		t.Errorf("swap not applied:\n%s", after)
	}
	if before.KindAt(core.C(2, 0)) != core.KindGreen {
		t.Error("previous grid instance was mutated")
	}
	if rec.count(isValidSwap) != 1 || rec.count(isInvalidSwap) != 0 {
		t.Errorf("expected exactly one ValidSwapExecuted event, got %+v", rec.events)
	}
	if e.State() != core.StateIdle {
		t.Errorf("state after swap = %v, want Idle", e.State())
	}
	if !e.NeedsResolution() {
		t.Error("engine should need resolution after a swap")
	}
}

func TestInvalidSwapRejections(t *testing.T) {
	tests := []struct {
		name   string
		swap   core.Swap
		reason core.RejectReason
	}{
		{"same cell", core.NewSwap(core.C(1, 1), core.C(1, 1)), core.RejectDegenerate},
		{"zero coordinate pair", core.NewSwap(core.C(0, 0), core.C(0, 0)), core.RejectDegenerate},
		{"distance two", core.NewSwap(core.C(0, 0), core.C(2, 0)), core.RejectNotAdjacent},
		{"diagonal", core.NewSwap(core.C(0, 0), core.C(1, 1)), core.RejectNotAdjacent},
		{"adjacent without match", core.NewSwap(core.C(0, 1), core.C(0, 2)), core.RejectNotLegal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newEngine(t, playableRows)
			before := e.Grid()

			if e.ValidateAndExecuteSwap(tt.swap) {
				t.Fatalf("swap %v should be rejected", tt.swap)
			}
			if !e.Grid().Equal(before) {
				t.Error("rejected swap mutated the grid")
			}
			if rec.count(isValidSwap) != 0 {
				t.Error("rejected swap fired ValidSwapExecuted")
			}
			if rec.count(isInvalidSwap) != 1 {
				t.Errorf("expected exactly one InvalidSwapAttempted event, got %+v", rec.events)
			}
			if e.State() != core.StateIdle {
				t.Errorf("state after rejection = %v, want Idle", e.State())
			}

			last, ok := rec.events[len(rec.events)-1].(core.InvalidSwapAttemptedEvent)
			if !ok {
				t.Fatalf("last event = %T, want InvalidSwapAttemptedEvent", rec.events[len(rec.events)-1])
			}
			if last.Reason != tt.reason {
				t.Errorf("reason = %v, want %v", last.Reason, tt.reason)
			}
			if !last.Swap.Equal(tt.swap) {
				t.Errorf("event swap = %v, want %v", last.Swap, tt.swap)
			}
		})
	}
}

func TestSwapRejectedUntilBoardUpdated(t *testing.T) {
	e, rec := newEngine(t, playableRows)

	swap := core.NewSwap(core.C(2, 0), core.C(3, 0))
	if !e.ValidateAndExecuteSwap(swap) {
		t.Fatal("first swap should succeed")
	}
	if e.ValidateAndExecuteSwap(swap) {
		t.Fatal("second swap on an unresolved board should be rejected")
	}
	last := rec.events[len(rec.events)-1].(core.InvalidSwapAttemptedEvent)
	if last.Reason != core.RejectStale {
		t.Errorf("reason = %v, want %v", last.Reason, core.RejectStale)
	}

	if err := e.UpdateBoard(mustGrid(t, playableRows...)); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if e.NeedsResolution() {
		t.Error("UpdateBoard should clear the resolution flag")
	}
	if !e.ValidateAndExecuteSwap(swap) {
		t.Error("swap should be accepted again after UpdateBoard")
	}
}

func TestProcessMatches(t *testing.T) {
	e, rec := newEngine(t, playableRows)

	if got := e.ProcessMatches(); len(got) != 0 {
		t.Fatalf("expected no matches before swap, got %+v", got)
	}
	for _, ev := range rec.events {
		if _, ok := ev.(core.MatchesFoundEvent); ok {
			t.Fatal("MatchesFound fired with no matches")
		}
	}

	e.ValidateAndExecuteSwap(core.NewSwap(core.C(2, 0), core.C(3, 0)))
	matches := e.ProcessMatches()
	if len(matches) != 1 || matches[0].Kind != core.KindBlue || matches[0].Len() != 3 {
		t.Fatalf("expected one blue run of 3, got %+v", matches)
	}

	found, ok := rec.events[len(rec.events)-1].(core.MatchesFoundEvent)
	if !ok {
		t.Fatalf("last event = %T, want MatchesFoundEvent", rec.events[len(rec.events)-1])
	}
	found.Matches[0].Coords[0] = core.C(99, 99)
	if matches[0].Coords[0] == core.C(99, 99) {
		t.Error("event payload should not alias the returned matches")
	}
	if e.State() != core.StateIdle {
		t.Errorf("state after ProcessMatches = %v, want Idle", e.State())
	}
}

func TestProcessMatchesReentrantCallReturnsEmpty(t *testing.T) {
	rec := &eventRecorder{}
	e := core.NewEngine()

	var nested []core.Match
	var nestedSwap bool
	calls := 0
	e.Subscribe(func(ev core.Event) {
		if _, ok := ev.(core.MatchesFoundEvent); !ok {
			return
		}
		calls++
		if e.State() != core.StateProcessingMatches {
			t.Errorf("state inside listener = %v, want ProcessingMatches", e.State())
		}
		nested = e.ProcessMatches()
		nestedSwap = e.ValidateAndExecuteSwap(core.NewSwap(core.C(0, 1), core.C(1, 1)))
	})
	e.Subscribe(rec.listen)

	g := mustGrid(t, "RRRG", "GBGB", "BGBY")
	if err := e.InitializeBoard(g); err != nil {
		t.Fatalf("InitializeBoard: %v", err)
	}

	matches := e.ProcessMatches()
	if len(matches) != 1 {
		t.Fatalf("outer ProcessMatches = %+v, want one match", matches)
	}
	if calls != 1 {
		t.Fatalf("listener called %d times, want 1", calls)
	}
	if len(nested) != 0 {
		t.Errorf("reentrant ProcessMatches returned %+v, want empty", nested)
	}
	if nestedSwap {
		t.Error("reentrant swap should be rejected while processing matches")
	}
	if !e.Grid().Equal(g) {
		t.Error("reentrant calls changed the active grid")
	}
	if e.State() != core.StateIdle {
		t.Errorf("state after ProcessMatches = %v, want Idle", e.State())
	}

	busy := 0
	for _, ev := range rec.events {
		if inv, ok := ev.(core.InvalidSwapAttemptedEvent); ok && inv.Reason == core.RejectBusy {
			busy++
		}
	}
	if busy != 1 {
		t.Errorf("expected one busy rejection event, got %d", busy)
	}
}

func TestProcessMatchesRejectedWhileSwapping(t *testing.T) {
	e := core.NewEngine()
	var nested []core.Match
	var sawSwapping bool
	e.Subscribe(func(ev core.Event) {
		if _, ok := ev.(core.ValidSwapExecutedEvent); ok {
			sawSwapping = e.State() == core.StateSwapping
			nested = e.ProcessMatches()
		}
	})
	if err := e.InitializeBoard(mustGrid(t, playableRows...)); err != nil {
		t.Fatalf("InitializeBoard: %v", err)
	}

	if !e.ValidateAndExecuteSwap(core.NewSwap(core.C(3, 0), core.C(2, 0))) {
		t.Fatal("swap should succeed")
	}
	if !sawSwapping {
		t.Error("listener should observe the Swapping state")
	}
	if len(nested) != 0 {
		t.Errorf("ProcessMatches during swap returned %+v, want empty", nested)
	}
	if got := e.ProcessMatches(); len(got) != 1 {
		t.Errorf("ProcessMatches after swap = %+v, want one match", got)
	}
}

func TestDeadlockedBoard(t *testing.T) {
	e, _ := newEngine(t, deadRows)

	if e.HasPossibleMoves() {
		t.Errorf("expected no possible moves, got %v", e.PossibleSwaps())
	}
	if n := len(e.PossibleSwaps()); n != 0 {
		t.Errorf("PossibleSwaps() length = %d, want 0", n)
	}
	if hint, ok := e.RandomHint(); ok {
		t.Errorf("RandomHint() on deadlock = %v, want no hint", hint)
	}
}

func TestRandomHintIsLegal(t *testing.T) {
	e, _ := newEngine(t, []string{"RRGR", "GBRB", "BGBG", "RGRR"})

	if !e.HasPossibleMoves() {
		t.Fatal("board should have moves")
	}
	for i := 0; i < 20; i++ {
		hint, ok := e.RandomHint()
		if !ok {
			t.Fatal("RandomHint() returned no hint on a playable board")
		}
		if !e.IsLegal(hint) {
			t.Errorf("hint %v is not in the legal-swap cache", hint)
		}
	}
}

func TestPossibleSwapsIsDefensiveCopy(t *testing.T) {
	e, _ := newEngine(t, playableRows)

	swaps := e.PossibleSwaps()
	if len(swaps) == 0 {
		t.Fatal("expected at least one swap")
	}
	original := swaps[0]
	swaps[0] = core.NewSwap(core.C(9, 9), core.C(9, 8))

	if !e.PossibleSwaps()[0].Equal(original) {
		t.Error("mutating the returned slice changed engine state")
	}
}

func TestUnsubscribe(t *testing.T) {
	e := core.NewEngine()
	calls := 0
	unsubscribe := e.Subscribe(func(core.Event) { calls++ })

	g := mustGrid(t, playableRows...)
	_ = e.InitializeBoard(g)
	unsubscribe()
	_ = e.UpdateBoard(g)

	if calls != 1 {
		t.Errorf("listener called %d times, want 1", calls)
	}
}
