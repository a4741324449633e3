package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func mustGrid(t *testing.T, rows ...string) core.Grid {
	t.Helper()
	g, err := core.GridFromRows(rows)
	if err != nil {
		t.Fatalf("GridFromRows(%v): %v", rows, err)
	}
	return g
}

func TestNewGrid(t *testing.T) {
	g, err := core.NewGrid(4, 3)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	if g.Width() != 4 || g.Height() != 3 {
		t.Errorf("expected 4x3 grid, got %dx%d", g.Width(), g.Height())
	}

	for _, c := range g.Coords() {
		tile, err := g.Get(c)
		if err != nil {
			t.Fatalf("Get(%v): %v", c, err)
		}
		if !tile.Empty() {
			t.Errorf("at %v: expected empty tile, got %v", c, tile.Kind)
		}
		if tile.Pos != c {
			t.Errorf("at %v: tile reports position %v", c, tile.Pos)
		}
	}
}

func TestNewGridInvalidSize(t *testing.T) {
	testCases := []struct {
		w, h int
	}{
		{0, 3},
		{3, 0},
		{-1, 5},
	}

	for _, tc := range testCases {
		_, err := core.NewGrid(tc.w, tc.h)
		if !errors.Is(err, core.ErrInvalidArgument) {
			t.Errorf("NewGrid(%d, %d): expected ErrInvalidArgument, got %v", tc.w, tc.h, err)
		}
	}
}

func TestGridFromRows(t *testing.T) {
	g := mustGrid(t,
		"RGB",
		"Y.P",
	)

	testCases := []struct {
		coord core.Coord
		kind  core.Kind
	}{
		{core.C(0, 0), core.KindRed},
		{core.C(1, 0), core.KindGreen},
		{core.C(2, 0), core.KindBlue},
		{core.C(0, 1), core.KindYellow},
		{core.C(1, 1), core.KindNone},
		{core.C(2, 1), core.KindPurple},
	}

	for _, tc := range testCases {
		if got := g.KindAt(tc.coord); got != tc.kind {
			t.Errorf("KindAt(%v) = %v, want %v", tc.coord, got, tc.kind)
		}
	}

	rows := g.Rows()
	if rows[0] != "RGB" || rows[1] != "Y.P" {
		t.Errorf("Rows() = %v, want [RGB Y.P]", rows)
	}
}

func TestGridFromRowsRejectsRaggedAndUnknown(t *testing.T) {
	if _, err := core.GridFromRows([]string{"RGB", "RG"}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("ragged rows: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := core.GridFromRows([]string{"RXB"}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("unknown kind: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := core.GridFromRows(nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("no rows: expected ErrInvalidArgument, got %v", err)
	}
}

func TestGridOutOfRange(t *testing.T) {
	g := mustGrid(t, "RGB", "BGR")

	outside := []core.Coord{
		core.C(-1, 0),
		core.C(0, -1),
		core.C(3, 0),
		core.C(0, 2),
	}

	for _, c := range outside {
		if _, err := g.Get(c); !errors.Is(err, core.ErrOutOfRange) {
			t.Errorf("Get(%v): expected ErrOutOfRange, got %v", c, err)
		}
		if _, err := g.Set(c, core.Tile{Kind: core.KindRed}); !errors.Is(err, core.ErrOutOfRange) {
			t.Errorf("Set(%v): expected ErrOutOfRange, got %v", c, err)
		}
		if g.KindAt(c) != core.KindNone {
			t.Errorf("KindAt(%v) should be KindNone out of bounds", c)
		}
	}
}

func TestGridSetIsCopyOnWrite(t *testing.T) {
	g := mustGrid(t,
		"RGB",
		"BGR",
		"GRB",
	)
	target := core.C(1, 1)

	next, err := g.Set(target, core.Tile{Kind: core.KindYellow, Pos: core.C(9, 9)})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	tile, _ := next.Get(target)
	if tile.Kind != core.KindYellow {
		t.Errorf("new grid at %v = %v, want yellow", target, tile.Kind)
	}
	if tile.Pos != target {
		t.Errorf("tile position should follow the cell, got %v", tile.Pos)
	}

	// Original untouched
	if g.KindAt(target) != core.KindGreen {
		t.Errorf("original grid mutated at %v: %v", target, g.KindAt(target))
	}

	// Every other cell identical
	for _, c := range g.Coords() {
		if c == target {
			continue
		}
		if g.KindAt(c) != next.KindAt(c) {
			t.Errorf("cell %v changed from %v to %v", c, g.KindAt(c), next.KindAt(c))
		}
	}
}

func TestGridSwap(t *testing.T) {
	g := mustGrid(t, "RG", "BY")

	swapped, err := g.Swap(core.C(0, 0), core.C(1, 0))
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}

	if swapped.KindAt(core.C(0, 0)) != core.KindGreen || swapped.KindAt(core.C(1, 0)) != core.KindRed {
		t.Errorf("Swap did not exchange tiles:\n%s", swapped)
	}
	if g.KindAt(core.C(0, 0)) != core.KindRed {
		t.Error("Swap mutated the original grid")
	}

	// Same result as two chained Sets
	a, _ := g.Get(core.C(0, 0))
	b, _ := g.Get(core.C(1, 0))
	viaSet, _ := g.Set(core.C(0, 0), b)
	viaSet, _ = viaSet.Set(core.C(1, 0), a)
	if !viaSet.Equal(swapped) {
		t.Errorf("Swap differs from chained Set:\n%s\nvs\n%s", swapped, viaSet)
	}
}

func TestGridEqualAndCount(t *testing.T) {
	a := mustGrid(t, "RRG", "BBG")
	b := mustGrid(t, "RRG", "BBG")
	c := mustGrid(t, "RRG", "BBY")

	if !a.Equal(b) {
		t.Error("identical grids should be equal")
	}
	if a.Equal(c) {
		t.Error("different grids should not be equal")
	}
	if a.Count(core.KindRed) != 2 || a.Count(core.KindGreen) != 2 {
		t.Errorf("Count mismatch: red=%d green=%d", a.Count(core.KindRed), a.Count(core.KindGreen))
	}
}

func TestZeroGrid(t *testing.T) {
	var g core.Grid
	if !g.IsZero() {
		t.Error("zero-value grid should report IsZero")
	}
	if _, err := g.Get(core.C(0, 0)); !errors.Is(err, core.ErrOutOfRange) {
		t.Errorf("Get on zero grid: expected ErrOutOfRange, got %v", err)
	}
}

func TestSwapEquality(t *testing.T) {
	a, b := core.C(1, 2), core.C(2, 2)

	if !core.NewSwap(a, b).Equal(core.NewSwap(b, a)) {
		t.Error("swap equality should ignore order")
	}
	if core.NewSwap(a, b).Equal(core.NewSwap(a, core.C(1, 3))) {
		t.Error("different swaps should not be equal")
	}
	if !core.NewSwap(a, a).Degenerate() {
		t.Error("same-cell swap should be degenerate")
	}
	if core.NewSwap(a, core.C(3, 2)).Adjacent() {
		t.Error("distance-2 swap should not be adjacent")
	}
	if n := core.NewSwap(b, a).Normalized(); n.A != a || n.B != b {
		t.Errorf("Normalized() = %v, want %v first", n, a)
	}
}

func TestParseKind(t *testing.T) {
	testCases := []struct {
		in   string
		kind core.Kind
		ok   bool
	}{
		{"R", core.KindRed, true},
		{"green", core.KindGreen, true},
		{"o", core.KindOrange, true},
		{".", core.KindNone, true},
		{"x", core.KindNone, false},
	}

	for _, tc := range testCases {
		kind, ok := core.ParseKind(tc.in)
		if kind != tc.kind || ok != tc.ok {
			t.Errorf("ParseKind(%q) = (%v, %v), want (%v, %v)", tc.in, kind, ok, tc.kind, tc.ok)
		}
	}

	if len(core.Kinds(4)) != 4 || len(core.Kinds(99)) != len(core.AllKinds()) {
		t.Error("Kinds(n) should clamp to the playable set")
	}
}
