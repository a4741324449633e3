package core_test

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestFindAllMatchesRowOfThree(t *testing.T) {
	g := mustGrid(t, "BRRRB")

	matches := core.FindAllMatches(g)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d: %+v", len(matches), matches)
	}

	m := matches[0]
	if m.Kind != core.KindRed {
		t.Errorf("match kind = %v, want red", m.Kind)
	}
	if m.Orientation != core.Horizontal {
		t.Errorf("match orientation = %v, want horizontal", m.Orientation)
	}
	want := []core.Coord{core.C(1, 0), core.C(2, 0), core.C(3, 0)}
	if !reflect.DeepEqual(m.Coords, want) {
		t.Errorf("match coords = %v, want %v", m.Coords, want)
	}
}

func TestFindAllMatchesCases(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		lengths []int
		orients []core.Orientation
	}{
		{
			name:    "no matches",
			rows:    []string{"RGB", "GBR", "BRG"},
			lengths: nil,
		},
		{
			name:    "run of two is not a match",
			rows:    []string{"RRG", "GBB", "BGR"},
			lengths: nil,
		},
		{
			name:    "vertical run",
			rows:    []string{"RGB", "RBG", "RGB"},
			lengths: []int{3},
			orients: []core.Orientation{core.Vertical},
		},
		{
			name:    "run at end of row",
			rows:    []string{"GBYYYY"},
			lengths: []int{4},
			orients: []core.Orientation{core.Horizontal},
		},
		{
			name:    "empty cells break runs",
			rows:    []string{"RR.RR"},
			lengths: nil,
		},
		{
			name:    "two separate runs in one row",
			rows:    []string{"RRRGGG"},
			lengths: []int{3, 3},
			orients: []core.Orientation{core.Horizontal, core.Horizontal},
		},
		{
			name: "cross shape keeps horizontal and shortens vertical",
			rows: []string{
				"GRG",
				"RRR",
				"GRG",
			},
			// Horizontal row 1 claims (1,1); vertical column 1 keeps only 2 cells and is dropped.
			lengths: []int{3},
			orients: []core.Orientation{core.Horizontal},
		},
		{
			name: "L shape with long vertical keeps both",
			rows: []string{
				"RRRG",
				"RGBY",
				"RBGY",
				"RYBG",
			},
			// Horizontal claims (0,0); vertical column 0 keeps (0,1),(0,2),(0,3).
			lengths: []int{3, 3},
			orients: []core.Orientation{core.Horizontal, core.Vertical},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := core.FindAllMatches(mustGrid(t, tt.rows...))

			if len(matches) != len(tt.lengths) {
				t.Fatalf("got %d matches, want %d: %+v", len(matches), len(tt.lengths), matches)
			}
			for i, m := range matches {
				if m.Len() != tt.lengths[i] {
					t.Errorf("match %d length = %d, want %d", i, m.Len(), tt.lengths[i])
				}
				if m.Orientation != tt.orients[i] {
					t.Errorf("match %d orientation = %v, want %v", i, m.Orientation, tt.orients[i])
				}
			}
		})
	}
}

func TestFindAllMatchesInvariants(t *testing.T) {
	boards := [][]string{
		{"RRRR", "RGBR", "RRRR", "GBGR"},
		{"YYY.", "Y.YY", "YYYY", "PPPY"},
		{"RGBRG", "RGBRG", "RGBRG", "BBBBB", "RGRGR"},
	}

	for _, rows := range boards {
		g := mustGrid(t, rows...)
		matches := core.FindAllMatches(g)

		seen := make(map[core.Coord]bool)
		for _, m := range matches {
			if m.Len() < core.MinRun {
				t.Errorf("board %v: match shorter than %d: %+v", rows, core.MinRun, m)
			}
			for _, c := range m.Coords {
				if seen[c] {
					t.Errorf("board %v: coordinate %v appears in more than one match", rows, c)
				}
				seen[c] = true
				if g.KindAt(c) != m.Kind {
					t.Errorf("board %v: %v has kind %v, match says %v", rows, c, g.KindAt(c), m.Kind)
				}
			}
		}

		again := core.FindAllMatches(g)
		if !reflect.DeepEqual(matches, again) {
			t.Errorf("board %v: FindAllMatches is not idempotent", rows)
		}
	}
}

func TestFindMatchesTouchingAgreesWithFullScan(t *testing.T) {
	g := mustGrid(t,
		"RRRGB",
		"GBYBG",
		"GBYRR",
		"GYYYB",
	)

	// Row 0 and column 0 only: the full scan restricted to these lines.
	touching := core.FindMatchesTouching(g, core.C(0, 0))
	full := core.FindAllMatches(g)

	restricted := make([]core.Match, 0)
	for _, m := range full {
		if m.Contains(core.C(0, 0)) || (m.Orientation == core.Horizontal && m.Coords[0].Y == 0) ||
			(m.Orientation == core.Vertical && m.Coords[0].X == 0) {
			restricted = append(restricted, m)
		}
	}

	if !reflect.DeepEqual(touching, restricted) {
		t.Errorf("touching = %+v, want %+v", touching, restricted)
	}

	// Row 3 holds the yellow run; column 2 is scanned too but its yellow
	// cells at (2,1),(2,2) only join (2,3) which the row already claimed.
	touching = core.FindMatchesTouching(g, core.C(2, 3))
	if len(touching) != 1 || touching[0].Kind != core.KindYellow || touching[0].Orientation != core.Horizontal {
		t.Errorf("touching (2,3) = %+v, want one horizontal yellow match", touching)
	}
}

func TestFindMatchesTouchingIgnoresOutOfRange(t *testing.T) {
	g := mustGrid(t, "RRR", "GBG")

	if got := core.FindMatchesTouching(g, core.C(10, 10)); len(got) != 0 {
		t.Errorf("expected no matches for out-of-range coordinate, got %+v", got)
	}
	if got := core.FindMatchesTouching(g); len(got) != 0 {
		t.Errorf("expected no matches for empty coordinate list, got %+v", got)
	}
}

func TestMatchedCoords(t *testing.T) {
	matches := []core.Match{
		{Coords: []core.Coord{core.C(2, 1), core.C(3, 1), core.C(4, 1)}, Kind: core.KindRed},
		{Coords: []core.Coord{core.C(0, 0), core.C(0, 1), core.C(0, 2)}, Kind: core.KindBlue},
	}

	got := core.MatchedCoords(matches)
	want := []core.Coord{core.C(0, 0), core.C(0, 1), core.C(2, 1), core.C(3, 1), core.C(4, 1), core.C(0, 2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchedCoords = %v, want %v", got, want)
	}
}
