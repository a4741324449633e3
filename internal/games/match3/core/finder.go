package core

import "sort"

// FindAllMatches scans every row left to right, then every column top to bottom,
// and returns the de-duplicated runs of MinRun or more identical kinds.
//
// Discovery order is part of the contract: horizontal runs row by row, then
// vertical runs column by column. When two runs share a cell the earlier one
// keeps it; the later run loses that cell and is dropped entirely if fewer than
// MinRun cells remain. As a result an L or T shape is reported as one full run
// plus (at most) a shortened perpendicular run, never with a cell counted twice.
func FindAllMatches(g Grid) []Match {
	if g.IsZero() {
		return nil
	}

	candidates := make([]Match, 0)
	for y := 0; y < g.h; y++ {
		candidates = scanLine(g, C(0, y), Horizontal, candidates)
	}
	for x := 0; x < g.w; x++ {
		candidates = scanLine(g, C(x, 0), Vertical, candidates)
	}

	return mergeOverlapping(candidates)
}

// FindMatchesTouching scans only the rows and columns that contain at least one
// of coords and applies the same ordering and de-duplication as FindAllMatches.
// Coordinates outside the grid are ignored.
func FindMatchesTouching(g Grid, coords ...Coord) []Match {
	if g.IsZero() || len(coords) == 0 {
		return nil
	}

	rowSet := make(map[int]bool)
	colSet := make(map[int]bool)
	for _, c := range coords {
		if !g.InBounds(c) {
			continue
		}
		rowSet[c.Y] = true
		colSet[c.X] = true
	}

	rows := sortedKeys(rowSet)
	cols := sortedKeys(colSet)

	candidates := make([]Match, 0)
	for _, y := range rows {
		candidates = scanLine(g, C(0, y), Horizontal, candidates)
	}
	for _, x := range cols {
		candidates = scanLine(g, C(x, 0), Vertical, candidates)
	}

	return mergeOverlapping(candidates)
}

// MatchedCoords returns the union of all match coordinates in row-major order.
func MatchedCoords(matches []Match) []Coord {
	seen := make(map[Coord]bool)
	coords := make([]Coord, 0)
	for _, m := range matches {
		for _, c := range m.Coords {
			if seen[c] {
				continue
			}
			seen[c] = true
			coords = append(coords, c)
		}
	}
	sort.Slice(coords, func(i, j int) bool {
		return coords[i].before(coords[j])
	})
	return coords
}

// scanLine walks one row or column starting at start and appends every run of
// MinRun or more to out.
func scanLine(g Grid, start Coord, o Orientation, out []Match) []Match {
	dx, dy, length := 1, 0, g.w
	if o == Vertical {
		dx, dy, length = 0, 1, g.h
	}

	runKind := KindNone
	run := make([]Coord, 0, length)

	closeRun := func() {
		if runKind.Valid() && len(run) >= MinRun {
			coords := make([]Coord, len(run))
			copy(coords, run)
			out = append(out, Match{Coords: coords, Kind: runKind, Orientation: o})
		}
		run = run[:0]
	}

	for i := 0; i < length; i++ {
		c := start.Add(i*dx, i*dy)
		k := g.KindAt(c)

		if k != runKind || !k.Valid() {
			closeRun()
			runKind = k
			if k.Valid() {
				run = append(run, c)
			}
			continue
		}
		run = append(run, c)
	}
	closeRun()

	return out
}

// mergeOverlapping removes cells already claimed by an earlier match.
// Cells are claimed even when the reduced match is then dropped.
func mergeOverlapping(candidates []Match) []Match {
	claimed := make(map[Coord]bool)
	result := make([]Match, 0, len(candidates))

	for _, m := range candidates {
		kept := make([]Coord, 0, len(m.Coords))
		for _, c := range m.Coords {
			if claimed[c] {
				continue
			}
			kept = append(kept, c)
		}
		for _, c := range kept {
			claimed[c] = true
		}
		if len(kept) >= MinRun {
			result = append(result, Match{Coords: kept, Kind: m.Kind, Orientation: m.Orientation})
		}
	}

	return result
}

// sortedKeys returns the keys of set in ascending order.
func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
