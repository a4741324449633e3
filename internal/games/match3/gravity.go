package match3

import (
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Collapse clears the given cells and lets the tiles above fall into the
// gaps, column by column. It returns the new grid and the cells left empty
// at the top of each column, in row-major order; those are what a refill
// has to fill.
func Collapse(grid m3.Grid, cleared []m3.Coord) (m3.Grid, []m3.Coord) {
	gone := make(map[m3.Coord]bool, len(cleared))
	for _, c := range cleared {
		if grid.InBounds(c) {
			gone[c] = true
		}
	}

	w, h := grid.Width(), grid.Height()
	rows := make([][]m3.Kind, h)
	for y := range rows {
		rows[y] = make([]m3.Kind, w)
	}

	for x := 0; x < w; x++ {
		// Walk the column bottom-up, stacking survivors from the bottom.
		dst := h - 1
		for y := h - 1; y >= 0; y-- {
			c := m3.C(x, y)
			k := grid.KindAt(c)
			if gone[c] || k == m3.KindNone {
				continue
			}
			rows[dst][x] = k
			dst--
		}
	}

	var emptied []m3.Coord
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rows[y][x] == m3.KindNone {
				emptied = append(emptied, m3.C(x, y))
			}
		}
	}

	next, err := m3.GridFromKinds(rows)
	if err != nil {
		return grid, nil
	}
	return next, emptied
}
