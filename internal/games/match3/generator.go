package match3

import (
	"errors"
	"fmt"
	"math/rand"

	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// ErrGenerateFailed is returned when no acceptable board was found within
// the attempt budget.
var ErrGenerateFailed = errors.New("match3: board generation failed")

// Generator produces random boards and refills.
// All randomness comes from the injected rng, so a seed reproduces a game.
type Generator struct {
	rng      *rand.Rand
	kinds    []m3.Kind
	attempts int
}

// NewGenerator creates a generator drawing from the first kinds tile kinds.
func NewGenerator(rng *rand.Rand, kinds, attempts int) *Generator {
	g := &Generator{rng: rng, attempts: max(attempts, 1)}
	g.SetKinds(kinds)
	return g
}

// SetKinds changes the number of kinds used by later boards and refills.
func (g *Generator) SetKinds(n int) {
	g.kinds = m3.Kinds(max(n, 3))
}

// Kinds returns the number of kinds in use.
func (g *Generator) Kinds() int {
	return len(g.kinds)
}

// Generate returns a w×h board with no matches and at least one legal swap.
func (g *Generator) Generate(w, h int) (m3.Grid, error) {
	for attempt := 0; attempt < g.attempts; attempt++ {
		rows := make([][]m3.Kind, h)
		for y := range rows {
			rows[y] = make([]m3.Kind, w)
			for x := range rows[y] {
				rows[y][x] = g.pickSafe(rows, x, y)
			}
		}

		grid, err := m3.GridFromKinds(rows)
		if err != nil {
			return m3.Grid{}, fmt.Errorf("match3: generate %dx%d: %w", w, h, err)
		}
		if len(m3.DetectPossibleSwaps(grid)) > 0 {
			return grid, nil
		}
	}
	return m3.Grid{}, fmt.Errorf("%w: %dx%d with %d kinds after %d attempts", ErrGenerateFailed, w, h, len(g.kinds), g.attempts)
}

// pickSafe chooses a kind for (x, y) that does not complete a run of three
// with the two cells to the left or the two cells above. Cells are filled
// row by row, so those are the only neighbours already set.
func (g *Generator) pickSafe(rows [][]m3.Kind, x, y int) m3.Kind {
	allowed := make([]m3.Kind, 0, len(g.kinds))
	for _, k := range g.kinds {
		if x >= 2 && rows[y][x-1] == k && rows[y][x-2] == k {
			continue
		}
		if y >= 2 && rows[y-1][x] == k && rows[y-2][x] == k {
			continue
		}
		allowed = append(allowed, k)
	}
	// With three or more kinds at most two are excluded.
	return allowed[g.rng.Intn(len(allowed))]
}

// Refill fills every empty cell with a random kind. New tiles may form
// matches; resolving them is the cascade's job.
func (g *Generator) Refill(grid m3.Grid) m3.Grid {
	changes := make(map[m3.Coord]m3.Kind)
	for _, c := range grid.Coords() {
		if grid.KindAt(c) == m3.KindNone {
			changes[c] = g.kinds[g.rng.Intn(len(g.kinds))]
		}
	}
	if len(changes) == 0 {
		return grid
	}
	next, err := grid.Apply(changes)
	if err != nil {
		// Coordinates come from grid.Coords.
		return grid
	}
	return next
}

// Shuffle permutes the tiles of grid until the result has no matches and at
// least one legal swap. Empty cells stay where they are.
func (g *Generator) Shuffle(grid m3.Grid) (m3.Grid, error) {
	var cells []m3.Coord
	var kinds []m3.Kind
	for _, c := range grid.Coords() {
		if k := grid.KindAt(c); k.Valid() {
			cells = append(cells, c)
			kinds = append(kinds, k)
		}
	}

	for attempt := 0; attempt < g.attempts; attempt++ {
		g.rng.Shuffle(len(kinds), func(i, j int) {
			kinds[i], kinds[j] = kinds[j], kinds[i]
		})

		changes := make(map[m3.Coord]m3.Kind, len(cells))
		for i, c := range cells {
			changes[c] = kinds[i]
		}
		next, err := grid.Apply(changes)
		if err != nil {
			return m3.Grid{}, fmt.Errorf("match3: shuffle: %w", err)
		}
		if len(m3.FindAllMatches(next)) == 0 && len(m3.DetectPossibleSwaps(next)) > 0 {
			return next, nil
		}
	}
	return m3.Grid{}, fmt.Errorf("%w: no playable shuffle after %d attempts", ErrGenerateFailed, g.attempts)
}
