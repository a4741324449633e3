package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Grid is an immutable rectangular board of tile kinds.
// Cells are stored in row-major order: index = y*w + x.
// Mutating operations return a new Grid; the receiver is never altered, so
// grids can be shared freely between the engine, the game and renderers.
type Grid struct {
	w     int
	h     int
	cells []Kind
}

// NewGrid creates a w x h grid with every cell set to KindNone.
func NewGrid(w, h int) (Grid, error) {
	if w <= 0 || h <= 0 {
		return Grid{}, fmt.Errorf("grid size %dx%d: %w", w, h, ErrInvalidArgument)
	}
	return Grid{w: w, h: h, cells: make([]Kind, w*h)}, nil
}

// GridFromKinds creates a grid from rows of kinds. All rows must have equal length.
func GridFromKinds(rows [][]Kind) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, fmt.Errorf("grid has no rows: %w", ErrInvalidArgument)
	}
	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		return Grid{}, err
	}
	for y, row := range rows {
		if len(row) != g.w {
			return Grid{}, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), g.w, ErrInvalidArgument)
		}
		copy(g.cells[y*g.w:], row)
	}
	return g, nil
}

// GridFromRows parses a grid from letter rows such as "RGB.Y".
// Each rune is parsed with ParseKind; "." is an empty cell.
func GridFromRows(rows []string) (Grid, error) {
	kinds := make([][]Kind, len(rows))
	for y, row := range rows {
		kinds[y] = make([]Kind, 0, utf8.RuneCountInString(row))
		for x, r := range row {
			k, ok := ParseKind(string(r))
			if !ok {
				return Grid{}, fmt.Errorf("row %d col %d: unknown kind %q: %w", y, x, r, ErrInvalidArgument)
			}
			kinds[y] = append(kinds[y], k)
		}
	}
	return GridFromKinds(kinds)
}

// Width returns the number of columns.
func (g Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return g.h
}

// IsZero returns true for the zero-value Grid, which is not a usable board.
func (g Grid) IsZero() bool {
	return g.w == 0 || g.h == 0 || g.cells == nil
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.w && c.Y >= 0 && c.Y < g.h
}

// index converts a coordinate to a flat array index.
func (g Grid) index(c Coord) int {
	return c.Y*g.w + c.X
}

// Get returns the tile at c.
func (g Grid) Get(c Coord) (Tile, error) {
	if !g.InBounds(c) {
		return Tile{}, fmt.Errorf("get %v on %dx%d grid: %w", c, g.w, g.h, ErrOutOfRange)
	}
	return Tile{Kind: g.cells[g.index(c)], Pos: c}, nil
}

// KindAt returns the kind at c, or KindNone when c is out of bounds.
func (g Grid) KindAt(c Coord) Kind {
	if !g.InBounds(c) {
		return KindNone
	}
	return g.cells[g.index(c)]
}

// Set returns a new grid equal to g except that c holds t.Kind.
// The tile's position is taken from c, not from t.Pos.
func (g Grid) Set(c Coord, t Tile) (Grid, error) {
	if !g.InBounds(c) {
		return Grid{}, fmt.Errorf("set %v on %dx%d grid: %w", c, g.w, g.h, ErrOutOfRange)
	}
	next := g.clone()
	next.cells[next.index(c)] = t.Kind
	return next, nil
}

// SetKind is Set for a bare kind.
func (g Grid) SetKind(c Coord, k Kind) (Grid, error) {
	return g.Set(c, Tile{Kind: k, Pos: c})
}

// Swap returns a new grid with the tiles at a and b exchanged.
// Equivalent to Set(a, tile at b) followed by Set(b, tile at a).
func (g Grid) Swap(a, b Coord) (Grid, error) {
	if !g.InBounds(a) || !g.InBounds(b) {
		return Grid{}, fmt.Errorf("swap %v<->%v on %dx%d grid: %w", a, b, g.w, g.h, ErrOutOfRange)
	}
	next := g.clone()
	ia, ib := next.index(a), next.index(b)
	next.cells[ia], next.cells[ib] = next.cells[ib], next.cells[ia]
	return next, nil
}

// Apply returns a new grid with every kind in changes written at its coordinate.
// Out-of-bounds entries fail the whole call.
func (g Grid) Apply(changes map[Coord]Kind) (Grid, error) {
	next := g.clone()
	for c, k := range changes {
		if !g.InBounds(c) {
			return Grid{}, fmt.Errorf("apply %v on %dx%d grid: %w", c, g.w, g.h, ErrOutOfRange)
		}
		next.cells[next.index(c)] = k
	}
	return next, nil
}

// clone returns a grid backed by a fresh copy of the cell slice.
func (g Grid) clone() Grid {
	cells := make([]Kind, len(g.cells))
	copy(cells, g.cells)
	return Grid{w: g.w, h: g.h, cells: cells}
}

// Coords returns all coordinates ordered by row then column.
func (g Grid) Coords() []Coord {
	coords := make([]Coord, 0, g.w*g.h)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			coords = append(coords, C(x, y))
		}
	}
	return coords
}

// Count returns the number of cells holding kind k.
func (g Grid) Count(k Kind) int {
	n := 0
	for _, cell := range g.cells {
		if cell == k {
			n++
		}
	}
	return n
}

// Equal returns true if two grids have the same dimensions and contents.
func (g Grid) Equal(other Grid) bool {
	if g.w != other.w || g.h != other.h {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows renders the grid as letter rows, the inverse of GridFromRows.
func (g Grid) Rows() []string {
	rows := make([]string, g.h)
	var sb strings.Builder
	for y := 0; y < g.h; y++ {
		sb.Reset()
		for x := 0; x < g.w; x++ {
			sb.WriteRune(g.cells[g.index(C(x, y))].Char())
		}
		rows[y] = sb.String()
	}
	return rows
}

// String returns the rows joined by newlines.
func (g Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
