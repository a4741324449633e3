package core

import "fmt"

// Coord represents a cell position on the grid.
// X increases to the right, Y increases downward (row index).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent returns true if other shares an edge with c.
func (c Coord) Adjacent(other Coord) bool {
	return c.Manhattan(other) == 1
}

// before orders coordinates row-major (by Y, then X).
func (c Coord) before(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// Tile is a kind placed at a grid coordinate.
// Tiles are values; moving a tile produces a new Tile.
type Tile struct {
	Kind Kind
	Pos  Coord
}

// At returns a copy of the tile placed at c.
func (t Tile) At(c Coord) Tile {
	return Tile{Kind: t.Kind, Pos: c}
}

// Empty returns true if the tile carries the sentinel kind.
func (t Tile) Empty() bool {
	return !t.Kind.Valid()
}
