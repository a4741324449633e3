package core

import "fmt"

// Swap is an unordered pair of coordinates proposed for exchange.
// Swap{A: a, B: b} and Swap{A: b, B: a} are equal.
type Swap struct {
	A Coord
	B Coord
}

// NewSwap creates a swap between a and b.
func NewSwap(a, b Coord) Swap {
	return Swap{A: a, B: b}
}

// Normalized returns the swap with A before B in row-major order.
func (s Swap) Normalized() Swap {
	if s.B.before(s.A) {
		return Swap{A: s.B, B: s.A}
	}
	return s
}

// Equal compares two swaps ignoring coordinate order.
func (s Swap) Equal(other Swap) bool {
	return s.Normalized() == other.Normalized()
}

// Degenerate returns true if both coordinates are the same cell.
func (s Swap) Degenerate() bool {
	return s.A == s.B
}

// Adjacent returns true if the two cells share an edge.
func (s Swap) Adjacent() bool {
	return s.A.Adjacent(s.B)
}

// String returns a string representation of the swap.
func (s Swap) String() string {
	return fmt.Sprintf("%v<->%v", s.A, s.B)
}

// Orientation is the axis along which a match runs.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the string representation of an orientation.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MinRun is the shortest run of identical kinds that counts as a match.
const MinRun = 3

// Match is a run of at least MinRun same-kind tiles along one axis.
// Matches are produced fresh by every detection call and are not stored on the grid.
type Match struct {
	Coords      []Coord
	Kind        Kind
	Orientation Orientation
}

// Len returns the number of coordinates in the match.
func (m Match) Len() int {
	return len(m.Coords)
}

// Contains returns true if c is part of the match.
func (m Match) Contains(c Coord) bool {
	for _, mc := range m.Coords {
		if mc == c {
			return true
		}
	}
	return false
}

// clone returns a deep copy of the match.
func (m Match) clone() Match {
	coords := make([]Coord, len(m.Coords))
	copy(coords, m.Coords)
	return Match{Coords: coords, Kind: m.Kind, Orientation: m.Orientation}
}
