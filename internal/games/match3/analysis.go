package match3

import (
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Point is a JSON-friendly coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointOf converts a grid coordinate.
func PointOf(c m3.Coord) Point {
	return Point{X: c.X, Y: c.Y}
}

// Coord converts back to a grid coordinate.
func (p Point) Coord() m3.Coord {
	return m3.C(p.X, p.Y)
}

// MatchInfo describes one match for reports.
type MatchInfo struct {
	Kind        string  `json:"kind"`
	Orientation string  `json:"orientation"`
	Cells       []Point `json:"cells"`
}

// SwapInfo describes one legal swap for reports.
type SwapInfo struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Analysis is a static report on a board: what matches now and which
// swaps would make a match.
type Analysis struct {
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	Rows     []string    `json:"rows"`
	Matches  []MatchInfo `json:"matches"`
	Swaps    []SwapInfo  `json:"swaps"`
	Deadlock bool        `json:"deadlock"`
}

// Analyze reports on grid.
func Analyze(grid m3.Grid) Analysis {
	swaps := m3.DetectPossibleSwaps(grid)
	return Analysis{
		Width:    grid.Width(),
		Height:   grid.Height(),
		Rows:     grid.Rows(),
		Matches:  MatchInfos(m3.FindAllMatches(grid)),
		Swaps:    SwapInfos(swaps),
		Deadlock: len(swaps) == 0,
	}
}

// MatchInfos converts matches for reports. The result is never nil.
func MatchInfos(matches []m3.Match) []MatchInfo {
	out := make([]MatchInfo, 0, len(matches))
	for _, m := range matches {
		cells := make([]Point, len(m.Coords))
		for i, c := range m.Coords {
			cells[i] = PointOf(c)
		}
		out = append(out, MatchInfo{
			Kind:        m.Kind.String(),
			Orientation: m.Orientation.String(),
			Cells:       cells,
		})
	}
	return out
}

// SwapInfos converts swaps for reports. The result is never nil.
func SwapInfos(swaps []m3.Swap) []SwapInfo {
	out := make([]SwapInfo, 0, len(swaps))
	for _, s := range swaps {
		out = append(out, SwapInfo{A: PointOf(s.A), B: PointOf(s.B)})
	}
	return out
}
