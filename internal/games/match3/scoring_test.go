package match3

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/config"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func runOf(n int) m3.Match {
	coords := make([]m3.Coord, n)
	for i := range coords {
		coords[i] = m3.C(i, 0)
	}
	return m3.Match{Coords: coords, Kind: m3.KindRed, Orientation: m3.Horizontal}
}

func TestScorer(t *testing.T) {
	s := NewScorer(config.ScoringConfig{
		PointsPerTile:     10,
		Bonus4:            20,
		Bonus5:            50,
		CascadeMultiplier: 1,
	})

	tests := []struct {
		name    string
		matches []m3.Match
		cascade int
		want    int
	}{
		{"three", []m3.Match{runOf(3)}, 1, 30},
		{"four gets bonus", []m3.Match{runOf(4)}, 1, 60},
		{"five gets big bonus", []m3.Match{runOf(5)}, 1, 100},
		{"six counts as five", []m3.Match{runOf(6)}, 1, 110},
		{"two matches", []m3.Match{runOf(3), runOf(4)}, 1, 90},
		{"second cascade doubles", []m3.Match{runOf(3)}, 2, 60},
		{"third cascade triples", []m3.Match{runOf(3)}, 3, 90},
		{"cascade below one", []m3.Match{runOf(3)}, 0, 30},
		{"no matches", nil, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Score(tt.matches, tt.cascade); got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScorerFlatCascade(t *testing.T) {
	s := NewScorer(config.ScoringConfig{PointsPerTile: 5})
	if got := s.Multiplier(7); got != 1 {
		t.Errorf("Multiplier with CascadeMultiplier=0 = %d, want 1", got)
	}
}
