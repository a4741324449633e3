package match3

import (
	"github.com/vovakirdan/tui-match3/internal/config"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Scorer turns matches into points.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a scorer from the scoring config.
func NewScorer(cfg config.ScoringConfig) Scorer {
	return Scorer{cfg: cfg}
}

// MatchPoints returns the base value of a single match.
func (s Scorer) MatchPoints(m m3.Match) int {
	points := m.Len() * s.cfg.PointsPerTile
	switch {
	case m.Len() >= 5:
		points += s.cfg.Bonus5
	case m.Len() == 4:
		points += s.cfg.Bonus4
	}
	return points
}

// Multiplier returns the factor applied at the given cascade level.
// Level 1 is the swap itself; every further level adds CascadeMultiplier.
func (s Scorer) Multiplier(cascade int) int {
	if cascade < 1 {
		cascade = 1
	}
	return 1 + (cascade-1)*s.cfg.CascadeMultiplier
}

// Score returns the points for one resolution step.
func (s Scorer) Score(matches []m3.Match, cascade int) int {
	total := 0
	for _, m := range matches {
		total += s.MatchPoints(m)
	}
	return total * s.Multiplier(cascade)
}
