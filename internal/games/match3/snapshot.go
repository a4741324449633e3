package match3

import (
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Level     int // 1-indexed campaign level, 0 otherwise
	BoardID   string
	Score     int
	MovesLeft int // -1 for unlimited
	Target    int
	Cleared   int
	Kinds     int
	Cursor    m3.Coord
	Rows      []string
	Phase     string
	Swaps     int // Legal swaps on the current board
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	level := 0
	if g.mode == ModeCampaign {
		level = g.levelIndex + 1
	}
	phase := g.phase.String()
	if g.tooSmall {
		phase = "paused_small_window"
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Level:     level,
		BoardID:   g.Stats().BoardID,
		Score:     g.score,
		MovesLeft: g.movesLeft,
		Target:    g.target,
		Cleared:   g.cleared,
		Kinds:     g.gen.Kinds(),
		Cursor:    g.cursor,
		Rows:      g.engine.Grid().Rows(),
		Phase:     phase,
		Swaps:     len(g.engine.PossibleSwaps()),
	}
}
