package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Kinds returns how many tile kinds should be in play.
// At level 1.0 the board gains Scaling.ExtraKinds over base, capped at MaxKinds.
func (d *DifficultyManager) Kinds(base int, score int, ticks int) int {
	extra := int(math.Floor(d.Level(score, ticks) * float64(d.cfg.Scaling.ExtraKinds)))
	return min(max(base+extra, MinKinds), MaxKinds)
}

// Moves returns the move budget for a level whose nominal budget is base.
// Only the initial level counts: the budget must not shrink mid-level.
// A base of 0 means unlimited and is returned unchanged.
func (d *DifficultyManager) Moves(base int) int {
	if base <= 0 {
		return base
	}
	reduction := int(d.initialLevel * float64(d.cfg.Scaling.MoveReduction))
	return max(base-reduction, min(base, 5))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
