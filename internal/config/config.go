// Package config provides YAML-based game configuration loading and
// difficulty management for match-3.
package config

import (
	"errors"
	"fmt"
)

// Board limits accepted by Validate.
const (
	MinBoardSize = 3
	MaxBoardSize = 16
	MinKinds     = 3
	MaxKinds     = 6
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board      BoardConfig      `yaml:"board"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the generated board for endless and campaign modes.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Kinds  int `yaml:"kinds"` // Number of distinct tile kinds in play
}

// ScoringConfig defines how cleared tiles turn into points.
type ScoringConfig struct {
	PointsPerTile     int `yaml:"points_per_tile"`
	Bonus4            int `yaml:"bonus_4"`            // Extra points for a run of four
	Bonus5            int `yaml:"bonus_5"`            // Extra points for a run of five or more
	CascadeMultiplier int `yaml:"cascade_multiplier"` // Multiplier step per cascade level
}

// GameplayConfig defines pacing and move budgets.
type GameplayConfig struct {
	Moves               int `yaml:"moves"`                 // Move budget per campaign level (0 = unlimited)
	HintDelayTicks      int `yaml:"hint_delay_ticks"`      // Idle ticks before a hint is shown (0 = never)
	CascadeDelayTicks   int `yaml:"cascade_delay_ticks"`   // Ticks between cascade steps
	InvalidFlashTicks   int `yaml:"invalid_flash_ticks"`   // Ticks an invalid swap stays highlighted
	MaxGenerateAttempts int `yaml:"max_generate_attempts"` // Retries for board generation and shuffles
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ExtraKinds    int `yaml:"extra_kinds"`    // Kinds added at max difficulty
	MoveReduction int `yaml:"move_reduction"` // Moves removed at max initial level
}

// Validate checks the config for values the game cannot run with.
func (c Match3Config) Validate() error {
	b := c.Board
	if b.Width < MinBoardSize || b.Width > MaxBoardSize || b.Height < MinBoardSize || b.Height > MaxBoardSize {
		return fmt.Errorf("config: board %dx%d outside %d..%d: %w",
			b.Width, b.Height, MinBoardSize, MaxBoardSize, ErrInvalidConfig)
	}
	if b.Kinds < MinKinds || b.Kinds > MaxKinds {
		return fmt.Errorf("config: kinds %d outside %d..%d: %w", b.Kinds, MinKinds, MaxKinds, ErrInvalidConfig)
	}
	if c.Scoring.PointsPerTile <= 0 {
		return fmt.Errorf("config: points_per_tile must be positive: %w", ErrInvalidConfig)
	}
	if c.Gameplay.Moves < 0 {
		return fmt.Errorf("config: moves must not be negative: %w", ErrInvalidConfig)
	}
	if c.Gameplay.MaxGenerateAttempts <= 0 {
		return fmt.Errorf("config: max_generate_attempts must be positive: %w", ErrInvalidConfig)
	}
	switch c.Difficulty.Progression.Type {
	case "", "score", "time", "none":
	default:
		return fmt.Errorf("config: unknown progression type %q: %w", c.Difficulty.Progression.Type, ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Empty input yields "" and no error.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
