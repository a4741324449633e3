package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the hardcoded match-3 configuration.
// It mirrors defaults/match3.yaml and is the last fallback of the loader.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Width:  8,
			Height: 8,
			Kinds:  5,
		},
		Scoring: ScoringConfig{
			PointsPerTile:     10,
			Bonus4:            20,
			Bonus5:            50,
			CascadeMultiplier: 1,
		},
		Gameplay: GameplayConfig{
			Moves:               20,
			HintDelayTicks:      600, // 10 seconds at 60fps
			CascadeDelayTicks:   12,
			InvalidFlashTicks:   20,
			MaxGenerateAttempts: 200,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				ExtraKinds:    1,
				MoveReduction: 6,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match3", "match3_endless", "match3_puzzle":
		return defaultMatch3YAML
	default:
		return nil
	}
}
