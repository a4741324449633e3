package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMatch3 loads match-3 configuration.
// Search order: customPath -> ~/.arcade/configs/match3.yaml -> ./configs/match3.yaml -> embedded default.
// Files are decoded over the defaults, so a file only needs the keys it changes.
// A custom path that cannot be read, parsed or validated is an error; the
// implicit locations are skipped silently when they do not yield a valid config.
func LoadMatch3(customPath string) (Match3Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Match3Config{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := ParseMatch3(data)
		if err != nil {
			return Match3Config{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths("match3.yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := ParseMatch3(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseMatch3(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// ParseMatch3 decodes YAML over DefaultMatch3Config and validates the result.
func ParseMatch3(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Match3Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Match3Config{}, err
	}
	return cfg, nil
}

// searchPaths returns the implicit config locations, user directory first.
func searchPaths(filename string) []string {
	paths := make([]string, 0, 2)
	if p := userConfigPath(filename); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", filename))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
// Easy drops a tile kind and adds moves; hard does the opposite.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Board.Kinds = max(cfg.Board.Kinds-1, MinKinds)
		if cfg.Gameplay.Moves > 0 {
			cfg.Gameplay.Moves += 5
		}
		cfg.Gameplay.HintDelayTicks = min(cfg.Gameplay.HintDelayTicks, 300)
	case DifficultyHard:
		cfg.Board.Kinds = min(cfg.Board.Kinds+1, MaxKinds)
		cfg.Gameplay.HintDelayTicks = 0
	}
}
