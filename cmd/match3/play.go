package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagBoard      string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play [campaign|endless|puzzle]",
	Short: "Play a mode",
	Long: `Start playing the given mode. Campaign is the default.

Controls:
  Arrows/WASD  - Move cursor (with a tile selected: swap)
  Space/Enter  - Select or deselect a tile
  H/?          - Show a hint
  P            - Pause
  R            - Restart
  Q/Ctrl+C     - Quit

Difficulty options (campaign and endless):
  easy   - More moves, fewer tile kinds
  normal - Default progression
  hard   - Starts further along the difficulty curve
  fixed  - No progression

Examples:
  match3 play
  match3 play campaign --level 3
  match3 play endless --seed 42
  match3 play puzzle --board 002
  match3 play puzzle --board ./my-board.yaml
  match3 play --config ./match3.yaml`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"campaign", "endless", "puzzle"},
	RunE:      runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagBoard, "board", "", "Puzzle board: built-in ID or YAML file")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start at (1-based)")
}

// modeGameID maps a mode name to its registry ID. Registry IDs pass through.
func modeGameID(mode string) (string, error) {
	switch mode {
	case "", "campaign":
		return "match3", nil
	case "endless":
		return "match3_endless", nil
	case "puzzle":
		return "match3_puzzle", nil
	}
	if registry.Exists(mode) {
		return mode, nil
	}
	return "", fmt.Errorf("unknown mode %q (run 'match3 list')", mode)
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	if flagBoard != "" && mode == "" {
		mode = "puzzle"
	}

	gameID, err := modeGameID(mode)
	if err != nil {
		return err
	}

	logger, closeLog := interactiveLogger()
	defer closeLog()

	match3.SetConfigPath(flagConfig)
	match3.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if g, ok := game.(*match3.Game); ok {
		g.Select(flagLevel, flagBoard)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "game", gameID, "seed", flagSeed)
	if err := tui.Run(game, store, logger, runtimeConfig()); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
