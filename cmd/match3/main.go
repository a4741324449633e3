// match3 is a terminal match-3 game built on a small, testable logic core.
//
// Usage:
//
//	match3 list                - List available modes
//	match3 play [mode]         - Play a mode (campaign, endless or puzzle)
//	match3 menu                - Start the interactive menu
//	match3 scores [mode]       - Show high scores and recent runs
//	match3 serve               - Start the SSH server for remote play
//	match3 api                 - Start the HTTP analysis API
//	match3 analyze <board>     - Report matches and legal swaps on a board
//	match3 generate            - Print a freshly generated board as YAML
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.arcade/match3.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/storage"

	// Register the match-3 modes.
	_ "github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 in your terminal",
	Long: `match3 is a tile-swapping puzzle game for the terminal.

Swap two neighbouring tiles to line up three or more of a kind.
Matches clear, tiles fall, new tiles drop in and cascades score extra.

Available commands:
  list      - Show all modes
  play      - Play a mode directly
  menu      - Interactive menu with level and board pickers
  scores    - View high scores and recent runs
  serve     - Start SSH server for remote play
  api       - Start the HTTP analysis API
  analyze   - Inspect a board file or built-in board
  generate  - Generate a playable board

Examples:
  match3 play
  match3 play endless --difficulty hard
  match3 play puzzle --board 003
  match3 serve --ssh :2222
  match3 analyze ./boards/mine.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/match3.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(generateCmd)
}

// newLogger builds the process logger. Server commands log to stderr;
// interactive commands pass a file so the alt screen stays clean.
func newLogger(w *os.File) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
	})
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// interactiveLogger logs to ~/.arcade/match3.log while a TUI owns the
// terminal. The returned close func is always safe to call.
func interactiveLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err == nil {
		dir := filepath.Join(home, ".arcade")
		if err = os.MkdirAll(dir, 0o755); err == nil {
			var f *os.File
			f, err = os.OpenFile(filepath.Join(dir, "match3.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				return newLogger(f), func() { _ = f.Close() }
			}
		}
	}
	logger := newLogger(os.Stderr)
	logger.SetLevel(log.ErrorLevel)
	return logger, func() {}
}

// runtimeConfig reads the terminal size and the global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. Games still run without one, so a
// failure is only logged.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
