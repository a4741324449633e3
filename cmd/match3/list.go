package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modes and built-in puzzle boards",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	games := registry.List()

	fmt.Fprintln(out, "Modes:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, g := range games {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, g.ID, g.Description)
	}

	boards, err := levels.Builtin()
	if err != nil {
		return fmt.Errorf("load boards: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Puzzle boards:")
	fmt.Fprintln(out)
	for _, b := range boards {
		fmt.Fprintf(out, "  %s  %-16s %dx%d  %d moves  target %d\n",
			b.ID, b.Name, b.Width(), b.Height(), b.Moves, b.Target)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'match3 play [campaign|endless|puzzle]' to start.")
	return nil
}
