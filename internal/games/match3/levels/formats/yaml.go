// Package formats provides pluggable board file format parsers.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// ErrInvalidBoard is wrapped by every semantic parse failure.
var ErrInvalidBoard = errors.New("invalid board")

// YAMLBoard is the on-disk layout of a board file.
type YAMLBoard struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Kinds    int               `yaml:"kinds,omitempty"`
	Moves    int               `yaml:"moves,omitempty"`
	Target   int               `yaml:"target,omitempty"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Board is a parsed board ready for use.
type Board struct {
	ID       string
	Name     string
	Kinds    int // Kinds in play; defaults to the kinds present in rows
	Moves    int // 0 means unlimited
	Target   int // Tiles to clear; 0 means clear as many as possible
	Grid     core.Grid
	Metadata map[string]string
}

// ParseYAML parses a YAML board file.
func ParseYAML(data []byte) (Board, error) {
	var yb YAMLBoard
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return Board{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yb.Board()
}

// Board converts and validates the raw YAML structure.
func (yb YAMLBoard) Board() (Board, error) {
	if yb.ID == "" {
		return Board{}, fmt.Errorf("missing id: %w", ErrInvalidBoard)
	}

	grid, err := core.GridFromRows(yb.Rows)
	if err != nil {
		return Board{}, fmt.Errorf("board %s: %w: %w", yb.ID, ErrInvalidBoard, err)
	}

	present := 0
	for _, k := range core.AllKinds() {
		if grid.Count(k) > 0 {
			present++
		}
	}

	kinds := yb.Kinds
	if kinds == 0 {
		kinds = max(present, 3)
	}
	if kinds < 3 || kinds > len(core.AllKinds()) {
		return Board{}, fmt.Errorf("board %s: kinds %d outside 3..%d: %w", yb.ID, kinds, len(core.AllKinds()), ErrInvalidBoard)
	}
	if present > kinds {
		return Board{}, fmt.Errorf("board %s: uses %d kinds but declares %d: %w", yb.ID, present, kinds, ErrInvalidBoard)
	}
	if yb.Moves < 0 || yb.Target < 0 {
		return Board{}, fmt.Errorf("board %s: moves and target must not be negative: %w", yb.ID, ErrInvalidBoard)
	}

	name := yb.Name
	if name == "" {
		name = yb.ID
	}

	return Board{
		ID:       yb.ID,
		Name:     name,
		Kinds:    kinds,
		Moves:    yb.Moves,
		Target:   yb.Target,
		Grid:     grid,
		Metadata: yb.Metadata,
	}, nil
}

// MarshalYAML encodes a board back to the file layout.
func MarshalYAML(b Board) ([]byte, error) {
	yb := YAMLBoard{
		ID:       b.ID,
		Name:     b.Name,
		Kinds:    b.Kinds,
		Moves:    b.Moves,
		Target:   b.Target,
		Rows:     b.Grid.Rows(),
		Metadata: b.Metadata,
	}
	return yaml.Marshal(yb)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
