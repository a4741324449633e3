// Package levels loads match-3 board files.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels/formats"
)

// ErrNotFound is returned when a board ID is not known.
var ErrNotFound = errors.New("board not found")

// Board is a complete board definition.
type Board struct {
	formats.Board
	FilePath string // Empty for built-in boards
}

// Width returns the board width.
func (b Board) Width() int { return b.Grid.Width() }

// Height returns the board height.
func (b Board) Height() int { return b.Grid.Height() }

// Playable reports whether the board starts without matches and offers at
// least one legal swap.
func (b Board) Playable() bool {
	return len(core.FindAllMatches(b.Grid)) == 0 && len(core.DetectPossibleSwaps(b.Grid)) > 0
}

// Loader loads boards from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS // Overrides Root when set
}

// NewLoader creates a loader for boards under root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// NewFSLoader creates a loader reading from fsys, rooted at dir.
func NewFSLoader(fsys fs.FS, dir string) *Loader {
	return &Loader{Root: dir, fsys: fsys}
}

func (l *Loader) walk(fn fs.WalkDirFunc) error {
	if l.fsys != nil {
		return fs.WalkDir(l.fsys, l.Root, fn)
	}
	return filepath.WalkDir(l.Root, fn)
}

func (l *Loader) read(path string) ([]byte, error) {
	if l.fsys != nil {
		return fs.ReadFile(l.fsys, path)
	}
	return os.ReadFile(path)
}

// LoadAll recursively loads every board file, skipping files that fail to
// parse. Boards are sorted by ID.
func (l *Loader) LoadAll() ([]Board, error) {
	var boards []Board

	err := l.walk(func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		board, err := l.LoadFile(path)
		if err != nil {
			return nil // Skip invalid files
		}
		boards = append(boards, board)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(boards, func(i, j int) bool {
		return boards[i].ID < boards[j].ID
	})
	return boards, nil
}

// LoadFile loads a single board file.
func (l *Loader) LoadFile(path string) (Board, error) {
	data, err := l.read(path)
	if err != nil {
		return Board{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return Board{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	b := Board{Board: parsed}
	if l.fsys == nil {
		b.FilePath = path
	}
	return b, nil
}

// LoadByID loads the board with the given ID.
func (l *Loader) LoadByID(id string) (Board, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return Board{}, err
	}
	return findByID(boards, id)
}

// ListIDs returns all board IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}
	return ids, nil
}

func findByID(boards []Board, id string) (Board, error) {
	for _, b := range boards {
		if b.ID == id {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Board, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Board{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
