package levels

import (
	"embed"
	"fmt"
	"os"
)

//go:embed boards/*.yaml
var builtinFS embed.FS

// Builtin returns the boards shipped with the binary, sorted by ID.
func Builtin() ([]Board, error) {
	return NewFSLoader(builtinFS, "boards").LoadAll()
}

// BuiltinByID returns a shipped board.
func BuiltinByID(id string) (Board, error) {
	boards, err := Builtin()
	if err != nil {
		return Board{}, err
	}
	return findByID(boards, id)
}

// Resolve finds a board by reference: an existing file path is loaded
// directly, anything else is treated as a built-in board ID.
func Resolve(ref string) (Board, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return NewLoader("").LoadFile(ref)
	}
	b, err := BuiltinByID(ref)
	if err != nil {
		return Board{}, fmt.Errorf("resolve board %q: %w", ref, err)
	}
	return b, nil
}
