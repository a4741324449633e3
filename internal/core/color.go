package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorMagenta
	ColorOrange
	ColorCyan
	ColorWhite
	ColorGray
	ColorBrightWhite
)

// Cell is a single character on the screen with its styling.
type Cell struct {
	Rune    rune
	Color   Color
	Reverse bool // Swap foreground and background (cursor, selection)
	Bold    bool
}

// blank is the cleared state of every cell.
var blank = Cell{Rune: ' '}
