package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
}

// cellStyle is everything about a cell except its rune.
type cellStyle struct {
	color   core.Color
	reverse bool
	bold    bool
}

func styleOf(c core.Cell) cellStyle {
	return cellStyle{color: c.Color, reverse: c.Reverse, bold: c.Bold}
}

func (cs cellStyle) render() lipgloss.Style {
	style, ok := colorStyles[cs.color]
	if !ok {
		style = colorStyles[core.ColorDefault]
	}
	if cs.reverse {
		style = style.Reverse(true)
	}
	if cs.bold {
		style = style.Bold(true)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same style share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := styleOf(s.GetCell(x, y))

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if styleOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(start.render().Render(run.String()))
		}
	}
	return sb.String()
}

// RenderGrid draws a board outside a running game, two columns per tile.
// Marked cells are shown reversed.
func RenderGrid(grid m3.Grid, marked map[m3.Coord]bool) string {
	scr := core.NewScreen(grid.Width()*2, grid.Height())
	for _, c := range grid.Coords() {
		glyph, color := match3.TileGlyph(grid.KindAt(c))
		if grid.KindAt(c) == m3.KindNone {
			glyph, color = '·', core.ColorGray
		}
		scr.SetCell(c.X*2, c.Y, core.Cell{Rune: glyph, Color: color, Reverse: marked[c]})
	}
	return RenderScreen(scr)
}
