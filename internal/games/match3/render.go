package match3

import (
	"fmt"
	"slices"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Layout constants
const (
	cellW        = 3 // Decorator, glyph, decorator
	hudHeight    = 2
	footerHeight = 2
	minHUDWidth  = 40
)

type tileStyle struct {
	glyph rune
	color platformcore.Color
}

// Each kind has its own shape so the board reads without color.
var tileStyles = map[m3.Kind]tileStyle{
	m3.KindRed:    {'●', platformcore.ColorRed},
	m3.KindGreen:  {'▲', platformcore.ColorGreen},
	m3.KindBlue:   {'■', platformcore.ColorBlue},
	m3.KindYellow: {'★', platformcore.ColorYellow},
	m3.KindPurple: {'◆', platformcore.ColorMagenta},
	m3.KindOrange: {'♥', platformcore.ColorOrange},
}

// TileGlyph returns the glyph and color used for a kind.
func TileGlyph(k m3.Kind) (rune, platformcore.Color) {
	if s, ok := tileStyles[k]; ok {
		return s.glyph, s.color
	}
	return ' ', platformcore.ColorDefault
}

// boardRect returns the screen area of the board including its border.
func (g *Game) boardRect(dst *platformcore.Screen) platformcore.Rect {
	grid := g.engine.Grid()
	w := grid.Width()*cellW + 2
	h := grid.Height() + 2
	x := (dst.Width() - w) / 2
	return platformcore.NewRect(x, hudHeight, w, h)
}

// cellOrigin returns the screen position of the left decorator of cell c.
func cellOrigin(board platformcore.Rect, c m3.Coord) (int, int) {
	return board.X + 1 + c.X*cellW, board.Y + 1 + c.Y
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		minW, minH := g.minScreenSize()
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	g.renderHUD(dst)
	if !g.engine.Grid().IsZero() {
		board := g.boardRect(dst)
		dst.DrawBox(board, platformcore.ColorGray)
		g.renderTiles(dst, board)
		g.renderFooter(dst, board)
	}
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	dst.DrawTextColor(1, 0, fmt.Sprintf("Score: %d", g.score), platformcore.ColorBrightWhite)

	moves := "Moves: ∞"
	if g.movesLeft >= 0 {
		moves = fmt.Sprintf("Moves: %d", g.movesLeft)
	}
	movesColor := platformcore.ColorDefault
	if g.movesLeft >= 0 && g.movesLeft <= 3 {
		movesColor = platformcore.ColorRed
	}
	dst.DrawTextCenteredColor(0, moves, movesColor)

	var right, progress string
	switch g.mode {
	case ModeCampaign:
		right = fmt.Sprintf("Level %d/%d", g.levelIndex+1, LevelCount())
		progress = fmt.Sprintf("Target: %d/%d", min(g.score-g.levelBase, g.target), g.target)
	case ModePuzzle:
		right = "Board " + g.board.ID
		if g.target > 0 {
			progress = fmt.Sprintf("Cleared: %d/%d", min(g.cleared, g.target), g.target)
		} else {
			progress = fmt.Sprintf("Cleared: %d", g.cleared)
		}
	default:
		right = fmt.Sprintf("Colors: %d", g.gen.Kinds())
		progress = fmt.Sprintf("Best cascade: x%d", g.longestCascade)
	}
	dst.DrawText(dst.Width()-utf8.RuneCountInString(right)-1, 0, right)
	dst.DrawTextCenteredColor(1, progress, platformcore.ColorCyan)
}

func (g *Game) renderTiles(dst *platformcore.Screen, board platformcore.Rect) {
	grid := g.engine.Grid()

	pending := make(map[m3.Coord]bool)
	for _, c := range m3.MatchedCoords(g.pending) {
		pending[c] = true
	}

	for _, c := range grid.Coords() {
		sx, sy := cellOrigin(board, c)
		glyph, color := TileGlyph(grid.KindAt(c))
		left, right, decoColor := g.decorators(c, pending[c])

		reverse := g.phase == PhasePlaying && c == g.cursor
		dst.SetCell(sx, sy, platformcore.Cell{Rune: left, Color: decoColor, Reverse: reverse})
		dst.SetCell(sx+1, sy, platformcore.Cell{Rune: glyph, Color: color, Reverse: reverse, Bold: pending[c]})
		dst.SetCell(sx+2, sy, platformcore.Cell{Rune: right, Color: decoColor, Reverse: reverse})
	}
}

// decorators picks the markers drawn on either side of a tile, by priority.
func (g *Game) decorators(c m3.Coord, pending bool) (rune, rune, platformcore.Color) {
	inSwap := func(s m3.Swap) bool { return s.A == c || s.B == c }

	switch {
	case pending:
		return '*', '*', platformcore.ColorBrightWhite
	case g.hasSelection && g.selected == c:
		return '[', ']', platformcore.ColorBrightWhite
	case g.flashTicks > 0 && inSwap(g.flash):
		return '!', '!', platformcore.ColorRed
	case g.showHint && inSwap(g.hint):
		return '<', '>', platformcore.ColorCyan
	case g.refillTicks > 0 && slices.Contains(g.refilled, c):
		return '+', '+', platformcore.ColorGreen
	}
	return ' ', ' ', platformcore.ColorDefault
}

func (g *Game) renderFooter(dst *platformcore.Screen, board platformcore.Rect) {
	if g.message != "" {
		dst.DrawTextCenteredColor(board.Bottom(), g.message, platformcore.ColorYellow)
	}
	controls := "Arrows: move  Space: select  H: hint  P: pause  Q: quit"
	if utf8.RuneCountInString(controls) > dst.Width() {
		controls = "Arrows Space H P Q"
	}
	dst.DrawTextCenteredColor(dst.Height()-1, controls, platformcore.ColorGray)
}

func (g *Game) renderOverlay(dst *platformcore.Screen) {
	switch {
	case g.paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case g.phase == PhaseLevelCleared:
		drawCenteredBox(dst, fmt.Sprintf("LEVEL %d CLEARED", g.levelIndex+1), fmt.Sprintf("Score: %d", g.score))
	case g.phase == PhaseGameOver:
		title := "GAME OVER"
		if g.message != "" {
			title = "GAME OVER - " + g.message
		}
		drawCenteredBox(dst, title, fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case g.phase == PhaseWon:
		drawCenteredBox(dst, "YOU WIN!", fmt.Sprintf("Final Score: %d  |  Press R to restart", g.score))
	}
}

// drawCenteredBox draws a centered message box over the board.
func drawCenteredBox(dst *platformcore.Screen, title, subtitle string) {
	tw, sw := utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)
	screen := platformcore.NewRect(0, 0, dst.Width(), dst.Height())
	box := screen.Centered(max(tw, sw)+4, 5)

	dst.FillRect(box)
	dst.DrawBox(box, platformcore.ColorBrightWhite)
	dst.DrawTextColor(box.X+(box.W-tw)/2, box.Y+1, title, platformcore.ColorBrightWhite)
	dst.DrawText(box.X+(box.W-sw)/2, box.Y+3, subtitle)
}
