// Package match3 implements the match-3 puzzle game on top of the pure
// logic core in the core subpackage. The core decides which swaps are legal
// and where matches are; this package owns everything around it: board
// generation, gravity and refill, reshuffles, scoring, pacing and modes.
package match3

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-match3/internal/config"
	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign" // Score targets with move budgets, level by level
	ModeEndless  Mode = "endless"  // Score attack; kinds increase with score
	ModePuzzle   Mode = "puzzle"   // Fixed board, no refill, clear a number of tiles
)

// Registry IDs for each mode.
const (
	IDCampaign = "match3"
	IDEndless  = "match3_endless"
	IDPuzzle   = "match3_puzzle"
)

// Phase is the turn state of the game.
type Phase int

const (
	PhasePlaying      Phase = iota // Waiting for the player's swap
	PhaseCascade                   // Resolving matches, input ignored
	PhaseLevelCleared              // Campaign level done, advancing shortly
	PhaseGameOver
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseCascade:
		return "cascade"
	case PhaseLevelCleared:
		return "level_cleared"
	case PhaseGameOver:
		return "game_over"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

const (
	levelClearTicks = 120 // ~2s at 60fps
	messageTicks    = 90
	fallbackBoardID = "001"
)

// Package-level settings applied on the next Reset, set from the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game implements the match-3 game.
type Game struct {
	mode Mode

	// Choices from Select.
	startLevel int
	boardRef   string

	cfg        config.Match3Config
	difficulty *config.DifficultyManager
	scorer     Scorer
	rng        *rand.Rand
	gen        *Generator
	engine     *m3.Engine
	board      levels.Board // Puzzle mode only

	// Progress
	tick           uint64
	score          int
	levelIndex     int
	levelBase      int // Score when the current campaign level started
	target         int // Campaign: points; puzzle: tiles
	movesLeft      int // Negative means unlimited
	movesUsed      int
	cleared        int
	matchesTotal   int
	longestCascade int
	shuffles       int

	// Turn state
	phase        Phase
	cascade      int        // Resolution steps in the current turn
	cascadeTimer int        // Ticks since the last cascade step
	pending      []m3.Match // Matches shown before they are removed
	phaseTicks   int

	// Cursor and feedback
	cursor       m3.Coord
	selected     m3.Coord
	hasSelection bool
	idleTicks    int
	hint         m3.Swap
	showHint     bool
	flash        m3.Swap // Last rejected swap
	flashTicks   int
	refilled     []m3.Coord // Cells emptied by the last collapse
	refillTicks  int
	message      string
	messageTicks int

	// Screen
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewPuzzle creates a puzzle game. The board is chosen with Select and
// defaults to the first built-in board.
func NewPuzzle() *Game {
	return &Game{mode: ModePuzzle}
}

func init() {
	registry.Register(IDCampaign, func() registry.Game { return New() })
	registry.Register(IDEndless, func() registry.Game { return NewEndless() })
	registry.Register(IDPuzzle, func() registry.Game { return NewPuzzle() })
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.mode {
	case ModeEndless:
		return IDEndless
	case ModePuzzle:
		return IDPuzzle
	default:
		return IDCampaign
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeEndless:
		return "Match-3 (Endless)"
	case ModePuzzle:
		return "Match-3 (Puzzle)"
	default:
		return "Match-3"
	}
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	switch g.mode {
	case ModeEndless:
		return "Score attack, more colors as you go"
	case ModePuzzle:
		return "Hand-made boards, no refill, clear the target"
	default:
		return "Reach the target score before moves run out"
	}
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		cfg = config.DefaultMatch3Config()
	}
	config.ApplyMatch3Preset(&cfg, difficultyPreset)

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.scorer = NewScorer(cfg.Scoring)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.gen = NewGenerator(g.rng, cfg.Board.Kinds, cfg.Gameplay.MaxGenerateAttempts)

	// Hints get their own stream so asking for one does not change refills.
	g.engine = m3.NewEngine(
		m3.WithRand(rand.New(rand.NewSource(runtime.Seed+1))),
		m3.WithListener(g.onEngineEvent),
	)

	g.tick = 0
	g.score = 0
	g.movesUsed = 0
	g.cleared = 0
	g.matchesTotal = 0
	g.longestCascade = 0
	g.shuffles = 0
	g.paused = false
	g.message = ""
	g.messageTicks = 0

	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH

	g.levelIndex = 0
	if g.mode == ModeCampaign && g.startLevel > 0 && g.startLevel <= LevelCount() {
		g.levelIndex = g.startLevel - 1
	}
	// A chosen level applies to the first game only; restarts begin at level 1.
	g.startLevel = 0

	g.loadLevel()
	g.checkScreenSize()
}

// Select sets the starting campaign level (1-indexed, 0 for the first) and
// the puzzle board (built-in ID or file path) for this instance.
func (g *Game) Select(level int, board string) {
	g.startLevel = level
	g.boardRef = board
}

// Resize follows a terminal resize without restarting the game.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// loadLevel installs the board for the current mode and level.
func (g *Game) loadLevel() {
	g.phase = PhasePlaying
	g.phaseTicks = 0
	g.levelBase = g.score
	g.cascade = 0
	g.cascadeTimer = 0
	g.pending = nil
	g.hasSelection = false
	g.showHint = false
	g.idleTicks = 0
	g.flashTicks = 0
	g.refilled = nil
	g.refillTicks = 0

	switch g.mode {
	case ModePuzzle:
		board, err := resolvePuzzleBoard(g.boardRef)
		if err != nil {
			g.fail("Board not found")
			return
		}
		g.board = board
		g.target = board.Target
		g.movesLeft = movesBudget(board.Moves)
		g.gen.SetKinds(board.Kinds)
		g.installBoard(board.Grid)
		return

	case ModeEndless:
		g.target = 0
		g.movesLeft = movesBudget(g.cfg.Gameplay.Moves)
		g.gen.SetKinds(g.difficulty.Kinds(g.cfg.Board.Kinds, 0, 0))

	default:
		level := GetLevel(g.levelIndex)
		if level == nil {
			level = GetLevel(LevelCount() - 1)
		}
		g.target = level.Target
		g.movesLeft = movesBudget(g.difficulty.Moves(level.Moves))
		g.gen.SetKinds(level.Kinds)
	}

	grid, err := g.gen.Generate(g.cfg.Board.Width, g.cfg.Board.Height)
	if err != nil {
		g.fail("Could not generate a board")
		return
	}
	g.installBoard(grid)
}

// resolvePuzzleBoard loads the selected board, falling back to the first
// built-in one when nothing was selected.
func resolvePuzzleBoard(ref string) (levels.Board, error) {
	if ref == "" {
		ref = fallbackBoardID
	}
	return levels.Resolve(ref)
}

// movesBudget maps a configured budget to movesLeft; 0 means unlimited.
func movesBudget(n int) int {
	if n <= 0 {
		return -1
	}
	return n
}

// installBoard hands a fresh board to the engine and puts the cursor in the middle.
func (g *Game) installBoard(grid m3.Grid) {
	if err := g.engine.InitializeBoard(grid); err != nil {
		g.fail("Invalid board")
		return
	}
	g.cursor = m3.C(grid.Width()/2, grid.Height()/2)

	// Boards loaded from files may start with matches; resolve them first.
	if len(m3.FindAllMatches(grid)) > 0 {
		g.startCascade()
		return
	}
	if !g.engine.HasPossibleMoves() {
		g.resolveDeadlock()
	}
}

// checkScreenSize checks if the screen is large enough for the board and HUD.
func (g *Game) checkScreenSize() {
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

func (g *Game) minScreenSize() (int, int) {
	grid := g.engine.Grid()
	w, h := grid.Width(), grid.Height()
	if grid.IsZero() {
		w, h = g.cfg.Board.Width, g.cfg.Board.Height
	}
	return max(w*cellW+2, minHUDWidth), h + 2 + hudHeight + footerHeight
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && (g.phase == PhasePlaying || g.phase == PhaseCascade) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.decayTimers()

	switch g.phase {
	case PhasePlaying:
		g.handleInput(in)
		g.updateHint()
	case PhaseCascade:
		g.stepCascade()
	case PhaseLevelCleared:
		g.phaseTicks++
		if g.phaseTicks >= levelClearTicks {
			g.advanceLevel()
		}
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) decayTimers() {
	if g.flashTicks > 0 {
		g.flashTicks--
	}
	if g.refillTicks > 0 {
		g.refillTicks--
		if g.refillTicks == 0 {
			g.refilled = nil
		}
	}
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}
}

// direction returns the cursor delta requested by in.
func direction(in platformcore.InputFrame) (dx, dy int, ok bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return 0, -1, true
	case in.Has(platformcore.ActionDown):
		return 0, 1, true
	case in.Has(platformcore.ActionLeft):
		return -1, 0, true
	case in.Has(platformcore.ActionRight):
		return 1, 0, true
	}
	return 0, 0, false
}

// handleInput moves the cursor and turns selections into swaps.
// With a tile selected, a direction swaps it with that neighbour.
func (g *Game) handleInput(in platformcore.InputFrame) {
	if in.Empty() {
		return
	}
	g.idleTicks = 0
	grid := g.engine.Grid()

	if in.Has(platformcore.ActionHint) {
		g.requestHint()
	}
	if in.Has(platformcore.ActionBack) {
		g.hasSelection = false
	}

	if dx, dy, ok := direction(in); ok {
		if g.hasSelection {
			target := g.selected.Add(dx, dy)
			if grid.InBounds(target) {
				g.trySwap(m3.NewSwap(g.selected, target))
			}
			return
		}
		g.cursor = m3.C(
			platformcore.Clamp(g.cursor.X+dx, 0, grid.Width()-1),
			platformcore.Clamp(g.cursor.Y+dy, 0, grid.Height()-1),
		)
	}

	if in.Has(platformcore.ActionSelect) {
		g.selectAtCursor()
	}
}

func (g *Game) selectAtCursor() {
	switch {
	case !g.hasSelection:
		g.selected = g.cursor
		g.hasSelection = true
	case g.selected == g.cursor:
		g.hasSelection = false
	case g.selected.Adjacent(g.cursor):
		g.trySwap(m3.NewSwap(g.selected, g.cursor))
	default:
		g.selected = g.cursor
	}
}

// trySwap asks the engine to execute s. Rejections are reported through the
// engine's InvalidSwapAttempted event. Empty cells never move.
func (g *Game) trySwap(s m3.Swap) {
	g.hasSelection = false
	g.showHint = false

	grid := g.engine.Grid()
	if grid.KindAt(s.A) == m3.KindNone || grid.KindAt(s.B) == m3.KindNone {
		g.flash = s
		g.flashTicks = g.cfg.Gameplay.InvalidFlashTicks
		g.say("Nothing to swap")
		return
	}

	if !g.engine.ValidateAndExecuteSwap(s) {
		return
	}

	g.cursor = s.B
	g.movesUsed++
	if g.movesLeft > 0 {
		g.movesLeft--
	}
	g.startCascade()
}

func (g *Game) requestHint() {
	hint, ok := g.engine.RandomHint()
	if !ok {
		g.say("No moves available")
		return
	}
	g.hint = hint
	g.showHint = true
}

// updateHint shows a hint after the player has been idle long enough.
func (g *Game) updateHint() {
	g.idleTicks++
	delay := g.cfg.Gameplay.HintDelayTicks
	if delay > 0 && !g.showHint && g.idleTicks >= delay {
		if hint, ok := g.engine.RandomHint(); ok {
			g.hint = hint
			g.showHint = true
		}
	}
}

func (g *Game) startCascade() {
	g.phase = PhaseCascade
	g.cascade = 0
	g.cascadeTimer = 0
	g.pending = nil
}

// stepCascade alternates between finding matches (which are shown for one
// delay period) and clearing them with gravity and refill, until the board
// is stable.
func (g *Game) stepCascade() {
	g.cascadeTimer++
	if g.cascadeTimer < max(g.cfg.Gameplay.CascadeDelayTicks, 1) {
		return
	}
	g.cascadeTimer = 0

	if g.pending != nil {
		g.clearPending()
		return
	}

	matches := g.engine.ProcessMatches()
	if len(matches) == 0 {
		g.finishTurn()
		return
	}
	g.cascade++
	g.score += g.scorer.Score(matches, g.cascade)
	g.pending = matches
}

func (g *Game) clearPending() {
	coords := m3.MatchedCoords(g.pending)
	g.pending = nil
	g.cleared += len(coords)

	next, emptied := Collapse(g.engine.Grid(), coords)
	if g.mode != ModePuzzle {
		next = g.gen.Refill(next)
		g.refilled = emptied
		g.refillTicks = max(g.cfg.Gameplay.CascadeDelayTicks, 1)
	}
	if err := g.engine.UpdateBoard(next); err != nil {
		g.fail("Invalid board")
	}
}

// finishTurn runs once the board is stable: objectives first, then deadlock.
func (g *Game) finishTurn() {
	if g.engine.NeedsResolution() {
		// A swap that produced no matches cannot happen with a fresh cache,
		// but the engine must never stay locked.
		if err := g.engine.UpdateBoard(g.engine.Grid()); err != nil {
			g.fail("Invalid board")
			return
		}
	}

	g.longestCascade = max(g.longestCascade, g.cascade)
	if g.cascade >= 3 {
		g.say(fmt.Sprintf("Cascade x%d!", g.cascade))
	}
	g.cascade = 0
	g.phase = PhasePlaying
	g.idleTicks = 0

	if g.mode == ModeEndless {
		g.gen.SetKinds(g.difficulty.Kinds(g.cfg.Board.Kinds, g.score, int(g.tick)))
	}

	if g.checkObjectives() {
		return
	}
	if !g.engine.HasPossibleMoves() {
		g.resolveDeadlock()
	}
}

// checkObjectives ends the level or the game when a goal or limit is reached.
func (g *Game) checkObjectives() bool {
	switch g.mode {
	case ModeCampaign:
		if g.score-g.levelBase >= g.target {
			g.phase = PhaseLevelCleared
			g.phaseTicks = 0
			return true
		}
	case ModePuzzle:
		if g.target > 0 && g.cleared >= g.target {
			g.phase = PhaseWon
			return true
		}
	}

	if g.movesLeft == 0 {
		g.phase = PhaseGameOver
		g.say("Out of moves")
		return true
	}
	return false
}

// resolveDeadlock reshuffles a board with no legal swaps. Puzzle boards are
// fixed, so a deadlock there ends the game.
func (g *Game) resolveDeadlock() {
	if g.mode == ModePuzzle {
		g.phase = PhaseGameOver
		g.say("No moves left")
		return
	}

	grid := g.engine.Grid()
	next, err := g.gen.Shuffle(grid)
	if err != nil {
		next, err = g.gen.Generate(grid.Width(), grid.Height())
		if err != nil {
			g.fail("Could not reshuffle the board")
			return
		}
	}
	g.shuffles++
	if err := g.engine.UpdateBoard(next); err != nil {
		g.fail("Invalid board")
		return
	}
	g.say("No moves - board shuffled")
}

// advanceLevel moves to the next campaign level.
func (g *Game) advanceLevel() {
	if g.levelIndex >= LevelCount()-1 {
		g.phase = PhaseWon
		return
	}
	g.levelIndex++
	g.loadLevel()
}

// onEngineEvent turns engine events into HUD feedback and counters.
func (g *Game) onEngineEvent(ev m3.Event) {
	switch ev := ev.(type) {
	case m3.InvalidSwapAttemptedEvent:
		g.flash = ev.Swap
		g.flashTicks = g.cfg.Gameplay.InvalidFlashTicks
		switch ev.Reason {
		case m3.RejectNotLegal:
			g.say("No match there")
		case m3.RejectNotAdjacent:
			g.say("Tiles must be neighbours")
		}
	case m3.MatchesFoundEvent:
		g.matchesTotal += len(ev.Matches)
	case m3.PossibleSwapsUpdatedEvent:
		// A shown hint may no longer be legal.
		if g.showHint && !g.engine.IsLegal(g.hint) {
			g.showHint = false
		}
	}
}

func (g *Game) say(msg string) {
	g.message = msg
	g.messageTicks = messageTicks
}

func (g *Game) fail(msg string) {
	g.phase = PhaseGameOver
	g.say(msg)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver || g.phase == PhaseWon,
		Won:      g.phase == PhaseWon,
		Paused:   g.paused || g.tooSmall || g.phase == PhaseLevelCleared,
	}
}

// RunStats summarizes a game for the run history.
type RunStats struct {
	Mode           Mode
	BoardID        string // Puzzle board ID, or "level-N" in campaign
	Score          int
	MovesUsed      int
	Matches        int
	Cleared        int
	LongestCascade int
	Shuffles       int
}

// Stats returns the run statistics so far.
func (g *Game) Stats() RunStats {
	boardID := ""
	switch g.mode {
	case ModePuzzle:
		boardID = g.board.ID
	case ModeCampaign:
		boardID = fmt.Sprintf("level-%d", g.levelIndex+1)
	}
	return RunStats{
		Mode:           g.mode,
		BoardID:        boardID,
		Score:          g.score,
		MovesUsed:      g.movesUsed,
		Matches:        g.matchesTotal,
		Cleared:        g.cleared,
		LongestCascade: g.longestCascade,
		Shuffles:       g.shuffles,
	}
}
