package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// menuStage is the list currently shown.
type menuStage int

const (
	stageModes menuStage = iota
	stageLevels
	stageBoards
)

// MenuItem is one line of a menu list.
type MenuItem struct {
	Label  string
	Detail string
}

// MenuModel picks a mode, then a campaign level or puzzle board.
type MenuModel struct {
	modes     []registry.GameInfo
	boards    []levels.Board
	stage     menuStage
	cursors   [3]int
	width     int
	height    int
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	err       string

	quitting       bool
	openScoreboard bool
	result         *MenuResult
}

// NewMenuModel creates the menu. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		modes:     registry.List(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	count := len(m.items())

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursors[m.stage] > 0 {
			m.cursors[m.stage]--
		}
	case MenuActionDown:
		if m.cursors[m.stage] < count-1 {
			m.cursors[m.stage]++
		}
	case MenuActionBack:
		m.stage = stageModes
		m.err = ""
	case MenuActionScoreboard:
		if m.stage == stageModes {
			m.openScoreboard = true
			return m, tea.Quit
		}
	case MenuActionSelect:
		if count > 0 {
			return m.choose()
		}
	}
	return m, nil
}

// choose acts on the item under the cursor.
func (m MenuModel) choose() (tea.Model, tea.Cmd) {
	cursor := m.cursors[m.stage]

	switch m.stage {
	case stageModes:
		id := m.modes[cursor].ID
		switch id {
		case match3.IDCampaign:
			m.stage = stageLevels
			return m, nil
		case match3.IDPuzzle:
			boards, err := levels.Builtin()
			if err != nil || len(boards) == 0 {
				m.err = "No puzzle boards available"
				return m, nil
			}
			m.boards = boards
			m.stage = stageBoards
			return m, nil
		}
		m.result = &MenuResult{GameID: id}

	case stageLevels:
		m.result = &MenuResult{GameID: match3.IDCampaign, Level: cursor + 1}

	case stageBoards:
		m.result = &MenuResult{GameID: match3.IDPuzzle, Board: m.boards[cursor].ID}
	}
	return m, tea.Quit
}

// items lists the lines of the current stage.
func (m MenuModel) items() []MenuItem {
	switch m.stage {
	case stageLevels:
		items := make([]MenuItem, 0, match3.LevelCount())
		for _, lvl := range match3.Levels {
			items = append(items, MenuItem{
				Label:  fmt.Sprintf("%d. %s", lvl.ID, lvl.Name),
				Detail: fmt.Sprintf("target %d, %d moves, %d colors", lvl.Target, lvl.Moves, lvl.Kinds),
			})
		}
		return items

	case stageBoards:
		items := make([]MenuItem, 0, len(m.boards))
		for _, b := range m.boards {
			detail := fmt.Sprintf("%dx%d, clear %d", b.Width(), b.Height(), b.Target)
			if best := m.bestOn(b.ID); best > 0 {
				detail += fmt.Sprintf(", best %d", best)
			}
			items = append(items, MenuItem{Label: b.ID + " " + b.Name, Detail: detail})
		}
		return items
	}

	items := make([]MenuItem, 0, len(m.modes))
	for _, g := range m.modes {
		items = append(items, MenuItem{Label: g.Title, Detail: g.Description})
	}
	return items
}

func (m MenuModel) bestOn(boardID string) int {
	if m.store == nil {
		return 0
	}
	run, err := m.store.BestRun(match3.IDPuzzle, boardID)
	if err != nil || run == nil {
		return 0
	}
	return run.Score
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	title, subtitle := "M A T C H - 3", "Select a mode"
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	switch m.stage {
	case stageLevels:
		title, subtitle = "CAMPAIGN", "Select a starting level"
		controls = "Enter: Select  |  Esc: Back  |  Q: Quit"
	case stageBoards:
		title, subtitle = "PUZZLES", "Select a board"
		controls = "Enter: Select  |  Esc: Back  |  Q: Quit"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	cursor := m.cursors[m.stage]
	for i, item := range m.items() {
		line := "  " + item.Label
		if i == cursor {
			line = menuActiveStyle.Render("> " + item.Label)
		}
		if item.Detail != "" {
			line += "  " + menuDetailStyle.Render(item.Detail)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(centerText(menuErrorStyle.Render(m.err), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")
	return b.String()
}

// Result returns the choice, or nil while the user is still choosing.
func (m MenuModel) Result() *MenuResult {
	if m.result == nil {
		return nil
	}
	r := *m.result
	r.Config = m.config
	return &r
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width. Styled text is measured without
// its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the outcome of the menu.
type MenuResult struct {
	GameID          string
	Level           int    // Campaign starting level, 1-indexed; 0 for the first
	Board           string // Puzzle board ID
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// selector is implemented by games that take a level or board choice.
type selector interface {
	Select(level int, board string)
}

// NewGame creates the chosen game with the level or board applied.
func (r MenuResult) NewGame() (registry.Game, error) {
	game, err := registry.Create(r.GameID)
	if err != nil {
		return nil, err
	}
	if s, ok := game.(selector); ok {
		s.Select(r.Level, r.Board)
	}
	return game, nil
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	switch {
	case m.WantsScoreboard():
		return MenuResult{Config: m.Config(), WantsScoreboard: true}, nil
	case m.Result() != nil:
		return *m.Result(), nil
	default:
		return MenuResult{Config: m.Config(), Quit: true}, nil
	}
}
