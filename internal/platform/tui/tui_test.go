package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"up", core.ActionUp, false},
		{"w", core.ActionUp, false},
		{"down", core.ActionDown, false},
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"right", core.ActionRight, false},
		{" ", core.ActionSelect, false},
		{"enter", core.ActionSelect, false},
		{"h", core.ActionHint, false},
		{"esc", core.ActionBack, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(keyMsg(tt.key))
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", tt.key, action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := map[string]MenuAction{
		"up":    MenuActionUp,
		"j":     MenuActionDown,
		"enter": MenuActionSelect,
		"esc":   MenuActionBack,
		"tab":   MenuActionScoreboard,
		"q":     MenuActionQuit,
		"x":     MenuActionNone,
	}
	for key, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(key)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", key, got, want)
		}
	}
}

func press(m MenuModel, keys ...string) MenuModel {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(MenuModel)
	}
	return m
}

func TestMenuListsModes(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	view := m.View()
	for _, title := range []string{"Match-3", "Match-3 (Endless)", "Match-3 (Puzzle)"} {
		if !strings.Contains(view, title) {
			t.Errorf("menu is missing %q:\n%s", title, view)
		}
	}
}

func TestMenuEndlessStartsDirectly(t *testing.T) {
	// Modes are sorted by ID: match3, match3_endless, match3_puzzle.
	m := press(NewMenuModel(nil, core.DefaultConfig()), "down", "enter")

	r := m.Result()
	if r == nil || r.GameID != match3.IDEndless {
		t.Fatalf("Result() = %+v, want endless", r)
	}
}

func TestMenuCampaignLevel(t *testing.T) {
	m := press(NewMenuModel(nil, core.DefaultConfig()), "enter")
	if m.Result() != nil {
		t.Fatal("campaign should open the level list first")
	}
	if !strings.Contains(m.View(), "First Spark") {
		t.Errorf("level list not shown:\n%s", m.View())
	}

	m = press(m, "down", "down", "enter")
	r := m.Result()
	if r == nil || r.GameID != match3.IDCampaign || r.Level != 3 {
		t.Fatalf("Result() = %+v, want campaign level 3", r)
	}

	game, err := r.NewGame()
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if game.ID() != match3.IDCampaign {
		t.Errorf("NewGame created %s", game.ID())
	}
}

func TestMenuPuzzleBoardAndBack(t *testing.T) {
	m := press(NewMenuModel(nil, core.DefaultConfig()), "down", "down", "enter")
	if !strings.Contains(m.View(), "First Steps") {
		t.Fatalf("board list not shown:\n%s", m.View())
	}

	m = press(m, "esc")
	if m.stage != stageModes {
		t.Fatal("esc should return to the mode list")
	}

	m = press(m, "enter", "down", "enter")
	r := m.Result()
	if r == nil || r.GameID != match3.IDPuzzle || r.Board != "002" {
		t.Fatalf("Result() = %+v, want puzzle board 002", r)
	}
}

func TestMenuShowsBestRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	store.SaveRun(storage.Run{GameID: match3.IDPuzzle, BoardID: "001", Score: 270, Won: true})

	m := press(NewMenuModel(store, core.DefaultConfig()), "down", "down", "enter")
	if !strings.Contains(m.View(), "best 270") {
		t.Errorf("best run not shown:\n%s", m.View())
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	if m := press(NewMenuModel(nil, core.DefaultConfig()), "tab"); !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
	if m := press(NewMenuModel(nil, core.DefaultConfig()), "q"); !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestRenderScreenGroupsStyles(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "abc", core.ColorRed)
	s.SetCell(3, 0, core.Cell{Rune: 'X', Reverse: true})
	s.DrawText(0, 1, "plain")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "abc") || !strings.Contains(out, "X") || !strings.Contains(lines[1], "plain") {
		t.Errorf("rendered text lost content: %q", out)
	}
}

func TestGameModelRecordsResult(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	game := match3.NewPuzzle()
	m := NewGameModel(game, store, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()
	m.gameState = core.GameState{Score: 120, GameOver: true, Won: true}
	m.recordResult()

	if high, _ := store.HighScore(match3.IDPuzzle); high != 120 {
		t.Errorf("HighScore = %d, want 120", high)
	}
	runs, err := store.RecentRuns(match3.IDPuzzle, 5)
	if err != nil || len(runs) != 1 {
		t.Fatalf("RecentRuns = %v, %v", runs, err)
	}
	if !runs[0].Won || runs[0].BoardID != "001" {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	game := match3.New()
	m := NewGameModel(game, nil, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}).WithMenuExit()
	m.Init()

	next, _ := m.Update(keyMsg("esc"))
	if next.(GameModel).BackToMenu() {
		t.Error("back during play should only cancel the selection")
	}

	m.gameState.Paused = true
	next, _ = m.Update(keyMsg("esc"))
	if !next.(GameModel).BackToMenu() {
		t.Error("back while paused should return to the menu")
	}
}

func TestRenderGrid(t *testing.T) {
	grid, err := m3.GridFromRows([]string{"RG.", "BYR"})
	if err != nil {
		t.Fatal(err)
	}

	out := RenderGrid(grid, map[m3.Coord]bool{m3.C(0, 0): true})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	red, _ := match3.TileGlyph(m3.KindRed)
	if !strings.ContainsRune(lines[0], red) || !strings.ContainsRune(lines[0], '·') {
		t.Errorf("first row = %q", lines[0])
	}
}

func TestSessionMenuGameAndBack(t *testing.T) {
	var model tea.Model = NewSessionModel(nil, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	send := func(msg tea.Msg) {
		t.Helper()
		model, _ = model.Update(msg)
	}

	send(keyMsg("down"))
	send(keyMsg("enter"))
	s := model.(SessionModel)
	if s.screen != screenGame || s.game.game.ID() != match3.IDEndless {
		t.Fatalf("expected an endless game, screen %v", s.screen)
	}

	send(keyMsg("p"))
	send(TickMsg{})
	send(keyMsg("esc"))
	if s := model.(SessionModel); s.screen != screenMenu {
		t.Fatalf("expected the menu after back, screen %v", s.screen)
	}

	send(keyMsg("tab"))
	if s := model.(SessionModel); s.screen != screenScores {
		t.Fatalf("expected the scoreboard, screen %v", s.screen)
	}

	send(keyMsg("q"))
	if s := model.(SessionModel); !s.quitting {
		t.Error("q on the scoreboard should quit the session")
	}
}
