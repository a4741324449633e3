package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

type errorRes struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorRes{Error: code, Detail: detail})
}

// decode reads a JSON body, bounded by the configured size.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	return true
}

// parseGrid turns request rows into a grid, answering 400 on failure.
func parseGrid(w http.ResponseWriter, rows []string) (m3.Grid, bool) {
	grid, err := m3.GridFromRows(rows)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_board", err.Error())
		return m3.Grid{}, false
	}
	return grid, true
}

// ------------------------------ boards -------------------------------------

type boardSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Kinds  int    `json:"kinds"`
	Moves  int    `json:"moves"`
	Target int    `json:"target"`
}

type boardDetail struct {
	Board    boardSummary    `json:"board"`
	Analysis match3.Analysis `json:"analysis"`
}

func summarize(b levels.Board) boardSummary {
	return boardSummary{
		ID:     b.ID,
		Name:   b.Name,
		Width:  b.Width(),
		Height: b.Height(),
		Kinds:  b.Kinds,
		Moves:  b.Moves,
		Target: b.Target,
	}
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := levels.Builtin()
	if err != nil {
		s.logger.Error("load boards", "error", err)
		writeError(w, http.StatusInternalServerError, "boards_unavailable", "")
		return
	}

	out := make([]boardSummary, len(boards))
	for i, b := range boards {
		out[i] = summarize(b)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := levels.BuiltinByID(chi.URLParam(r, "id"))
	if errors.Is(err, levels.ErrNotFound) {
		writeError(w, http.StatusNotFound, "board_not_found", chi.URLParam(r, "id"))
		return
	}
	if err != nil {
		s.logger.Error("load board", "error", err)
		writeError(w, http.StatusInternalServerError, "boards_unavailable", "")
		return
	}
	writeJSON(w, http.StatusOK, boardDetail{Board: summarize(b), Analysis: match3.Analyze(b.Grid)})
}

// ------------------------------ analysis -----------------------------------

type analyzeReq struct {
	Rows []string `json:"rows"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeReq
	if !s.decode(w, r, &req) {
		return
	}
	grid, ok := parseGrid(w, req.Rows)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, match3.Analyze(grid))
}

type swapReq struct {
	Rows []string     `json:"rows"`
	A    match3.Point `json:"a"`
	B    match3.Point `json:"b"`
}

type swapRes struct {
	Valid   bool               `json:"valid"`
	Reason  string             `json:"reason,omitempty"`
	Rows    []string           `json:"rows"`
	Matches []match3.MatchInfo `json:"matches"`
}

// handleSwap runs one swap through the engine the way the game does:
// initialize, validate and execute, then report the matches it made.
func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var req swapReq
	if !s.decode(w, r, &req) {
		return
	}
	grid, ok := parseGrid(w, req.Rows)
	if !ok {
		return
	}

	var rejected *m3.InvalidSwapAttemptedEvent
	engine := m3.NewEngine(m3.WithListener(func(ev m3.Event) {
		if e, ok := ev.(m3.InvalidSwapAttemptedEvent); ok {
			rejected = &e
		}
	}))
	if err := engine.InitializeBoard(grid); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_board", err.Error())
		return
	}

	res := swapRes{Matches: []match3.MatchInfo{}}
	if engine.ValidateAndExecuteSwap(m3.NewSwap(req.A.Coord(), req.B.Coord())) {
		res.Valid = true
		res.Matches = match3.MatchInfos(engine.ProcessMatches())
	} else if rejected != nil {
		res.Reason = rejected.Reason.String()
	}
	res.Rows = engine.Grid().Rows()

	writeJSON(w, http.StatusOK, res)
}

// ------------------------------ scores -------------------------------------

type scoreRes struct {
	Rank      int    `json:"rank"`
	Score     int    `json:"score"`
	CreatedAt string `json:"createdAt"`
}

type runRes struct {
	BoardID        string `json:"boardId,omitempty"`
	Score          int    `json:"score"`
	MovesUsed      int    `json:"movesUsed"`
	Matches        int    `json:"matches"`
	Cleared        int    `json:"cleared"`
	LongestCascade int    `json:"longestCascade"`
	Shuffles       int    `json:"shuffles"`
	Won            bool   `json:"won"`
	CreatedAt      string `json:"createdAt"`
}

type statsRes struct {
	GameID     string  `json:"gameId"`
	Games      int     `json:"games"`
	HighScore  int     `json:"highScore"`
	AvgScore   float64 `json:"avgScore"`
	LastPlayed string  `json:"lastPlayed"`
}

const timeLayout = time.RFC3339

// limitParam reads ?limit=, defaulting to def and capped at 100.
func limitParam(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, 100)
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "scores_disabled", "")
		return false
	}
	return true
}

func (s *Server) handleTopScores(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	scores, err := s.store.TopScores(chi.URLParam(r, "gameID"), limitParam(r, 10))
	if err != nil {
		s.logger.Error("top scores", "error", err)
		writeError(w, http.StatusInternalServerError, "query_failed", "")
		return
	}

	out := make([]scoreRes, len(scores))
	for i, e := range scores {
		out[i] = scoreRes{Rank: i + 1, Score: e.Score, CreatedAt: e.CreatedAt.Format(timeLayout)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecentRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	runs, err := s.store.RecentRuns(chi.URLParam(r, "gameID"), limitParam(r, 20))
	if err != nil {
		s.logger.Error("recent runs", "error", err)
		writeError(w, http.StatusInternalServerError, "query_failed", "")
		return
	}

	out := make([]runRes, len(runs))
	for i, run := range runs {
		out[i] = runRes{
			BoardID:        run.BoardID,
			Score:          run.Score,
			MovesUsed:      run.MovesUsed,
			Matches:        run.Matches,
			Cleared:        run.Cleared,
			LongestCascade: run.LongestCascade,
			Shuffles:       run.Shuffles,
			Won:            run.Won,
			CreatedAt:      run.CreatedAt.Format(timeLayout),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	all, err := s.store.GetAllGamesStats()
	if err != nil {
		s.logger.Error("game stats", "error", err)
		writeError(w, http.StatusInternalServerError, "query_failed", "")
		return
	}

	out := make([]statsRes, 0, len(all))
	for _, st := range all {
		out = append(out, statsRes{
			GameID:     st.GameID,
			Games:      st.GamesCount,
			HighScore:  st.HighScore,
			AvgScore:   st.AvgScore,
			LastPlayed: st.LastPlayed.Format(timeLayout),
		})
	}
	slices.SortFunc(out, func(a, b statsRes) int { return strings.Compare(a.GameID, b.GameID) })
	writeJSON(w, http.StatusOK, out)
}
