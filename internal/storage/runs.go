package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run is one finished game with the counters the score alone does not show.
type Run struct {
	ID             int64
	GameID         string
	BoardID        string // Puzzle board or campaign level; empty in endless
	Score          int
	MovesUsed      int
	Matches        int
	Cleared        int
	LongestCascade int
	Shuffles       int
	Won            bool
	CreatedAt      time.Time
}

const runColumns = `id, game_id, board_id, score, moves_used, matches, cleared,
	longest_cascade, shuffles, won, created_at`

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(run Run) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs
		 (game_id, board_id, score, moves_used, matches, cleared, longest_cascade, shuffles, won)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.GameID,
		run.BoardID,
		run.Score,
		run.MovesUsed,
		run.Matches,
		run.Cleared,
		run.LongestCascade,
		run.Shuffles,
		run.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest runs, newest first. An empty gameID
// returns runs of every mode. A non-positive limit means 20.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestRun returns the highest scoring run on a board, or nil if the board
// has not been played.
func (s *Store) BestRun(gameID, boardID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ? AND board_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT 1`,
		gameID, boardID,
	)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var createdAt any
	err := sc.Scan(
		&run.ID,
		&run.GameID,
		&run.BoardID,
		&run.Score,
		&run.MovesUsed,
		&run.Matches,
		&run.Cleared,
		&run.LongestCascade,
		&run.Shuffles,
		&run.Won,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan run: %w", err)
	}
	run.CreatedAt = parseTimestamp(createdAt)
	return run, nil
}
