package results

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/trial"
)

const defaultLimit = 20

// Run is one row of the runs table.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	Rounds     int       `json:"rounds"`
	Solved     int       `json:"solved"`
	AvgGuesses float64   `json:"avgGuesses"`
	ElapsedMs  int64     `json:"elapsedMs"`
	TopK       int       `json:"topK"`
	Words      int       `json:"words"`
}

// SolvedRatio returns the share of rounds that ended in a win.
func (r Run) SolvedRatio() float64 {
	if r.Rounds == 0 {
		return 0
	}
	return float64(r.Solved) / float64(r.Rounds)
}

// Store persists trial runs.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InsertRun writes the run and every game in one transaction.
func (s *Store) InsertRun(ctx context.Context, sum trial.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO runs (id, started_at, rounds, solved, avg_guesses, elapsed_ms, top_k, words)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.ID, sum.StartedAt.UTC().Format(time.RFC3339Nano), sum.Rounds, sum.Solved,
		sum.AvgGuesses, sum.Elapsed.Milliseconds(), sum.TopK, sum.Words,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", sum.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO run_games (run_id, round, target, guesses, solved, degraded, path)
        VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare run_games: %w", err)
	}
	defer stmt.Close()
	for _, g := range sum.Games {
		if _, err := stmt.ExecContext(ctx,
			sum.ID, g.Round, g.Target, g.Turns(), g.Solved, g.Degraded, strings.Join(g.Guesses, ","),
		); err != nil {
			return fmt.Errorf("insert game %d: %w", g.Round, err)
		}
	}
	return tx.Commit()
}

// Recent returns the latest runs, newest first. Default limit is 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, started_at, rounds, solved, avg_guesses, elapsed_ms, top_k, words
        FROM runs
        ORDER BY started_at DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Rounds, &r.Solved, &r.AvgGuesses, &r.ElapsedMs, &r.TopK, &r.Words); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Games returns the games of one run in round order.
func (s *Store) Games(ctx context.Context, runID string) ([]trial.GameResult, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT round, target, solved, degraded, path
        FROM run_games
        WHERE run_id=?
        ORDER BY round ASC`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trial.GameResult
	for rows.Next() {
		var g trial.GameResult
		var path string
		if err := rows.Scan(&g.Round, &g.Target, &g.Solved, &g.Degraded, &path); err != nil {
			return nil, err
		}
		g.Guesses = []string{}
		if path != "" {
			g.Guesses = strings.Split(path, ",")
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
