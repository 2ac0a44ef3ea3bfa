// Package storage provides the run leaderboard for finished maze sessions.
// Runs are kept in an in-memory SQLite database that lives as long as the
// process. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome values stored with each run.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// ErrInvalidRun is returned when a run cannot be recorded.
var ErrInvalidRun = errors.New("storage: invalid run")

// Store manages the leaderboard database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Run is one finished maze session.
type Run struct {
	ID         string // Assigned by SaveRun when empty
	MazeID     string
	Player     string
	Score      int
	Outcome    string
	Kills      int
	CoinPct    int
	DurationMS int64
	CreatedAt  time.Time
}

// MazeStats contains aggregated statistics for a maze.
type MazeStats struct {
	MazeID     string
	Runs       int
	Wins       int
	HighScore  int
	AvgScore   float64
	TotalKills int64
	LastPlayed time.Time
}

// Open creates an empty in-memory leaderboard and runs migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database, so all
	// callers must share one.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			maze_id TEXT NOT NULL,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			kills INTEGER NOT NULL DEFAULT 0,
			coin_pct INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_maze_id ON runs(maze_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(maze_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection. The leaderboard is lost.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished session and returns its ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.MazeID == "" {
		return "", fmt.Errorf("%w: empty maze id", ErrInvalidRun)
	}
	if run.Outcome != OutcomeWon && run.Outcome != OutcomeLost {
		return "", fmt.Errorf("%w: outcome %q", ErrInvalidRun, run.Outcome)
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Player == "" {
		run.Player = "anonymous"
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, maze_id, player, score, outcome, kills, coin_pct, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.MazeID, run.Player, run.Score, run.Outcome, run.Kills, run.CoinPct, run.DurationMS,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

// TopRuns retrieves the best N runs for the given maze.
// Results are ordered by score descending.
func (s *Store) TopRuns(mazeID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, maze_id, player, score, outcome, kills, coin_pct, duration_ms, created_at
		 FROM runs
		 WHERE maze_id = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		mazeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.MazeID, &r.Player, &r.Score, &r.Outcome,
			&r.Kills, &r.CoinPct, &r.DurationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the highest score for the given maze.
// Returns 0 if no runs exist.
func (s *Store) HighScore(mazeID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE maze_id = ?",
		mazeID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given maze.
func (s *Store) ClearRuns(mazeID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE maze_id = ?", mazeID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a specific maze.
func (s *Store) Stats(mazeID string) (*MazeStats, error) {
	stats := &MazeStats{MazeID: mazeID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(SUM(kills), 0),
		        MAX(created_at)
		 FROM runs WHERE maze_id = ?`,
		OutcomeWon, mazeID,
	).Scan(&stats.Runs, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.TotalKills, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get maze stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStats retrieves statistics for every maze that has been played.
func (s *Store) AllStats() (map[string]*MazeStats, error) {
	rows, err := s.db.Query(
		`SELECT maze_id, COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        MAX(score), AVG(score), SUM(kills), MAX(created_at)
		 FROM runs
		 GROUP BY maze_id`,
		OutcomeWon,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all maze stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*MazeStats)
	for rows.Next() {
		var st MazeStats
		var lastPlayed any
		if err := rows.Scan(&st.MazeID, &st.Runs, &st.Wins, &st.HighScore,
			&st.AvgScore, &st.TotalKills, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.MazeID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime converts a scanned DATETIME column. The driver returns either
// time.Time or the raw text depending on how the value was produced.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
