// Package storage provides SQLite-based persistence for player progress and
// level results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPlayer is the progress key used for local play.
const DefaultPlayer = "local"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// LevelResult records how one level session ended.
type LevelResult struct {
	ID           int64
	SessionID    string
	Player       string
	Level        int
	Difficulty   string
	Score        int
	Threshold    int
	Won          bool
	WordsFound   int
	DurationSecs int
	CreatedAt    time.Time
}

// PlayerStats contains aggregated statistics for a player.
type PlayerStats struct {
	Player       string
	CurrentLevel int
	Played       int
	Won          int
	BestScore    int
	TotalScore   int64
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS progress (
			player TEXT PRIMARY KEY,
			current_level INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			player TEXT NOT NULL,
			level INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			threshold INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			words_found INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_player ON results(player, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(player, level, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadLevel returns the persisted current level for player, or 0 when the
// player has no progress yet.
func (s *Store) LoadLevel(player string) (int, error) {
	var level int
	err := s.db.QueryRow(
		"SELECT current_level FROM progress WHERE player = ?",
		player,
	).Scan(&level)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load level: %w", err)
	}
	return level, nil
}

// SaveLevel stores player's current level, replacing any previous value.
func (s *Store) SaveLevel(player string, level int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (player, current_level, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET
		   current_level = excluded.current_level,
		   updated_at = excluded.updated_at`,
		player, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save level: %w", err)
	}
	return nil
}

// ResetProgress deletes player's progress and results.
func (s *Store) ResetProgress(player string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM progress WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM results WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// SaveResult records the outcome of a level session.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r LevelResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results
		 (session_id, player, level, difficulty, score, threshold, won, words_found, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.Player,
		r.Level,
		r.Difficulty,
		r.Score,
		r.Threshold,
		r.Won,
		r.WordsFound,
		r.DurationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentResults retrieves player's most recent level results, newest first.
func (s *Store) RecentResults(player string, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, player, level, difficulty, score, threshold,
		        won, words_found, duration_secs, created_at
		 FROM results
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var r LevelResult
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.SessionID,
			&r.Player,
			&r.Level,
			&r.Difficulty,
			&r.Score,
			&r.Threshold,
			&r.Won,
			&r.WordsFound,
			&r.DurationSecs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// BestScore returns player's highest score on level.
// Returns 0 if the level was never played.
func (s *Store) BestScore(player string, level int) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE player = ? AND level = ?",
		player, level,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats retrieves aggregated statistics for player.
func (s *Store) Stats(player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	level, err := s.LoadLevel(player)
	if err != nil {
		return nil, err
	}
	stats.CurrentLevel = level

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(SUM(score), 0), MAX(created_at)
		 FROM results WHERE player = ?`,
		player,
	).Scan(&stats.Played, &stats.Won, &stats.BestScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
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
