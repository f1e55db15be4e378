// Package storage persists high scores.
//
// Store keeps named best-score slots and a play history in SQLite through the
// pure-Go modernc.org/sqlite driver. FileStore keeps a single best score as a
// plain integer in a text file.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/skyflight/internal/config"
)

// sqliteTimeLayout is how CURRENT_TIMESTAMP values come back as text.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished round in the history.
type ScoreEntry struct {
	ID        int64
	Slot      string
	Score     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS high_scores (
			slot TEXT PRIMARY KEY,
			value INTEGER NOT NULL CHECK (value >= 0),
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_slot ON scores(slot);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(slot, score DESC);
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

// Slot returns the best-score store for one named slot.
func (s *Store) Slot(name string) HighScoreStore {
	return slotStore{store: s, slot: name}
}

// HighScore returns the best score kept in slot, or 0 if none was saved.
func (s *Store) HighScore(slot string) (int, error) {
	var value int
	err := s.db.QueryRow("SELECT value FROM high_scores WHERE slot = ?", slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return value, nil
}

// SetHighScore raises the best score kept in slot to value. A value that is
// not higher than the stored one leaves the row unchanged, so concurrent
// sessions sharing a slot can never lower it.
func (s *Store) SetHighScore(slot string, value int) error {
	if value < 0 {
		return fmt.Errorf("storage: high score must not be negative, got %d", value)
	}
	_, err := s.db.Exec(
		`INSERT INTO high_scores (slot, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		 WHERE excluded.value > high_scores.value`,
		slot, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// SaveScore appends a finished round to the history of slot.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(slot string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (slot, score) VALUES (?, ?)",
		slot, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores returns the best rounds of slot, highest first.
func (s *Store) TopScores(slot string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, slot, score, created_at FROM scores
		 WHERE slot = ? ORDER BY score DESC, id ASC LIMIT ?`,
		slot, limit,
	)
}

// RecentScores returns the latest rounds of slot, newest first.
func (s *Store) RecentScores(slot string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, slot, score, created_at FROM scores
		 WHERE slot = ? ORDER BY id DESC LIMIT ?`,
		slot, limit,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Slot, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes the history and the best score of slot.
func (s *Store) ClearScores(slot string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("DELETE FROM scores WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM high_scores WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot clear high score: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a slot.
type GameStats struct {
	Slot       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetGameStats aggregates the history of slot. HighScore is the stored best,
// which may exceed every recorded round if the slot was imported.
func (s *Store) GetGameStats(slot string) (*GameStats, error) {
	stats := &GameStats{Slot: slot}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE slot = ?`,
		slot,
	).Scan(&stats.GamesCount, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	best, err := s.HighScore(slot)
	if err != nil {
		return nil, err
	}
	stats.HighScore = best

	return stats, nil
}

// parseTimestamp handles both driver-typed and text DATETIME values.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// slotStore adapts one high_scores row to HighScoreStore.
type slotStore struct {
	store *Store
	slot  string
}

// Load implements HighScoreStore.
func (s slotStore) Load() (int, error) {
	return s.store.HighScore(s.slot)
}

// Save implements HighScoreStore. Lower values are ignored.
func (s slotStore) Save(value int) error {
	return s.store.SetHighScore(s.slot, value)
}
