package storage

import (
	"io"

	"github.com/charmbracelet/log"
)

// HighScoreStore persists a single best score.
// Load returns 0 when nothing has been saved yet.
type HighScoreStore interface {
	Load() (int, error)
	Save(value int) error
}

// Outcome is the result of comparing a finished round against the store.
type Outcome struct {
	Score     int  // Final score of the round
	Best      int  // Best score after the comparison
	NewRecord bool // Score beat the previous best and was saved
}

// Submit loads the stored best once and saves score only if it is higher.
// Storage errors are logged and never returned: a failed load counts as no
// previous best, a failed save still reports the round as a record.
func Submit(store HighScoreStore, score int, logger *log.Logger) Outcome {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	prev, err := store.Load()
	if err != nil {
		logger.Warn("cannot load high score", "error", err)
		prev = 0
	}

	if score <= prev {
		return Outcome{Score: score, Best: prev}
	}

	if err := store.Save(score); err != nil {
		logger.Warn("cannot save high score", "score", score, "error", err)
	} else {
		logger.Info("new high score", "score", score, "previous", prev)
	}
	return Outcome{Score: score, Best: score, NewRecord: true}
}

// MemoryStore keeps the best score in memory. Used when no persistent store
// is configured, such as anonymous SSH sessions.
type MemoryStore struct {
	Value int
}

// Load returns the kept value.
func (m *MemoryStore) Load() (int, error) {
	return m.Value, nil
}

// Save replaces the kept value.
func (m *MemoryStore) Save(value int) error {
	m.Value = value
	return nil
}

// History records every finished round, not only records.
type History interface {
	SaveScore(slot string, score int) (int64, error)
}

// Record appends score to the history of slot, logging failures.
// A nil history is allowed and records nothing.
func Record(h History, slot string, score int, logger *log.Logger) {
	if h == nil {
		return
	}
	if _, err := h.SaveScore(slot, score); err != nil && logger != nil {
		logger.Warn("cannot record score", "slot", slot, "score", score, "error", err)
	}
}
