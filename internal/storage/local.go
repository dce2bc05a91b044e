// Package storage implements the persistence bridge: a local SQLite-backed
// document store the workout store flushes to on every mutation, plus JSON
// export and import of the full state.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/liftlog/internal/models"
	_ "modernc.org/sqlite"
)

// StateKey is the fixed namespace key the full state document is stored
// under. It is part of the on-disk contract.
const StateKey = "workout-tracker-storage"

// Local is a durable key-value document store backed by SQLite.
type Local struct {
	db *sql.DB
}

// OpenLocal opens (or creates) the local database at dir/liftlog.db.
func OpenLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "liftlog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening local db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS app_state (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &Local{db: db}, nil
}

// Save replaces the stored state document wholesale.
func (l *Local) Save(state models.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	_, err = l.db.Exec(
		`INSERT OR REPLACE INTO app_state (key, value, updated_at) VALUES (?, ?, ?)`,
		StateKey, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// Load reads the stored state document. The second return is false when no
// document has been saved yet.
func (l *Local) Load() (models.State, bool, error) {
	var data []byte
	err := l.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, StateKey).Scan(&data)
	if err == sql.ErrNoRows {
		return models.State{}, false, nil
	}
	if err != nil {
		return models.State{}, false, fmt.Errorf("loading state: %w", err)
	}

	var state models.State
	if err := json.Unmarshal(data, &state); err != nil {
		return models.State{}, false, fmt.Errorf("decoding state: %w", err)
	}
	return state, true, nil
}

// Close closes the local database.
func (l *Local) Close() error {
	return l.db.Close()
}
