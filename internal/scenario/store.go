// Package scenario persists a single project-description slot. The slot
// is overwritten wholesale on save and read wholesale on load; there is
// no versioning and no identity beyond the one slot.
package scenario

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"impactsim/internal/logging"
	"impactsim/internal/sim"
)

const dbName = "impactsim.db"

// Store is the SQLite-backed slot.
type Store struct {
	db *sql.DB
}

func dbPath(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, ".impactsim", dbName)
}

// Open opens (creating if needed) the slot database under the workspace
// dot-directory.
func Open(workspace string) (*Store, error) {
	dir := filepath.Dir(dbPath(workspace))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace dir: %w", err)
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s", dbPath(workspace)))
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario store: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS scenario_slot (
		id       INTEGER PRIMARY KEY CHECK (id = 1),
		payload  TEXT NOT NULL,
		saved_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init scenario store: %w", err)
	}

	logging.Store("scenario store opened at %s", dbPath(workspace))
	return &Store{db: db}, nil
}

// Save overwrites the slot with the full serialized project.
func (s *Store) Save(p sim.ProjectDescription) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize project: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO scenario_slot (id, payload, saved_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		logging.StoreError("save failed: %v", err)
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	logging.Store("scenario saved title=%q", p.Title)
	return nil
}

// Load reads the slot back. The second return value is false when the
// slot has never been saved.
func (s *Store) Load() (sim.ProjectDescription, bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM scenario_slot WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return sim.ProjectDescription{}, false, nil
	}
	if err != nil {
		return sim.ProjectDescription{}, false, fmt.Errorf("failed to load scenario: %w", err)
	}

	var p sim.ProjectDescription
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return sim.ProjectDescription{}, false, fmt.Errorf("failed to parse stored scenario: %w", err)
	}
	return p, true, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
