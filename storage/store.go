// Package storage persists editor state locally (SQLite) and optionally
// uploads finished renders to S3.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"reelcut/timeline"
)

// ErrProjectNotFound is returned when loading a name that was never saved.
var ErrProjectNotFound = errors.New("project not found")

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	name       TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// Store is a local, file-backed project store.
type Store struct {
	conn *sql.DB
}

// Open creates or opens the database at dbPath, creating parent directories
// as needed.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	if _, err := conn.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

func (s *Store) Close() error { return s.conn.Close() }

// Save upserts the project state under name. Playback intent is not
// persisted; a loaded project always opens paused.
func (s *Store) Save(name string, state timeline.State) error {
	if name == "" {
		return errors.New("project name is required")
	}
	state = state.Clone()
	state.IsPlaying = false

	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	_, err = s.conn.Exec(`
		INSERT INTO projects (name, state, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		name, string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save project %q: %w", name, err)
	}
	return nil
}

// Load rehydrates the project state saved under name.
func (s *Store) Load(name string) (timeline.State, error) {
	var blob string
	err := s.conn.QueryRow(`SELECT state FROM projects WHERE name = ?`, name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return timeline.State{}, ErrProjectNotFound
	}
	if err != nil {
		return timeline.State{}, fmt.Errorf("load project %q: %w", name, err)
	}

	var state timeline.State
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		return timeline.State{}, fmt.Errorf("decode project %q: %w", name, err)
	}
	return state, nil
}

// ProjectInfo is one row of the project listing.
type ProjectInfo struct {
	Name      string `json:"name"`
	UpdatedAt string `json:"updated_at"`
}

// List returns saved projects, most recently updated first.
func (s *Store) List() ([]ProjectInfo, error) {
	rows, err := s.conn.Query(`SELECT name, updated_at FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []ProjectInfo
	for rows.Next() {
		var p ProjectInfo
		if err := rows.Scan(&p.Name, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a saved project. Deleting an unknown name is a no-op.
func (s *Store) Delete(name string) error {
	_, err := s.conn.Exec(`DELETE FROM projects WHERE name = ?`, name)
	return err
}
