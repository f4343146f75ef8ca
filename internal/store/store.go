// Package store persists each visitor session's anchors so a restarted
// server, or a session revived after eviction, can draw the line before
// every page element has reported in again.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Zachkp/portfolio/internal/line"

	_ "modernc.org/sqlite"
)

// AnchorStore keeps anchors in SQLite, keyed by session.
type AnchorStore struct {
	db *sql.DB
}

// StoredAnchor is an anchor with the time it was last written.
type StoredAnchor struct {
	line.Anchor
	UpdatedAt time.Time `json:"updated_at"`
}

// Open creates the database file and schema if needed.
func Open(path string) (*AnchorStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS session_anchors (
			session TEXT NOT NULL,
			id TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (session, id)
		);
		CREATE INDEX IF NOT EXISTS idx_session_anchors_updated ON session_anchors(updated_at);
		CREATE TABLE IF NOT EXISTS rebuilds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			segments INTEGER NOT NULL,
			total_length REAL NOT NULL,
			created_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &AnchorStore{db: db}, nil
}

// Close closes the database.
func (s *AnchorStore) Close() error {
	return s.db.Close()
}

// Save inserts or replaces an anchor of a session.
func (s *AnchorStore) Save(session string, a line.Anchor) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO session_anchors (session, id, x, y, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, session, a.ID, a.X, a.Y, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save anchor %s: %w", a.ID, err)
	}
	return nil
}

// Delete removes an anchor of a session. Deleting an unknown id is not an
// error.
func (s *AnchorStore) Delete(session, id string) error {
	if _, err := s.db.Exec(`DELETE FROM session_anchors WHERE session = ? AND id = ?`, session, id); err != nil {
		return fmt.Errorf("delete anchor %s: %w", id, err)
	}
	return nil
}

// List returns the stored anchors of a session ordered by id.
func (s *AnchorStore) List(session string) ([]StoredAnchor, error) {
	rows, err := s.db.Query(`
		SELECT id, x, y, updated_at FROM session_anchors
		WHERE session = ?
		ORDER BY id
	`, session)
	if err != nil {
		return nil, fmt.Errorf("list anchors: %w", err)
	}
	defer rows.Close()

	var out []StoredAnchor
	for rows.Next() {
		var a StoredAnchor
		if err := rows.Scan(&a.ID, &a.X, &a.Y, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan anchor: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Restore registers every stored anchor of a session and returns how many
// there were.
func (s *AnchorStore) Restore(session string, reg *line.Registry) (int, error) {
	anchors, err := s.List(session)
	if err != nil {
		return 0, err
	}
	for _, a := range anchors {
		reg.Register(a.ID, float64(a.X), float64(a.Y))
	}
	return len(anchors), nil
}

// Follow writes every change of a session's registry through to the store.
// The returned function stops following.
func (s *AnchorStore) Follow(session string, reg *line.Registry, onError func(error)) (cancel func()) {
	return reg.Subscribe(func(ev line.Event) {
		var err error
		switch ev.Kind {
		case line.EventRemoved:
			err = s.Delete(session, ev.Anchor.ID)
		default:
			err = s.Save(session, ev.Anchor)
		}
		if err != nil && onError != nil {
			onError(err)
		}
	})
}

// RecordRebuild logs one path rebuild for the admin dashboard.
func (s *AnchorStore) RecordRebuild(p line.Path) error {
	_, err := s.db.Exec(`
		INSERT INTO rebuilds (segments, total_length, created_at)
		VALUES (?, ?, ?)
	`, len(p.Segments), p.TotalLength, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record rebuild: %w", err)
	}
	return nil
}

// Stats summarises the store for the admin dashboard.
type Stats struct {
	Sessions        int64     `json:"sessions"`
	Anchors         int64     `json:"anchors"`
	Rebuilds        int64     `json:"rebuilds"`
	LastTotalLength float64   `json:"last_total_length"`
	LastRebuild     time.Time `json:"last_rebuild,omitempty"`
}

// Stats returns counts of stored sessions, anchors and recorded rebuilds.
func (s *AnchorStore) Stats() (*Stats, error) {
	stats := &Stats{}

	if err := s.db.QueryRow(`SELECT COUNT(DISTINCT session), COUNT(*) FROM session_anchors`).Scan(&stats.Sessions, &stats.Anchors); err != nil {
		return nil, err
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM rebuilds`).Scan(&stats.Rebuilds); err != nil {
		return nil, err
	}
	if stats.Rebuilds > 0 {
		err := s.db.QueryRow(`
			SELECT total_length, created_at FROM rebuilds
			ORDER BY id DESC
			LIMIT 1
		`).Scan(&stats.LastTotalLength, &stats.LastRebuild)
		if err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// PruneRebuilds deletes rebuild records older than the given age.
func (s *AnchorStore) PruneRebuilds(olderThan time.Duration) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM rebuilds WHERE created_at < ?`, time.Now().UTC().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("prune rebuilds: %w", err)
	}
	return result.RowsAffected()
}

// PruneAnchors deletes anchors of sessions that have not written anything
// for the given age.
func (s *AnchorStore) PruneAnchors(olderThan time.Duration) (int64, error) {
	result, err := s.db.Exec(`
		DELETE FROM session_anchors
		WHERE session IN (
			SELECT session FROM session_anchors
			GROUP BY session
			HAVING MAX(updated_at) < ?
		)
	`, time.Now().UTC().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("prune anchors: %w", err)
	}
	return result.RowsAffected()
}
