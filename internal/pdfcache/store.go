// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfcache stores raw PDF blobs keyed by paper ID in a local
// SQLite database. The cache is durable across runs and is never
// cleared automatically; entries leave only on explicit delete.
package pdfcache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store manages the PDF cache database. Operations are atomic at
// single-key granularity; there are no cross-key invariants.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at path and creates the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS pdfs (
		id        TEXT PRIMARY KEY,
		data      BLOB NOT NULL,
		size      INTEGER NOT NULL,
		stored_at TEXT NOT NULL
	)`)
	return err
}

// Put stores blob under id, overwriting any existing blob for the same
// id (idempotent upsert).
func (s *Store) Put(ctx context.Context, id string, blob []byte) error {
	if id == "" {
		return fmt.Errorf("empty cache key")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pdfs (id, data, size, stored_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, size = excluded.size, stored_at = excluded.stored_at`,
		id, blob, len(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storing PDF %s: %w", id, err)
	}
	return nil
}

// Get returns the blob stored under id, or nil (with a nil error) when
// the id is not cached.
func (s *Store) Get(ctx context.Context, id string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM pdfs WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading PDF %s: %w", id, err)
	}
	return blob, nil
}

// Has reports whether id is cached without reading the blob.
func (s *Store) Has(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM pdfs WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking PDF %s: %w", id, err)
	}
	return true, nil
}

// Delete removes the blob stored under id. Deleting a missing id is a
// no-op success.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pdfs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting PDF %s: %w", id, err)
	}
	return nil
}

// ListIDs returns the cached paper IDs in lexical order.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM pdfs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Entry describes one cached PDF for listings.
type Entry struct {
	ID       string
	Size     int64
	StoredAt time.Time
}

// Entries returns metadata for all cached PDFs in lexical ID order.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, size, stored_at FROM pdfs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var storedAt string
		if err := rows.Scan(&e.ID, &e.Size, &storedAt); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, storedAt); parseErr == nil {
			e.StoredAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
