// Package store persists extraction results to SQLite so batch runs
// stay queryable after the process exits. Only terminal outputs are
// stored; the engine's per-binding caches are never persisted.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Extraction is one persisted terminal result.
type Extraction struct {
	Document  string  // source document path
	OutputKey string  // outward rule key that produced it
	FactType  string  // fact type on the winning node, if any
	Score     float64 // score for that type
	Content   string  // extracted content (text, note, or rendered value)
}

// ResultStore is a SQLite-backed sink for extractions. Safe for
// concurrent use; writers from multiple worker goroutines share it.
type ResultStore struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// Open initializes the database at path, creating parent directories
// and the schema as needed.
func Open(path string) (*ResultStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &ResultStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initialize creates the required tables.
func (s *ResultStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS extractions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document TEXT NOT NULL,
		output_key TEXT NOT NULL,
		fact_type TEXT,
		score REAL DEFAULT 1.0,
		content TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_extractions_document ON extractions(document);
	CREATE INDEX IF NOT EXISTS idx_extractions_key ON extractions(output_key);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save writes a batch of extractions in one transaction.
func (s *ResultStore) Save(ctx context.Context, extractions []Extraction) error {
	if len(extractions) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO extractions(document, output_key, fact_type, score, content)
		VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range extractions {
		if _, err := stmt.ExecContext(ctx, e.Document, e.OutputKey, e.FactType, e.Score, e.Content); err != nil {
			return fmt.Errorf("failed to insert extraction for %s: %w", e.Document, err)
		}
	}
	return tx.Commit()
}

// ForKey returns all stored extractions for an output key, oldest
// first.
func (s *ResultStore) ForKey(ctx context.Context, key string) ([]Extraction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT document, output_key, fact_type, score, content
		FROM extractions WHERE output_key = ? ORDER BY id`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query extractions: %w", err)
	}
	defer rows.Close()

	var out []Extraction
	for rows.Next() {
		var e Extraction
		if err := rows.Scan(&e.Document, &e.OutputKey, &e.FactType, &e.Score, &e.Content); err != nil {
			return nil, fmt.Errorf("failed to scan extraction: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *ResultStore) Close() error {
	return s.db.Close()
}
