// Package store persists parsed documents in SQLite. Records are
// deduplicated by a BLAKE2b hash of the source text, so re-saving an
// unchanged author file returns the existing record.
package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/blake2b"

	"github.com/artpar/authorkit/core/document"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("document not found")

// Record is one persisted parse result.
type Record struct {
	ID        string            `json:"id"`
	Hash      string            `json:"hash"`
	Name      string            `json:"name"`
	Source    string            `json:"source,omitempty"`
	Document  document.Document `json:"document"`
	CreatedAt time.Time         `json:"created_at"`
}

// Store is a SQLite-backed document store.
type Store struct {
	db *sql.DB
}

// Open creates a store at the given SQLite path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// NewFromDB creates a store from an existing connection.
func NewFromDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init creates the documents table.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			id         TEXT PRIMARY KEY,
			hash       TEXT NOT NULL UNIQUE,
			name       TEXT NOT NULL,
			source     TEXT NOT NULL,
			document   TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

// Save persists a parsed document. If a record with the same source
// hash exists, it is returned unchanged and nothing is written.
func (s *Store) Save(ctx context.Context, name, source string, doc document.Document) (*Record, error) {
	sum := blake2b.Sum256([]byte(source))
	hash := hex.EncodeToString(sum[:])

	if existing, err := s.getByHash(ctx, hash); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	rec := &Record{
		ID:        uuid.NewString(),
		Hash:      hash,
		Name:      name,
		Source:    source,
		Document:  doc,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, hash, name, source, document, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Hash, rec.Name, rec.Source, string(docJSON), rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return rec, nil
}

// Get returns a record by id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, hash, name, source, document, created_at FROM documents WHERE id = ?`, id)
	return scanRecord(row)
}

func (s *Store) getByHash(ctx context.Context, hash string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, hash, name, source, document, created_at FROM documents WHERE hash = ?`, hash)
	return scanRecord(row)
}

// List returns all records, newest first, without source text.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, hash, name, document, created_at FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		var docJSON string
		if err := rows.Scan(&rec.ID, &rec.Hash, &rec.Name, &docJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if err := json.Unmarshal([]byte(docJSON), &rec.Document); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", rec.ID, err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Delete removes a record by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanRecord(row *sql.Row) (*Record, error) {
	var rec Record
	var docJSON string
	err := row.Scan(&rec.ID, &rec.Hash, &rec.Name, &rec.Source, &docJSON, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	if err := json.Unmarshal([]byte(docJSON), &rec.Document); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", rec.ID, err)
	}
	return &rec, nil
}
