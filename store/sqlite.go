package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tsawler/zonal/format"
)

// SQLiteSource resolves object ids against a SQLite database. Each row of
// the objects table holds one serialized content object document (YAML or
// JSON) keyed by id. The driver is selected at build time: the pure-Go
// driver by default, the cgo driver under the cgo_sqlite build tag.
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens a database-backed source and ensures its schema.
func OpenSQLite(dataSource string) (*SQLiteSource, error) {
	db, err := openSQLite(dataSource)
	if err != nil {
		return nil, fmt.Errorf("opening object database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening object database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS objects (
		id       TEXT PRIMARY KEY,
		document TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing object schema: %w", err)
	}

	return &SQLiteSource{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Put stores one content object document under an id, replacing any
// existing entry. Documents are written as JSON.
func (s *SQLiteSource) Put(id string, raw map[string]any) error {
	doc, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encoding object %q: %w", id, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO objects (id, document) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET document = excluded.document`,
		id, string(doc),
	)
	if err != nil {
		return fmt.Errorf("storing object %q: %w", id, err)
	}
	return nil
}

// Resolve implements Source.
func (s *SQLiteSource) Resolve(id string) (map[string]any, error) {
	var doc string
	err := s.db.QueryRow(`SELECT document FROM objects WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("querying object %q: %w", id, err)
	}

	var raw map[string]any
	data := []byte(doc)
	if err := format.Unmarshal(data, format.DetectBytes(data), &raw); err != nil {
		return nil, fmt.Errorf("object row %q: %w", id, err)
	}
	return raw, nil
}

// List implements Source.
func (s *SQLiteSource) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM objects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
