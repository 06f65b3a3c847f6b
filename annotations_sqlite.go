package reconcile

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

const annotationsSchema = `
CREATE TABLE IF NOT EXISTS annotations (
	entity           TEXT NOT NULL,
	field            TEXT NOT NULL,
	date             TEXT NOT NULL,
	eodhd_value      TEXT NOT NULL DEFAULT '',
	comparator_value TEXT NOT NULL DEFAULT '',
	difference       TEXT NOT NULL DEFAULT '',
	cause            TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'open',
	updated_at       TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (entity, field, date)
);`

// SQLiteStore keeps annotations in a SQLite database, for teams that
// share one annotation set across machines. It implements the same
// merge semantics as FileStore.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the annotation database at
// path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open annotation database %q: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot configure annotation database %q: %w", path, err)
	}
	if _, err := db.Exec(annotationsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize annotation database %q: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Upsert(entity string, key IssueKey, a Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var base Annotation
	err := s.db.QueryRow(`
		SELECT field, date, eodhd_value, comparator_value, difference, cause, status, updated_at
		FROM annotations WHERE entity = ? AND field = ? AND date = ?`,
		entity, key.Field, key.Date).Scan(
		&base.Field, &base.Date, &base.EODHD, &base.Comparator,
		&base.Difference, &base.Cause, &base.Status, &base.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("cannot read annotation %s/%s: %w", entity, key, err)
	}

	m := merge(base, a, key)
	_, err = s.db.Exec(`
		INSERT INTO annotations (entity, field, date, eodhd_value, comparator_value, difference, cause, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity, field, date) DO UPDATE SET
			eodhd_value = excluded.eodhd_value,
			comparator_value = excluded.comparator_value,
			difference = excluded.difference,
			cause = excluded.cause,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		entity, key.Field, key.Date, m.EODHD, m.Comparator, m.Difference, m.Cause, string(m.Status), m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("cannot write annotation %s/%s: %w", entity, key, err)
	}
	return nil
}

func (s *SQLiteStore) Get(entity string) map[IssueKey]Annotation {
	all := s.query("WHERE entity = ?", entity)
	if m, ok := all[entity]; ok {
		return m
	}
	return map[IssueKey]Annotation{}
}

func (s *SQLiteStore) All() map[string]map[IssueKey]Annotation {
	return s.query("")
}

func (s *SQLiteStore) query(where string, args ...any) map[string]map[IssueKey]Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]map[IssueKey]Annotation)
	rows, err := s.db.Query(`
		SELECT entity, field, date, eodhd_value, comparator_value, difference, cause, status, updated_at
		FROM annotations `+where, args...)
	if err != nil {
		log.Printf("warning: cannot read annotation database: %v", err)
		return out
	}
	defer rows.Close()

	for rows.Next() {
		var entity string
		var a Annotation
		if err := rows.Scan(&entity, &a.Field, &a.Date, &a.EODHD, &a.Comparator,
			&a.Difference, &a.Cause, &a.Status, &a.UpdatedAt); err != nil {
			log.Printf("warning: cannot scan annotation row: %v", err)
			continue
		}
		if out[entity] == nil {
			out[entity] = make(map[IssueKey]Annotation)
		}
		out[entity][IssueKey{Field: a.Field, Date: a.Date}] = a
	}
	if err := rows.Err(); err != nil {
		log.Printf("warning: cannot read annotation database: %v", err)
	}
	return out
}

func (s *SQLiteStore) ClearAll(confirm bool) error {
	if !confirm {
		return ErrClearNotConfirmed
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM annotations`); err != nil {
		return fmt.Errorf("cannot clear annotation database: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
