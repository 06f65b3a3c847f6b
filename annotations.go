package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// AnnotationStatus is the analyst-facing lifecycle of an issue.
type AnnotationStatus string

const (
	Open       AnnotationStatus = "open"       // acknowledged, not yet explained
	Documented AnnotationStatus = "documented" // root cause recorded
)

// IssueKey identifies one annotated discrepancy within a ticker: the
// field and the date (or period label) where it was observed.
type IssueKey struct {
	Field string
	Date  string
}

// String renders the key in its on-disk form.
func (k IssueKey) String() string { return k.Field + "_" + k.Date }

// Annotation is an analyst's note on a discrepancy. The raw values are
// captured at annotation time so the note survives data refreshes.
type Annotation struct {
	Field      string           `json:"field"`
	Date       string           `json:"date"`
	EODHD      string           `json:"eodhd_value,omitempty"`
	Comparator string           `json:"comparator_value,omitempty"`
	Difference string           `json:"difference,omitempty"`
	Cause      string           `json:"cause,omitempty"`
	Status     AnnotationStatus `json:"status"`
	UpdatedAt  string           `json:"updated_at"`
}

// ErrClearNotConfirmed is returned by ClearAll when the destructive wipe
// was not explicitly confirmed.
var ErrClearNotConfirmed = errors.New("clearing all annotations requires confirmation")

// AnnotationStore persists analyst annotations across runs. Entities are
// tickers; each holds a set of keyed annotations.
type AnnotationStore interface {
	// Upsert merges the non-empty fields of a into the annotation stored
	// under (entity, key), creating it when absent.
	Upsert(entity string, key IssueKey, a Annotation) error
	// Get returns the annotations of one entity. A missing entity yields
	// an empty map.
	Get(entity string) map[IssueKey]Annotation
	// All returns every annotation grouped by entity.
	All() map[string]map[IssueKey]Annotation
	// ClearAll deletes every annotation. It refuses without confirm.
	ClearAll(confirm bool) error
	// Close releases underlying resources.
	Close() error
}

// merge overlays the non-empty fields of in onto base, defaults the
// status to Open, and stamps the update time.
func merge(base, in Annotation, key IssueKey) Annotation {
	out := base
	out.Field = key.Field
	out.Date = key.Date
	if in.EODHD != "" {
		out.EODHD = in.EODHD
	}
	if in.Comparator != "" {
		out.Comparator = in.Comparator
	}
	if in.Difference != "" {
		out.Difference = in.Difference
	}
	if in.Cause != "" {
		out.Cause = in.Cause
	}
	if in.Status != "" {
		out.Status = in.Status
	}
	if out.Status == "" {
		out.Status = Open
	}
	out.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return out
}

// FileStore keeps annotations in a single JSON file, rewritten in full
// on every mutation. It is the default store and matches the layout
// {ticker: {"field_date": annotation}}.
type FileStore struct {
	path string

	mu   sync.Mutex
	data map[string]map[string]Annotation
}

// NewFileStore opens (or prepares to create) the annotation file at
// path. A corrupt or unreadable file is treated as empty with a logged
// warning, so a damaged store never blocks a comparison run.
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path, data: make(map[string]map[string]Annotation)}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s
	}
	if err != nil {
		log.Printf("warning: cannot read annotation store %q: %v", path, err)
		return s
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Printf("warning: annotation store %q is corrupt, starting empty: %v", path, err)
		s.data = make(map[string]map[string]Annotation)
	}
	return s
}

func (s *FileStore) Upsert(entity string, key IssueKey, a Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[entity] == nil {
		s.data[entity] = make(map[string]Annotation)
	}
	k := key.String()
	s.data[entity][k] = merge(s.data[entity][k], a, key)
	return s.flush()
}

func (s *FileStore) Get(entity string) map[IssueKey]Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[IssueKey]Annotation, len(s.data[entity]))
	for _, a := range s.data[entity] {
		out[IssueKey{Field: a.Field, Date: a.Date}] = a
	}
	return out
}

func (s *FileStore) All() map[string]map[IssueKey]Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]map[IssueKey]Annotation, len(s.data))
	for entity, annotations := range s.data {
		m := make(map[IssueKey]Annotation, len(annotations))
		for _, a := range annotations {
			m[IssueKey{Field: a.Field, Date: a.Date}] = a
		}
		out[entity] = m
	}
	return out
}

func (s *FileStore) ClearAll(confirm bool) error {
	if !confirm {
		return ErrClearNotConfirmed
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]map[string]Annotation)
	return s.flush()
}

func (s *FileStore) Close() error { return nil }

// flush rewrites the whole file. Callers hold the mutex.
func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode annotation store: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("cannot write annotation store %q: %w", s.path, err)
	}
	return nil
}
