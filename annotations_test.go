package reconcile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// storeFactories builds each backend against a fresh temp location so
// both implementations run the same behavioral checks.
func storeFactories(t *testing.T) map[string]func() AnnotationStore {
	t.Helper()
	return map[string]func() AnnotationStore{
		"file": func() AnnotationStore {
			return NewFileStore(filepath.Join(t.TempDir(), "issues.json"))
		},
		"sqlite": func() AnnotationStore {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "issues.db"))
			if err != nil {
				t.Fatalf("NewSQLiteStore() error = %v", err)
			}
			return s
		},
	}
}

func TestAnnotationStore_UpsertMerges(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory()
			defer s.Close()

			key := IssueKey{Field: "Close", Date: "2024-01-02"}
			err := s.Upsert("AAPL.US", key, Annotation{
				EODHD:      "100.00",
				Comparator: "101.00",
				Difference: "1",
			})
			if err != nil {
				t.Fatalf("Upsert() error = %v", err)
			}

			got, ok := s.Get("AAPL.US")[key]
			if !ok {
				t.Fatal("Get() missing upserted annotation")
			}
			if got.Status != Open {
				t.Errorf("Status = %q, want %q", got.Status, Open)
			}
			if got.UpdatedAt == "" {
				t.Error("UpdatedAt not stamped")
			}

			// A second upsert overlays only its non-empty fields.
			err = s.Upsert("AAPL.US", key, Annotation{Cause: "split mismatch", Status: Documented})
			if err != nil {
				t.Fatalf("Upsert() error = %v", err)
			}
			got = s.Get("AAPL.US")[key]
			if got.Cause != "split mismatch" || got.Status != Documented {
				t.Errorf("merged annotation = %+v", got)
			}
			if got.EODHD != "100.00" {
				t.Errorf("EODHD = %q, want original value kept", got.EODHD)
			}
		})
	}
}

func TestAnnotationStore_ClearAll(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory()
			defer s.Close()

			key := IssueKey{Field: "Volume", Date: "2024-01-02"}
			if err := s.Upsert("MSFT.US", key, Annotation{Cause: "late print"}); err != nil {
				t.Fatalf("Upsert() error = %v", err)
			}

			if err := s.ClearAll(false); !errors.Is(err, ErrClearNotConfirmed) {
				t.Errorf("ClearAll(false) error = %v, want ErrClearNotConfirmed", err)
			}
			if len(s.Get("MSFT.US")) != 1 {
				t.Error("unconfirmed ClearAll must not delete annotations")
			}

			if err := s.ClearAll(true); err != nil {
				t.Fatalf("ClearAll(true) error = %v", err)
			}
			if len(s.All()) != 0 {
				t.Error("ClearAll(true) left annotations behind")
			}
		})
	}
}

func TestFileStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.json")
	key := IssueKey{Field: "Total Revenue (Income Statement)", Date: "2024-03-31"}

	s := NewFileStore(path)
	if err := s.Upsert("AAPL.US", key, Annotation{Cause: "restatement"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// A fresh store reads the same file.
	reopened := NewFileStore(path)
	got, ok := reopened.Get("AAPL.US")[key]
	if !ok || got.Cause != "restatement" {
		t.Fatalf("reopened store Get() = %+v, ok = %v", got, ok)
	}

	// The on-disk layout keys annotations by "field_date" per ticker.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var disk map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &disk); err != nil {
		t.Fatalf("store file is not valid JSON: %v", err)
	}
	if _, ok := disk["AAPL.US"][key.String()]; !ok {
		t.Errorf("store file missing key %q, has %v", key.String(), disk["AAPL.US"])
	}
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)
	if len(s.All()) != 0 {
		t.Error("corrupt file should load as empty store")
	}
	key := IssueKey{Field: "Close", Date: "2024-01-02"}
	if err := s.Upsert("AAPL.US", key, Annotation{Cause: "x"}); err != nil {
		t.Fatalf("Upsert() after corrupt load error = %v", err)
	}
}

func TestSQLiteStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.db")
	key := IssueKey{Field: "Dividends", Date: "2024-02-15"}

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := s.Upsert("KO.US", key, Annotation{Cause: "ex-date shift"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() reopen error = %v", err)
	}
	defer reopened.Close()
	got, ok := reopened.Get("KO.US")[key]
	if !ok || got.Cause != "ex-date shift" {
		t.Fatalf("reopened store Get() = %+v, ok = %v", got, ok)
	}
}
