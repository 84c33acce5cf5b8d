package store

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestInsertAndGetRun(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id, err := s.InsertRun(Run{
		Filename:    "roster.xlsx",
		Mode:        "universal",
		RecordCount: 42,
		SheetCount:  3,
		DurationMS:  120,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	run, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if run.Filename != "roster.xlsx" || run.RecordCount != 42 || run.Mode != "universal" {
		t.Fatalf("unexpected run: %+v", run)
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.xlsx", "b.xlsx", "c.xlsx"} {
		if _, err := s.InsertRun(Run{
			Filename:  name,
			Mode:      "rocl",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 || runs[0].Filename != "c.xlsx" || runs[1].Filename != "b.xlsx" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}
