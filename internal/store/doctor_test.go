package store

import (
	"context"
	"testing"
)

func TestDoctor_CleanStoreHasNoIssues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	if _, err := s.Insert(ctx, "A"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	report, err := s.Doctor(ctx)
	if err != nil {
		t.Fatalf("Doctor: %v", err)
	}
	if report.Tasks != 1 {
		t.Fatalf("expected 1 task; got %d", report.Tasks)
	}
	if len(report.Issues) != 0 || report.HasErrors() {
		t.Fatalf("expected no issues; got %+v", report.Issues)
	}
}

func TestDoctor_DetectsRetiredIDReuseAndEmptyTitles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	a, err := s.Insert(ctx, "A")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Simulate an outside writer that bypassed the store.
	db, err := s.openSQLite(ctx)
	if err != nil {
		t.Fatalf("openSQLite: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO tasks(id, title, created_at_unixms, updated_at_unixms) VALUES(?, ?, 0, 0)`, a.ID, "  "); err != nil {
		t.Fatalf("raw insert: %v", err)
	}
	_ = db.Close()

	report, err := s.Doctor(ctx)
	if err != nil {
		t.Fatalf("Doctor: %v", err)
	}
	if !report.HasErrors() {
		t.Fatalf("expected errors; got %+v", report.Issues)
	}
	codes := map[string]bool{}
	for _, it := range report.Issues {
		codes[it.Code] = true
		if it.TaskID != a.ID {
			t.Fatalf("expected issue for %s; got %+v", a.ID, it)
		}
	}
	if !codes["retired_id_reused"] || !codes["empty_title"] {
		t.Fatalf("expected retired_id_reused and empty_title; got %+v", report.Issues)
	}
}

func TestIntegrityIssues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	db, err := s.openSQLite(ctx)
	if err != nil {
		t.Fatalf("openSQLite: %v", err)
	}

	issues, err := integrityIssues(ctx, db)
	if err != nil {
		t.Fatalf("integrityIssues: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues on a fresh db; got %+v", issues)
	}

	_ = db.Close()
	if _, err := integrityIssues(ctx, db); err == nil {
		t.Fatalf("expected error on a closed db")
	}
}
