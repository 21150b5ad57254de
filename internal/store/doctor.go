package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrDoctorIssuesFound is returned by `tasklist doctor --fail` when the report has errors.
var ErrDoctorIssuesFound = errors.New("doctor found issues")

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	TaskID  string           `json:"taskId,omitempty"`
}

type DoctorReport struct {
	Path   string        `json:"path"`
	Tasks  int           `json:"tasks"`
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor checks the database file and the invariants the list manager relies on:
// non-empty titles and ids that were never retired.
func (s Store) Doctor(ctx context.Context) (DoctorReport, error) {
	report := DoctorReport{Path: s.dbPath(), Issues: []DoctorIssue{}}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return report, unavailable(err)
	}
	defer db.Close()

	integrity, err := integrityIssues(ctx, db)
	if err != nil {
		return report, unavailable(err)
	}
	report.Issues = append(report.Issues, integrity...)

	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tasks`).Scan(&report.Tasks); err != nil {
		return report, unavailable(err)
	}

	if err := scanIssues(ctx, db, `SELECT id, title FROM tasks ORDER BY seq`, func(id, title string) {
		if strings.TrimSpace(title) == "" {
			report.Issues = append(report.Issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "empty_title",
				Message: "task has an empty title",
				TaskID:  id,
			})
		}
	}); err != nil {
		return report, unavailable(err)
	}

	if err := scanIssues(ctx, db, `SELECT t.id, t.title FROM tasks t JOIN retired_ids r ON r.id = t.id`, func(id, _ string) {
		report.Issues = append(report.Issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "retired_id_reused",
			Message: fmt.Sprintf("live task uses retired id %s", id),
			TaskID:  id,
		})
	}); err != nil {
		return report, unavailable(err)
	}

	return report, nil
}

func integrityIssues(ctx context.Context, db *sql.DB) ([]DoctorIssue, error) {
	rows, err := db.QueryContext(ctx, `PRAGMA integrity_check;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DoctorIssue
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		if line != "ok" {
			out = append(out, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "sqlite_integrity",
				Message: line,
			})
		}
	}
	return out, rows.Err()
}

func scanIssues(ctx context.Context, db *sql.DB, query string, fn func(id, title string)) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			return err
		}
		fn(id, title)
	}
	return rows.Err()
}
