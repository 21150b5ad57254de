package store

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tasklist/internal/model"
)

const dbFileName = "tasks.sqlite"

// Store is the durable record of one task list, backed by a SQLite file in Dir.
//
// Each call opens the database, does its work in a single transaction, and closes it again, so a
// Store value is safe to copy and to use from several goroutines. Ordering of writes across
// callers is the list manager's job.
type Store struct {
	Dir    string
	Logger *slog.Logger
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FetchAll returns every live task in insertion order.
func (s Store) FetchAll(ctx context.Context) ([]model.Task, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, title, created_at_unixms, updated_at_unixms FROM tasks ORDER BY seq`)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		var created, updated int64
		if err := rows.Scan(&t.ID, &t.Title, &created, &updated); err != nil {
			return nil, unavailable(err)
		}
		t.CreatedAt = fromUnixMs(created)
		t.UpdatedAt = fromUnixMs(updated)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

// Insert allocates a new id and persists the task. On error nothing is written.
func (s Store) Insert(ctx context.Context, title string) (model.Task, error) {
	var t model.Task
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := nextTaskID(ctx, tx)
		if err != nil {
			return err
		}
		nowMs := time.Now().UTC().UnixMilli()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks(id, title, created_at_unixms, updated_at_unixms) VALUES(?, ?, ?, ?)`,
			id, title, nowMs, nowMs,
		); err != nil {
			return err
		}
		t = model.Task{ID: id, Title: title, CreatedAt: fromUnixMs(nowMs), UpdatedAt: fromUnixMs(nowMs)}
		return nil
	})
	if err != nil {
		return model.Task{}, writeFailed("insert", err)
	}
	s.logger().Debug("task inserted", "id", t.ID)
	return t, nil
}

// Rename replaces the title of an existing task.
func (s Store) Rename(ctx context.Context, id, title string) error {
	missing := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE tasks SET title = ?, updated_at_unixms = ? WHERE id = ?`,
			title, time.Now().UTC().UnixMilli(), id,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			missing = true
			return sql.ErrNoRows
		}
		return nil
	})
	if missing {
		return notFound(id)
	}
	if err != nil {
		return writeFailed("rename", err)
	}
	s.logger().Debug("task renamed", "id", id)
	return nil
}

// Delete removes a task and retires its id so it is never allocated again.
func (s Store) Delete(ctx context.Context, id string) error {
	missing := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			missing = true
			return sql.ErrNoRows
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO retired_ids(id, retired_at_unixms) VALUES(?, ?)`,
			id, time.Now().UTC().UnixMilli(),
		)
		return err
	})
	if missing {
		return notFound(id)
	}
	if err != nil {
		return writeFailed("delete", err)
	}
	s.logger().Debug("task deleted", "id", id)
	return nil
}

// withTx opens the database and runs fn in a transaction that is committed only if fn succeeds.
func (s Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func fromUnixMs(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
