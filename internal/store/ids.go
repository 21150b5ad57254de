package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"errors"
	"strings"
)

const taskIDPrefix = "task"

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits (~1 trillion) of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// nextTaskID allocates an id that is neither live nor retired.
// It must run inside the transaction that inserts the task.
func nextTaskID(ctx context.Context, tx *sql.Tx) (string, error) {
	const maxAttempts = 16
	for i := 0; i < maxAttempts; i++ {
		id, err := newRandomID(taskIDPrefix)
		if err != nil {
			return "", err
		}
		var n int
		if err := tx.QueryRowContext(ctx,
			`SELECT (SELECT COUNT(1) FROM tasks WHERE id = ?) + (SELECT COUNT(1) FROM retired_ids WHERE id = ?)`,
			id, id,
		).Scan(&n); err != nil {
			return "", err
		}
		if n == 0 {
			return id, nil
		}
	}
	return "", errors.New("could not allocate a unique task id")
}
