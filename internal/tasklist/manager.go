// Package tasklist keeps the ordered, in-memory view of a task list in step with its durable store.
//
// A Manager is the only writer to its store. Mutations go to the store first and touch the
// in-memory mirror only after the store call succeeds, so a failed call leaves the mirror exactly
// as it was.
package tasklist

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"tasklist/internal/model"
)

// Store is the durable side of a list. store.Store implements it over SQLite.
type Store interface {
	FetchAll(ctx context.Context) ([]model.Task, error)
	Insert(ctx context.Context, title string) (model.Task, error)
	Rename(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
}

type Manager struct {
	store  Store
	logger *slog.Logger

	// writeMu serializes Load and every mutation for their whole duration, store I/O included.
	writeMu sync.Mutex

	// mu guards the fields below. The mirror slice is never modified in place once published;
	// mutations build a new slice and swap it under mu.Lock.
	mu     sync.RWMutex
	loaded bool
	tasks  []model.Task
}

type Option func(*Manager)

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func New(s Store, opts ...Option) *Manager {
	m := &Manager{
		store:  s,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load adopts the store's order as the mirror. On a loaded manager it re-fetches and replaces the
// mirror, which is how a caller recovers from a stale index. On error the previous state is kept.
func (m *Manager) Load(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	tasks, err := m.store.FetchAll(ctx)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	m.mu.Lock()
	m.tasks = tasks
	m.loaded = true
	m.mu.Unlock()

	m.logger.Debug("task list loaded", "count", len(tasks))
	return nil
}

// Create stores a new task and appends it to the tail of the list.
func (m *Manager) Create(ctx context.Context, title string) (model.Task, int, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if _, err := m.snapshot(); err != nil {
		return model.Task{}, -1, err
	}
	title, err := normalizeTitle(title)
	if err != nil {
		return model.Task{}, -1, err
	}

	t, err := m.store.Insert(ctx, title)
	if err != nil {
		return model.Task{}, -1, err
	}

	m.mu.Lock()
	next := make([]model.Task, len(m.tasks), len(m.tasks)+1)
	copy(next, m.tasks)
	next = append(next, t)
	m.tasks = next
	idx := len(next) - 1
	m.mu.Unlock()

	m.logger.Debug("task created", "id", t.ID, "index", idx)
	return t, idx, nil
}

// Rename replaces the title of the task at index. The task keeps its id and position.
func (m *Manager) Rename(ctx context.Context, index int, title string) (model.Task, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	tasks, err := m.snapshot()
	if err != nil {
		return model.Task{}, err
	}
	if err := checkIndex(index, len(tasks)); err != nil {
		return model.Task{}, err
	}
	title, err = normalizeTitle(title)
	if err != nil {
		return model.Task{}, err
	}

	cur := tasks[index]
	if err := m.store.Rename(ctx, cur.ID, title); err != nil {
		return model.Task{}, err
	}

	updated := cur
	updated.Title = title

	m.mu.Lock()
	next := make([]model.Task, len(m.tasks))
	copy(next, m.tasks)
	next[index] = updated
	m.tasks = next
	m.mu.Unlock()

	m.logger.Debug("task renamed", "id", cur.ID, "index", index)
	return updated, nil
}

// Delete removes the task at index from the store and the list. Later tasks shift down by one.
func (m *Manager) Delete(ctx context.Context, index int) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	tasks, err := m.snapshot()
	if err != nil {
		return err
	}
	if err := checkIndex(index, len(tasks)); err != nil {
		return err
	}

	id := tasks[index].ID
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	next := make([]model.Task, 0, len(m.tasks)-1)
	next = append(next, m.tasks[:index]...)
	next = append(next, m.tasks[index+1:]...)
	m.tasks = next
	m.mu.Unlock()

	m.logger.Debug("task deleted", "id", id, "index", index)
	return nil
}

// Loaded reports whether Load has succeeded at least once.
func (m *Manager) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Count returns the number of tasks, or 0 before Load.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}

func (m *Manager) ItemAt(index int) (model.Task, error) {
	tasks, err := m.snapshot()
	if err != nil {
		return model.Task{}, err
	}
	if err := checkIndex(index, len(tasks)); err != nil {
		return model.Task{}, err
	}
	return tasks[index], nil
}

// Items returns a copy of the list in display order.
func (m *Manager) Items() ([]model.Task, error) {
	tasks, err := m.snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out, nil
}

// snapshot returns the current mirror. The slice must be treated as read-only.
func (m *Manager) snapshot() ([]model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return nil, ErrNotLoaded
	}
	return m.tasks, nil
}

func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return IndexError{Index: index, Count: count}
	}
	return nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errEmptyTitle()
	}
	return title, nil
}
