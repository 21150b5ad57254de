// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tasklist/internal/model"
	"tasklist/internal/store"
)

// FakeStore is an in-memory implementation of tasklist.Store for testing.
type FakeStore struct {
	mu      sync.Mutex
	tasks   []model.Task
	retired map[string]bool
	nextID  int

	// Error injection for testing. A non-nil value is returned (wrapped in the
	// matching store error kind) and the call has no effect.
	FetchErr  error
	InsertErr error
	RenameErr error
	DeleteErr error

	// Calls counts store calls by method name.
	Calls map[string]int

	// Now is used for timestamps; defaults to a fixed instant.
	Now func() time.Time
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		retired: map[string]bool{},
		Calls:   map[string]int{},
		Now:     func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

// Seed appends tasks directly, as if a previous session had created them.
func (f *FakeStore) Seed(titles ...string) []model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Task
	for _, title := range titles {
		t := f.newTaskLocked(title)
		f.tasks = append(f.tasks, t)
		out = append(out, t)
	}
	return out
}

func (f *FakeStore) FetchAll(ctx context.Context) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["FetchAll"]++
	if f.FetchErr != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrStoreUnavailable, f.FetchErr)
	}
	out := make([]model.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *FakeStore) Insert(ctx context.Context, title string) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["Insert"]++
	if f.InsertErr != nil {
		return model.Task{}, fmt.Errorf("insert: %w: %w", store.ErrWriteFailed, f.InsertErr)
	}
	t := f.newTaskLocked(title)
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *FakeStore) Rename(ctx context.Context, id, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["Rename"]++
	if f.RenameErr != nil {
		return fmt.Errorf("rename: %w: %w", store.ErrWriteFailed, f.RenameErr)
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Title = title
			f.tasks[i].UpdatedAt = f.Now()
			return nil
		}
	}
	return fmt.Errorf("task %s: %w", id, store.ErrNotFound)
}

func (f *FakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["Delete"]++
	if f.DeleteErr != nil {
		return fmt.Errorf("delete: %w: %w", store.ErrWriteFailed, f.DeleteErr)
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			f.retired[id] = true
			return nil
		}
	}
	return fmt.Errorf("task %s: %w", id, store.ErrNotFound)
}

// IDs returns the live ids in the store, sorted.
func (f *FakeStore) IDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t.ID)
	}
	sort.Strings(out)
	return out
}

// Remove drops a task behind the manager's back, to simulate a stale mirror.
func (f *FakeStore) Remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			f.retired[id] = true
			return
		}
	}
}

func (f *FakeStore) newTaskLocked(title string) model.Task {
	for {
		f.nextID++
		id := fmt.Sprintf("task-%08d", f.nextID)
		if f.retired[id] {
			continue
		}
		now := f.Now()
		return model.Task{ID: id, Title: title, CreatedAt: now, UpdatedAt: now}
	}
}
