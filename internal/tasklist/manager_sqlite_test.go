package tasklist

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"tasklist/internal/store"
)

func TestManager_SQLiteStore_ReloadReproducesSurvivors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	m := New(store.Store{Dir: dir})
	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	a, _, err := m.Create(ctx, "A")
	if err != nil {
		t.Fatalf("Create A: %v", err)
	}
	b, _, err := m.Create(ctx, "B")
	if err != nil {
		t.Fatalf("Create B: %v", err)
	}
	c, _, err := m.Create(ctx, "C")
	if err != nil {
		t.Fatalf("Create C: %v", err)
	}
	if _, err := m.Rename(ctx, 1, "B2"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if err := m.Delete(ctx, 0); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// New session over the same directory.
	m2 := New(store.Store{Dir: dir})
	if err := m2.Load(ctx); err != nil {
		t.Fatalf("Load (second session): %v", err)
	}
	items := mustItems(t, m2)
	if got := titlesOf(items); !reflect.DeepEqual(got, []string{"B2", "C"}) {
		t.Fatalf("titles after reload: %v", got)
	}
	if items[0].ID != b.ID || items[1].ID != c.ID {
		t.Fatalf("ids after reload: %+v (want %s, %s)", items, b.ID, c.ID)
	}
	for _, it := range items {
		if it.ID == a.ID {
			t.Fatalf("deleted task %s resurrected", a.ID)
		}
	}

	// The new session keeps appending at the tail.
	d, idx, err := m2.Create(ctx, "D")
	if err != nil {
		t.Fatalf("Create D: %v", err)
	}
	if idx != 2 || d.ID == a.ID {
		t.Fatalf("unexpected create after reload: idx=%d task=%+v", idx, d)
	}
}

func TestManager_SQLiteStore_UnavailableAtLoad(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := New(store.Store{Dir: t.TempDir()})
	if err := m.Load(ctx); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable; got %v", err)
	}
	if m.Loaded() {
		t.Fatalf("expected manager to stay unloaded")
	}
}
