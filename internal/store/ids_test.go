package store

import (
	"strings"
	"testing"
)

func TestNewRandomID_TaskIDsHavePrefixAndFixedLength(t *testing.T) {
	id, err := newRandomID(taskIDPrefix)
	if err != nil {
		t.Fatalf("newRandomID: %v", err)
	}
	if !strings.HasPrefix(id, "task-") {
		t.Fatalf("expected task prefix, got %q", id)
	}
	suffix := strings.TrimPrefix(id, "task-")
	if got, want := len(suffix), 8; got != want {
		t.Fatalf("expected task id suffix len %d, got %d (%q)", want, got, suffix)
	}
	if suffix != strings.ToLower(suffix) {
		t.Fatalf("expected lowercase suffix, got %q", suffix)
	}
}

func TestNewRandomID_DoesNotRepeatQuickly(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id, err := newRandomID(taskIDPrefix)
		if err != nil {
			t.Fatalf("newRandomID: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id after %d draws: %q", i, id)
		}
		seen[id] = true
	}
}
