package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("TASKLIST_CONFIG_DIR", cfgDir)

	if err := SaveConfig(&GlobalConfig{CurrentList: "seed"}); err != nil {
		t.Fatalf("SaveConfig(seed): %v", err)
	}

	const n = 32
	errCh := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg, err := LoadConfig()
			if err != nil {
				errCh <- err
				return
			}
			cfg.CurrentList = fmt.Sprintf("list-%d", i)
			if err := SaveConfig(cfg); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(cfgDir, "config.json"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		t.Fatalf("config is not valid JSON after concurrent writes: %v\n%s", err, string(b))
	}
	if cfg.CurrentList == "" {
		t.Fatalf("expected a current list after concurrent writes")
	}
}

func TestListDir_AndListNames(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("TASKLIST_CONFIG_DIR", cfgDir)

	dir, err := ListDir("work")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if want := filepath.Join(cfgDir, "lists", "work"); dir != want {
		t.Fatalf("ListDir: got %q want %q", dir, want)
	}

	names, err := ListNames()
	if err != nil {
		t.Fatalf("ListNames (empty): %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no lists; got %v", names)
	}

	for _, name := range []string{"work", "home"} {
		d, _ := ListDir(name)
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	names, err = ListNames()
	if err != nil {
		t.Fatalf("ListNames: %v", err)
	}
	if len(names) != 2 || names[0] != "home" || names[1] != "work" {
		t.Fatalf("unexpected list names: %v", names)
	}
}

func TestNormalizeListName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: " groceries ", want: "groceries"},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "..", wantErr: true},
		{in: "a/b", wantErr: true},
	}
	for _, tt := range tests {
		got, err := NormalizeListName(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("NormalizeListName(%q): expected error; got %q", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("NormalizeListName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
