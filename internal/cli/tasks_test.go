package cli

import (
	"errors"
	"strings"
	"testing"

	"tasklist/internal/tasklist"
)

func TestTasksCRUDRoundTrip(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	a := decodeTask(t, mustRun(t, "--dir", dir, "add", "A"))
	if a.Index != 0 || a.Task.Title != "A" || a.Task.ID == "" {
		t.Fatalf("add A = %+v", a)
	}
	b := decodeTask(t, mustRun(t, "--dir", dir, "add", "  B  "))
	if b.Index != 1 || b.Task.Title != "B" {
		t.Fatalf("add B = %+v", b)
	}

	renamed := decodeTask(t, mustRun(t, "--dir", dir, "rename", "0", "A2"))
	if renamed.Task.ID != a.Task.ID || renamed.Task.Title != "A2" {
		t.Fatalf("rename = %+v", renamed)
	}

	got := decodeTasks(t, mustRun(t, "--dir", dir, "list"))
	if len(got) != 2 || got[0].Task.Title != "A2" || got[1].Task.Title != "B" {
		t.Fatalf("list = %+v", got)
	}

	removed := decodeTask(t, mustRun(t, "--dir", dir, "rm", "0"))
	if removed.Task.ID != a.Task.ID || removed.Index != 0 {
		t.Fatalf("rm = %+v", removed)
	}

	got = decodeTasks(t, mustRun(t, "--dir", dir, "list"))
	if len(got) != 1 || got[0].Index != 0 || got[0].Task.ID != b.Task.ID {
		t.Fatalf("list after rm = %+v", got)
	}

	shown := decodeTask(t, mustRun(t, "--dir", dir, "show", "0"))
	if shown.Task.ID != b.Task.ID {
		t.Fatalf("show = %+v", shown)
	}
}

func TestTasksErrors(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "add", "only")

	cases := []struct {
		name string
		args []string
		want error
	}{
		{name: "blank add", args: []string{"add", "   "}, want: tasklist.ErrInvalidInput},
		{name: "blank rename", args: []string{"rename", "0", " "}, want: tasklist.ErrInvalidInput},
		{name: "rename out of range", args: []string{"rename", "5", "x"}, want: tasklist.ErrIndexOutOfRange},
		{name: "rm out of range", args: []string{"rm", "1"}, want: tasklist.ErrIndexOutOfRange},
		{name: "show negative", args: []string{"show", "--", "-1"}, want: tasklist.ErrIndexOutOfRange},
		{name: "non-numeric index", args: []string{"show", "first"}, want: tasklist.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, errOut, err := runCLI(t, append([]string{"--dir", dir}, tc.args...))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if len(out) != 0 {
				t.Fatalf("expected no stdout, got %q", string(out))
			}
			if strings.Count(strings.TrimSpace(string(errOut)), "\n") != 0 {
				t.Fatalf("expected a one-line error, got %q", string(errOut))
			}
		})
	}

	got := decodeTasks(t, mustRun(t, "--dir", dir, "list"))
	if len(got) != 1 || got[0].Task.Title != "only" {
		t.Fatalf("failed commands changed the list: %+v", got)
	}
}

func TestTasksTextFormat(t *testing.T) {
	isolateEnv(t)
	t.Setenv("COLUMNS", "80")
	dir := t.TempDir()

	out := mustRun(t, "--dir", dir, "--format", "text", "list")
	if strings.TrimSpace(string(out)) != "(no tasks)" {
		t.Fatalf("empty list text = %q", string(out))
	}

	a := decodeTask(t, mustRun(t, "--dir", dir, "add", "Buy milk"))
	out = mustRun(t, "--dir", dir, "--format", "text", "list")
	want := "0  " + a.Task.ID + "  Buy milk"
	if strings.TrimSpace(string(out)) != want {
		t.Fatalf("text = %q, want %q", string(out), want)
	}
}

func TestTasksEDNFormat(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "add", "Buy milk")

	out := mustRun(t, "--dir", dir, "--format", "edn", "show", "0")
	s := string(out)
	for _, want := range []string{":data", ":index 0", `:title "Buy milk"`, ":created-at"} {
		if !strings.Contains(s, want) {
			t.Fatalf("edn missing %q:\n%s", want, s)
		}
	}
}

func TestTasksUseCurrentList(t *testing.T) {
	isolateEnv(t)

	mustRun(t, "lists", "use", "work")
	mustRun(t, "add", "in work")
	mustRun(t, "--list", "home", "add", "in home")

	got := decodeTasks(t, mustRun(t, "list"))
	if len(got) != 1 || got[0].Task.Title != "in work" {
		t.Fatalf("current list = %+v", got)
	}
	got = decodeTasks(t, mustRun(t, "--list", "home", "list"))
	if len(got) != 1 || got[0].Task.Title != "in home" {
		t.Fatalf("home list = %+v", got)
	}
}
