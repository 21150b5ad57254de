package main

import (
	"os"
	"strings"

	"tasklist/internal/cli"

	"github.com/joho/godotenv"
)

func isIndexArg(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// rewriteDirectIndexArgs makes `tasklist <index>` work like `tasklist show <index>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before
// parsing. Persistent flags may come first (`tasklist --list work 3`), so this looks for
// the first positional token rather than argv[1].
func rewriteDirectIndexArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--list":      true,
		"--format":    true,
		"--log-level": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	insertShow := func(at int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:at]...)
		out = append(out, "show")
		out = append(out, argv[at:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isIndexArg(argv[i+1]) {
				// `show` must precede `--` or cobra won't resolve it as a subcommand.
				return insertShow(i)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
			}
			// Unknown flags: don't guess whether they take a value.
			continue
		}

		if isIndexArg(a) {
			return insertShow(i)
		}
		return argv
	}
	return argv
}

func main() {
	// Best-effort: a missing .env is the common case. Existing variables win.
	_ = godotenv.Load()

	os.Args = rewriteDirectIndexArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
