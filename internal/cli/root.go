package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"tasklist/internal/format"
	"tasklist/internal/store"
	"tasklist/internal/tasklist"
	"tasklist/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	List       string
	PrettyJSON bool
	Format     string
	LogLevel   string

	logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tasklist",
		Short:        "A small durable task list (CLI + TUI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tasklist

  # Scriptable commands
  tasklist add Buy milk
  tasklist list --format text
  tasklist rename 0 Buy oat milk
  tasklist rm 0

  # Direct lookup (shortcut for: tasklist show <index>)
  tasklist 0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(cmd.ErrOrStderr(), app.LogLevel)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.logger = l
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TASKLIST_DIR", ""), "Path to the list's data dir (overrides --list)")
	cmd.PersistentFlags().StringVar(&app.List, "list", envOr("TASKLIST_LIST", ""), "List name (default: current list from config, else 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKLIST_FORMAT", "json"), "Output format (json|edn|text)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("TASKLIST_LOG_LEVEL", "warn"), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newRenameCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newListsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	m, s, err := openManager(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	glyphs := ""
	if cfg, err := store.LoadConfig(); err == nil && cfg.TUI != nil {
		glyphs = cfg.TUI.Glyphs
	}
	return tui.Run(m, s, tui.Options{ListName: app.List, Glyphs: glyphs})
}

// resolveDir picks the data directory:
// 1) --dir
// 2) --list
// 3) ~/.tasklist/config.json currentList
// 4) the default list
func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	if app.List == "" {
		if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentList != "" {
			app.List = cfg.CurrentList
		} else {
			app.List = store.DefaultListName
		}
	}
	d, err := store.ListDir(app.List)
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

// openManager resolves the store and loads it. A load failure is fatal for the command.
func openManager(ctx context.Context, app *App) (*tasklist.Manager, store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s := store.Store{Dir: dir, Logger: app.log()}
	m := tasklist.New(s, tasklist.WithLogger(app.log()))
	if err := m.Load(ctx); err != nil {
		return nil, s, err
	}
	return m, s, nil
}

func (app *App) log() *slog.Logger {
	if app.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return app.logger
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lv := new(slog.LevelVar)
	if strings.TrimSpace(level) != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
			return nil, fmt.Errorf("invalid --log-level %q (expected debug|info|warn|error)", level)
		}
		lv.Set(l)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func envelope(data any, meta map[string]any, hints ...string) format.Envelope {
	env := format.Envelope{Data: data, Hints: hints}
	if meta != nil {
		env.Meta = meta
	}
	return env
}
