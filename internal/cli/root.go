package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"listmerge/internal/config"
	"listmerge/internal/fetch"
	"listmerge/internal/format"
	"listmerge/internal/journal"
	"listmerge/internal/logging"
	"listmerge/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string
	Endpoint   string
	Journal    string
	LogFile    string
	Debug      bool
	PrettyJSON bool
	Format     string

	cfg      *config.Config
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "listmerge",
		Short:        "Combine two lists into a new one (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  listmerge

  # Print the fetched lists
  listmerge lists show --format text

  # Merge lists 1 and 2, moving item 7 into the new list
  listmerge merge --select 1 --select 2 --move 7:1:new
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
		cfg, err := loadConfig(app)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg

		closeLog, err := logging.Setup(logging.Config{
			File:  cfg.Log.File,
			Level: cfg.Log.Level,
			Debug: app.Debug,
		})
		if err != nil {
			return writeErr(cmd, err)
		}
		app.closeLog = closeLog
		logging.L().Debug("command start", zap.String("command", cmd.CommandPath()))
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("LISTMERGE_CONFIG", ""), "Path to config.yaml (default: user config dir)")
	cmd.PersistentFlags().StringVar(&app.Endpoint, "endpoint", "", "List data URL (http, https or file); overrides config")
	cmd.PersistentFlags().StringVar(&app.Journal, "journal", "", "Path to a sqlite session journal; overrides config")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write JSON logs to this file; overrides config")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Debug-level logging")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("LISTMERGE_FORMAT", "json"), "Output format (json|edn|text)")

	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newMergeCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	closeLogAfterRun(app, cmd)
	return cmd
}

// closeLogAfterRun wraps every RunE so the log file is synced and closed whether the
// command succeeds or fails. Cobra skips post-run hooks when RunE returns an error.
func closeLogAfterRun(app *App, cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		closeLogAfterRun(app, sub)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		defer app.finish()
		return run(cmd, args)
	}
}

func (app *App) finish() {
	if app.closeLog == nil {
		return
	}
	closeLog := app.closeLog
	app.closeLog = nil
	if err := closeLog(); err != nil {
		fmt.Fprintln(os.Stderr, "close log:", err)
	}
}

// loadConfig layers flags over LISTMERGE_* env over the config file over defaults.
func loadConfig(app *App) (*config.Config, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if v := strings.TrimSpace(app.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(app.Journal); v != "" {
		cfg.Journal.Path = v
	}
	if v := strings.TrimSpace(app.LogFile); v != "" {
		cfg.Log.File = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSource(app *App) *fetch.Client {
	return fetch.New(fetch.Config{
		Endpoint:  app.cfg.Endpoint,
		ItemsPath: app.cfg.ItemsPath,
		Timeout:   app.cfg.Timeout,
	}, fetch.WithLogger(logging.L()))
}

// openRecorder returns the session journal, or a no-op recorder when none is configured.
func openRecorder(ctx context.Context, app *App) (journal.Recorder, func() error, error) {
	path := strings.TrimSpace(app.cfg.Journal.Path)
	if path == "" {
		return journal.Nop{}, func() error { return nil }, nil
	}
	j, err := journal.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	logging.L().Debug("journal opened", zap.String("path", path), zap.String("session", j.SessionID()))
	return j, j.Close, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	rec, closeRec, err := openRecorder(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = closeRec() }()

	return tui.Run(tui.Options{
		Source:   newSource(app),
		Recorder: rec,
		Logger:   logging.L(),
		Routes:   app.cfg.Routes,
		Theme:    app.cfg.Theme,
	})
}

func record(ctx context.Context, rec journal.Recorder, typ string, payload map[string]any) {
	if err := rec.Record(ctx, typ, payload); err != nil {
		logging.L().Warn("journal record failed", zap.String("type", typ), zap.Error(err))
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), format.Envelope{Data: v}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
