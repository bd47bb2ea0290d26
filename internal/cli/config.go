package cli

import (
	"listmerge/internal/board"
	"listmerge/internal/config"

	"github.com/spf13/cobra"
)

type configView struct {
	Path      string        `json:"path,omitempty"`
	Endpoint  string        `json:"endpoint"`
	ItemsPath string        `json:"items_path"`
	Timeout   string        `json:"timeout"`
	LogFile   string        `json:"log_file,omitempty"`
	LogLevel  string        `json:"log_level"`
	Journal   string        `json:"journal,omitempty"`
	Routes    []board.Route `json:"routes"`
	Theme     string        `json:"theme"`

	cfg *config.Config
}

func newConfigView(path string, cfg *config.Config) configView {
	return configView{
		Path:      path,
		Endpoint:  cfg.Endpoint,
		ItemsPath: cfg.ItemsPath,
		Timeout:   cfg.Timeout.String(),
		LogFile:   cfg.Log.File,
		LogLevel:  cfg.Log.Level,
		Journal:   cfg.Journal.Path,
		Routes:    append([]board.Route{}, cfg.Routes...),
		Theme:     cfg.Theme,
		cfg:       cfg,
	}
}

// Text renders the effective config as YAML, ready to paste into config.yaml.
func (v configView) Text() string {
	b, err := v.cfg.Marshal()
	if err != nil {
		return "# " + err.Error() + "\n"
	}
	return string(b)
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config (file + env + flags)",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if path == "" {
				if p, err := config.DefaultPath(); err == nil {
					path = p
				}
			}
			return writeOut(cmd, app, newConfigView(path, app.cfg))
		},
	}

	cmd.AddCommand(showCmd)
	return cmd
}
