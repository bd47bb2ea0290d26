package cli

import (
	"strings"

	"listmerge/internal/journal"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the session journal",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journal events (oldest-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(app.cfg.Journal.Path)
			if path == "" {
				return writeErr(cmd, noJournalError{})
			}
			j, err := journal.Open(cmd.Context(), path)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = j.Close() }()

			evs, err := j.List(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, evs)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 200, "Max events to return (0 = all)")

	cmd.AddCommand(listCmd)
	return cmd
}
