package cli

import (
	"listmerge/internal/board"
	"listmerge/internal/journal"

	"github.com/spf13/cobra"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Inspect the fetched lists",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch the items and print them grouped into lists (ascending list id)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rec, closeRec, err := openRecorder(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = closeRec() }()

			items, err := newSource(app).Fetch(ctx)
			if err != nil {
				record(ctx, rec, journal.TypeFetchFailed, map[string]any{"error": err.Error()})
				return writeErr(cmd, err)
			}
			st := board.New(items, app.cfg.Routes)
			record(ctx, rec, journal.TypeFetchOK, map[string]any{"items": len(items), "lists": len(st.Order)})
			return writeOut(cmd, app, newBoardView(st))
		},
	}

	cmd.AddCommand(showCmd)
	return cmd
}
