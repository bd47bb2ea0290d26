package cli

import (
	"context"
	"strings"

	"listmerge/internal/board"
	"listmerge/internal/journal"
	"listmerge/internal/model"

	"github.com/spf13/cobra"
)

type moveResult struct {
	Item model.ItemID `json:"item"`
	From model.ListID `json:"from"`
	To   model.ListID `json:"to"`
	// Applied is false when no route allows the move or the item is not in From.
	Applied bool `json:"applied"`
	// At is the list holding the item after this step; empty for unknown items.
	At model.ListID `json:"at,omitempty"`
}

type mergeResult struct {
	Merged    model.ListID `json:"merged"`
	Moves     []moveResult `json:"moves"`
	Cancelled bool         `json:"cancelled"`
	Board     boardView    `json:"board"`
}

func (r mergeResult) Text() string {
	var b strings.Builder
	if r.Cancelled {
		b.WriteString("cancelled; board reset from a fresh fetch\n\n")
	} else {
		b.WriteString("created List " + string(r.Merged) + "\n")
		for _, m := range r.Moves {
			status := "moved"
			if !m.Applied {
				status = "skipped"
			}
			b.WriteString(status + " " + string(m.Item) + ": List " + string(m.From) + " -> List " + string(m.To))
			if !m.Applied && m.At != "" {
				b.WriteString(" (in List " + string(m.At) + ")")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(r.Board.Text())
	return b.String()
}

func newMergeCmd(app *App) *cobra.Command {
	var (
		selects []string
		moves   []string
		cancel  bool
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Run a merge session without the TUI and print the resulting board",
		Long: strings.TrimSpace(`
Selects exactly two lists, creates the new list next to the lower one, applies the
moves in order, then updates (or, with --cancel, discards everything and re-fetches).

SRC and DST in --move accept a list id or one of: first, second, merged (alias: new).
`),
		Example: strings.TrimSpace(`
  listmerge merge --select 1 --select 2 --move 7:1:new --move 9:2:merged
  listmerge merge --select 1 --select 2 --move 7:1:new --cancel
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([][3]string, 0, len(moves))
			for _, raw := range moves {
				mv, err := parseMove(raw)
				if err != nil {
					return writeErr(cmd, err)
				}
				parsed = append(parsed, mv)
			}

			ctx := cmd.Context()
			rec, closeRec, err := openRecorder(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = closeRec() }()

			st, err := fetchBoard(ctx, app, rec)
			if err != nil {
				return writeErr(cmd, err)
			}

			for _, id := range selects {
				id := model.ListID(strings.TrimSpace(id))
				if _, ok := st.Lists[id]; !ok {
					return writeErr(cmd, errNotFound("list", string(id)))
				}
				st = st.Toggle(id)
				record(ctx, rec, journal.TypeSelectionToggled, map[string]any{"list": id, "selected": st.Selection.Has(id)})
			}

			st, err = st.CreateMergedList()
			if err != nil {
				record(ctx, rec, journal.TypeMergeRejected, map[string]any{"selected": len(st.Selection)})
				return writeErr(cmd, err)
			}
			sess := st.Session
			record(ctx, rec, journal.TypeMergeCreated, map[string]any{
				"first": sess.First, "second": sess.Second, "merged": sess.Merged, "order": st.Order,
			})

			res := mergeResult{Merged: sess.Merged, Moves: []moveResult{}}
			for _, mv := range parsed {
				step := moveResult{
					Item: model.ItemID(mv[0]),
					From: resolveListRef(sess, mv[1]),
					To:   resolveListRef(sess, mv[2]),
				}
				var ok bool
				st, ok = st.Move(step.Item, step.From, step.To)
				step.Applied = ok
				if _, at, found := st.Find(step.Item); found {
					step.At = at
				}
				if ok {
					record(ctx, rec, journal.TypeItemMoved, map[string]any{"item": step.Item, "from": step.From, "to": step.To})
				}
				res.Moves = append(res.Moves, step)
			}

			if cancel {
				record(ctx, rec, journal.TypeSessionCancelled, map[string]any{"session": sess})
				fresh, err := fetchBoard(ctx, app, rec)
				if err != nil {
					return writeErr(cmd, err)
				}
				res.Cancelled = true
				res.Board = newBoardView(fresh)
				return writeOut(cmd, app, res)
			}

			st = st.Commit()
			record(ctx, rec, journal.TypeSessionCommitted, map[string]any{"order": st.Order})
			res.Board = newBoardView(st)
			return writeOut(cmd, app, res)
		},
	}

	cmd.Flags().StringArrayVar(&selects, "select", nil, "List id to select (repeat; exactly 2 required)")
	cmd.Flags().StringArrayVar(&moves, "move", nil, "Move ITEM:SRC:DST (repeat; applied in order)")
	cmd.Flags().BoolVar(&cancel, "cancel", false, "Discard the session and print a freshly fetched board")

	return cmd
}

func fetchBoard(ctx context.Context, app *App, rec journal.Recorder) (board.State, error) {
	items, err := newSource(app).Fetch(ctx)
	if err != nil {
		record(ctx, rec, journal.TypeFetchFailed, map[string]any{"error": err.Error()})
		return board.State{}, err
	}
	st := board.New(items, app.cfg.Routes)
	record(ctx, rec, journal.TypeFetchOK, map[string]any{"items": len(items), "lists": len(st.Order)})
	return st, nil
}

// parseMove splits ITEM:SRC:DST from the right, so item ids may contain colons.
func parseMove(raw string) ([3]string, error) {
	s := strings.TrimSpace(raw)
	j := strings.LastIndex(s, ":")
	if j <= 0 {
		return [3]string{}, errInvalidMove(raw)
	}
	i := strings.LastIndex(s[:j], ":")
	if i <= 0 {
		return [3]string{}, errInvalidMove(raw)
	}
	out := [3]string{
		strings.TrimSpace(s[:i]),
		strings.TrimSpace(s[i+1 : j]),
		strings.TrimSpace(s[j+1:]),
	}
	for _, p := range out {
		if p == "" {
			return [3]string{}, errInvalidMove(raw)
		}
	}
	return out, nil
}

func resolveListRef(sess board.Session, ref string) model.ListID {
	if strings.EqualFold(ref, "new") {
		return sess.Merged
	}
	if r, err := board.ParseRole(ref); err == nil {
		return sess.ListFor(r)
	}
	return model.ListID(ref)
}
