package cli

import (
	"fmt"
	"strings"

	"listmerge/internal/board"
	"listmerge/internal/model"
)

type listView struct {
	ID    model.ListID `json:"id"`
	Count int          `json:"count"`
	Items []model.Item `json:"items"`
}

// boardView is the CLI rendering of a board.State: lists in display order.
type boardView struct {
	Mode    string         `json:"mode"`
	Order   []model.ListID `json:"order"`
	Lists   []listView     `json:"lists"`
	Session *board.Session `json:"session,omitempty"`
	Notice  string         `json:"notice,omitempty"`
}

func newBoardView(st board.State) boardView {
	v := boardView{
		Mode:   st.Mode.String(),
		Order:  append([]model.ListID{}, st.Order...),
		Lists:  make([]listView, 0, len(st.Order)),
		Notice: st.Notice,
	}
	for _, id := range st.Order {
		items := append([]model.Item{}, st.Lists[id]...)
		v.Lists = append(v.Lists, listView{ID: id, Count: len(items), Items: items})
	}
	if st.Mode == board.ModeMerge {
		s := st.Session
		v.Session = &s
	}
	return v
}

func (v boardView) Text() string {
	var b strings.Builder
	for i, l := range v.Lists {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "List %s (%d items)", l.ID, l.Count)
		if v.Session != nil && l.ID == v.Session.Merged {
			b.WriteString(" new")
		}
		b.WriteString("\n")
		for _, it := range l.Items {
			fmt.Fprintf(&b, "  - [%s] %s\n", it.ID, it.Name)
		}
	}
	if v.Notice != "" {
		b.WriteString("\n" + v.Notice + "\n")
	}
	return b.String()
}
