package tui

import (
	"fmt"
	"strings"

	"listmerge/internal/board"
	"listmerge/internal/model"

	"github.com/charmbracelet/lipgloss"
)

type boardSelection struct {
	Col  int
	Item int
	// ItemID keeps focus on the same item across moves and re-fetches.
	ItemID model.ItemID
	// Target is the preferred destination for the focused item in merge mode.
	Target model.ListID
}

type boardColumn struct {
	id    model.ListID
	items []model.Item
}

func buildColumns(st board.State) []boardColumn {
	cols := make([]boardColumn, 0, len(st.Order))
	for _, id := range st.Order {
		cols = append(cols, boardColumn{id: id, items: st.Lists[id]})
	}
	return cols
}

func indexOfItem(cols []boardColumn, id model.ItemID) (int, int, bool) {
	if id == "" {
		return 0, 0, false
	}
	for ci := range cols {
		for ii := range cols[ci].items {
			if cols[ci].items[ii].ID == id {
				return ci, ii, true
			}
		}
	}
	return 0, 0, false
}

func clampSelection(cols []boardColumn, sel boardSelection) boardSelection {
	if len(cols) == 0 {
		return boardSelection{Col: 0, Item: -1}
	}
	if ci, ii, ok := indexOfItem(cols, sel.ItemID); ok && ci == sel.Col {
		sel.Item = ii
	}
	if sel.Col < 0 {
		sel.Col = 0
	}
	if sel.Col >= len(cols) {
		sel.Col = len(cols) - 1
	}
	n := len(cols[sel.Col].items)
	if n == 0 {
		sel.Item = -1
		sel.ItemID = ""
		return sel
	}
	if sel.Item < 0 {
		sel.Item = 0
	}
	if sel.Item >= n {
		sel.Item = n - 1
	}
	sel.ItemID = cols[sel.Col].items[sel.Item].ID
	return sel
}

func selectedItem(cols []boardColumn, sel boardSelection) (model.Item, model.ListID, bool) {
	sel = clampSelection(cols, sel)
	if len(cols) == 0 || sel.Item < 0 {
		return model.Item{}, "", false
	}
	c := cols[sel.Col]
	return c.items[sel.Item], c.id, true
}

const (
	columnGap  = 2
	columnMinW = 22
	columnMaxW = 40
)

// renderColumns draws one column per list, in display order. In select mode the
// heading carries a checkbox; in merge mode it carries the item count, and items of
// the session's lists show the moves available to them.
func renderColumns(st board.State, cols []boardColumn, sel boardSelection, width, height int) string {
	if len(cols) == 0 {
		return normalizePane(styleMuted().Render("No lists."), width, height)
	}
	sel = clampSelection(cols, sel)

	colW := (width - columnGap*(len(cols)-1)) / len(cols)
	if colW < columnMinW {
		colW = columnMinW
	}
	if colW > columnMaxW {
		colW = columnMaxW
	}
	start, end := visibleWindow(len(cols), sel.Col, width, colW, columnGap)

	rendered := make([]string, 0, end-start)
	for ci := start; ci < end; ci++ {
		focused := ci == sel.Col
		itemIdx := -1
		if focused {
			itemIdx = sel.Item
		}
		rendered = append(rendered, renderColumn(st, cols[ci], sel, focused, itemIdx, colW, height))
		if ci != end-1 {
			rendered = append(rendered, strings.Repeat(" ", columnGap))
		}
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	if start > 0 || end < len(cols) {
		more := styleMuted().Render(fmt.Sprintf("lists %d-%d of %d", start+1, end, len(cols)))
		out = more + "\n" + out
	}
	return normalizePane(out, width, height)
}

func renderColumn(st board.State, col boardColumn, sel boardSelection, focused bool, itemIdx, width, height int) string {
	border := lipgloss.RoundedBorder()
	boxStyle := lipgloss.NewStyle().
		Border(border).
		BorderForeground(colorCardBorder).
		Width(width - 2)
	if focused {
		boxStyle = boxStyle.BorderForeground(colorFocusBorder)
	}
	innerW := width - 4
	if innerW < 4 {
		innerW = 4
	}

	lines := []string{columnHeading(st, col, focused, innerW)}
	if len(col.items) == 0 {
		lines = append(lines, styleMuted().Render("(empty)"))
	}
	for i, it := range col.items {
		selected := focused && i == itemIdx
		var target model.ListID
		if selected {
			target, _ = moveTarget(st, col.id, sel.Target)
		}
		lines = append(lines, renderCard(st, col.id, it, selected, target, innerW))
	}

	body := strings.Join(lines, "\n")
	maxLines := height - 2
	if maxLines > 0 {
		ls := strings.Split(body, "\n")
		if len(ls) > maxLines {
			ls = append(ls[:maxLines-1], styleMuted().Render("…"))
			body = strings.Join(ls, "\n")
		}
	}
	return boxStyle.Render(body)
}

func columnHeading(st board.State, col boardColumn, focused bool, width int) string {
	var txt string
	switch st.Mode {
	case board.ModeMerge:
		txt = fmt.Sprintf("List %s (%d items)", col.id, len(col.items))
		if col.id == st.Session.Merged {
			txt += " new"
		}
	default:
		box := "[ ]"
		if st.Selection.Has(col.id) {
			box = "[x]"
		}
		txt = fmt.Sprintf("%s List %s", box, col.id)
	}
	st2 := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	if st.Mode == board.ModeMerge && col.id == st.Session.Merged {
		st2 = st2.Foreground(colorMerged)
	}
	if focused && st.Mode == board.ModeSelect {
		st2 = st2.Background(colorControlBg)
	}
	return st2.Render(fitWidth(txt, width))
}

func renderCard(st board.State, listID model.ListID, it model.Item, selected bool, target model.ListID, width int) string {
	nameStyle := lipgloss.NewStyle().Bold(true).Width(width)
	descStyle := styleMuted().Width(width)
	if selected {
		nameStyle = nameStyle.Foreground(colorSelectedFg).Background(colorSelectedBg)
		descStyle = lipgloss.NewStyle().Width(width).Foreground(colorSelectedFg).Background(colorSelectedBg)
	}

	parts := []string{nameStyle.Render(it.Name)}
	if d := strings.TrimSpace(it.Description); d != "" {
		parts = append(parts, descStyle.Render(firstLine(d)))
	}
	if arrows := moveHints(st, listID, target); arrows != "" {
		arrowStyle := lipgloss.NewStyle().Foreground(colorAccent)
		if selected {
			arrowStyle = arrowStyle.Background(colorAccent).Foreground(colorAccentFg)
		}
		parts = append(parts, arrowStyle.Render(arrows))
	}
	return strings.Join(parts, "\n")
}

// moveHints renders the arrows for the routes out of listID, e.g. "← 1  → 2".
// The target, if any, is bracketed.
func moveHints(st board.State, listID, target model.ListID) string {
	dsts := st.Destinations(listID)
	if len(dsts) == 0 {
		return ""
	}
	hints := make([]string, 0, len(dsts))
	for _, dst := range dsts {
		h := fmt.Sprintf("%s %s", st.Arrow(listID, dst), dst)
		if dst == target {
			h = "[" + h + "]"
		}
		hints = append(hints, h)
	}
	return strings.Join(hints, "  ")
}

// moveTarget resolves the destination for items in src: want if a route allows it,
// otherwise the first destination in display order.
func moveTarget(st board.State, src, want model.ListID) (model.ListID, bool) {
	dsts := st.Destinations(src)
	if len(dsts) == 0 {
		return "", false
	}
	for _, d := range dsts {
		if d == want {
			return d, true
		}
	}
	return dsts[0], true
}

// nearestDestination picks the closest destination of src on the dir side ("←" or "→").
func nearestDestination(st board.State, src model.ListID, dir string) (model.ListID, bool) {
	var (
		out   model.ListID
		found bool
	)
	for _, d := range st.Destinations(src) {
		if st.Arrow(src, d) != dir {
			continue
		}
		out, found = d, true
		if dir == "→" {
			// Destinations are in display order, so the first one on the right is nearest.
			break
		}
	}
	return out, found
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i]) + " …"
	}
	return s
}
