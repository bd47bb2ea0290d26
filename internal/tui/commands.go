package tui

import (
	"context"

	"listmerge/internal/fetch"
	"listmerge/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type itemsLoadedMsg struct {
	seq   int
	items []model.Item
	err   error
}

// fetchItemsCmd runs one fetch. Overlapping fetches are not deduplicated; whichever
// result arrives last replaces the board.
func fetchItemsCmd(src fetch.Source, seq int) tea.Cmd {
	return func() tea.Msg {
		items, err := src.Fetch(context.Background())
		return itemsLoadedMsg{seq: seq, items: items, err: err}
	}
}
