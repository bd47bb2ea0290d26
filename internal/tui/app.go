package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"listmerge/internal/board"
	"listmerge/internal/fetch"
	"listmerge/internal/journal"
	"listmerge/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type phase int

const (
	phaseLoading phase = iota
	phaseError
	phaseReady
)

type appModel struct {
	source   fetch.Source
	recorder journal.Recorder
	log      *zap.Logger
	routes   []board.Route

	phase   phase
	err     error
	fetches int

	state board.State
	sel   boardSelection

	width  int
	height int

	keys       keyMap
	help       help.Model
	spinner    spinner.Model
	showDetail bool
	detail     viewport.Model
}

func newAppModel(opts Options) appModel {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(colorMuted)

	rec := opts.Recorder
	if rec == nil {
		rec = journal.Nop{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	routes := opts.Routes
	if routes == nil {
		routes = board.DefaultRoutes()
	}

	return appModel{
		source:   opts.Source,
		recorder: rec,
		log:      log,
		routes:   routes,
		phase:    phaseLoading,
		state:    board.New(nil, routes),
		keys:     newKeyMap(),
		help:     help.New(),
		spinner:  sp,
		detail:   viewport.New(0, 0),
		width:    100,
		height:   30,
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchItemsCmd(m.source, m.fetches))
}

// startFetch drops into the loading screen and issues a fresh fetch. All board state
// (selection, merged list, moves) is replaced when the result arrives.
func (m *appModel) startFetch() tea.Cmd {
	m.phase = phaseLoading
	m.err = nil
	m.fetches++
	return tea.Batch(m.spinner.Tick, fetchItemsCmd(m.source, m.fetches))
}

func (m *appModel) record(typ string, payload map[string]any) {
	if err := m.recorder.Record(context.Background(), typ, payload); err != nil {
		m.log.Warn("journal record failed", zap.String("type", typ), zap.Error(err))
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncDetail()
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case itemsLoadedMsg:
		return m.handleItemsLoaded(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleItemsLoaded(msg itemsLoadedMsg) appModel {
	if msg.err != nil {
		m.phase = phaseError
		m.err = msg.err
		m.log.Warn("load failed", zap.Int("seq", msg.seq), zap.Error(msg.err))
		m.record(journal.TypeFetchFailed, map[string]any{"error": msg.err.Error()})
		return m
	}
	m.phase = phaseReady
	m.err = nil
	m.state = board.New(msg.items, m.routes)
	m.sel = clampSelection(buildColumns(m.state), boardSelection{})
	m.log.Info("board loaded",
		zap.Int("seq", msg.seq),
		zap.Int("items", len(msg.items)),
		zap.Int("lists", len(m.state.Order)))
	m.record(journal.TypeFetchOK, map[string]any{"items": len(msg.items), "lists": len(m.state.Order)})
	m.syncDetail()
	return m
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys.forPhase(m.phase, m.state.Mode == board.ModeMerge)

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.phase {
	case phaseLoading:
		return m, nil
	case phaseError:
		if key.Matches(msg, k.Retry) {
			return m, m.startFetch()
		}
		return m, nil
	}

	cols := buildColumns(m.state)
	switch {
	case key.Matches(msg, k.Left):
		m.sel.Col--
		m.sel.ItemID = ""
	case key.Matches(msg, k.Right):
		m.sel.Col++
		m.sel.ItemID = ""
	case key.Matches(msg, k.Up):
		m.sel.Item--
		m.sel.ItemID = ""
	case key.Matches(msg, k.Down):
		m.sel.Item++
		m.sel.ItemID = ""
	case key.Matches(msg, k.Detail):
		m.showDetail = !m.showDetail
	case key.Matches(msg, k.Toggle):
		m.toggleFocusedList(cols)
	case key.Matches(msg, k.Create):
		m.createMergedList()
	case key.Matches(msg, k.MoveLeft):
		m.moveFocusedItem(cols, "←")
	case key.Matches(msg, k.MoveRight):
		m.moveFocusedItem(cols, "→")
	case key.Matches(msg, k.Target):
		m.cycleTarget(cols)
	case key.Matches(msg, k.MoveTo):
		m.moveFocusedToTarget(cols)
	case key.Matches(msg, k.Update):
		m.state = m.state.Commit()
		m.record(journal.TypeSessionCommitted, map[string]any{"order": m.state.Order})
	case key.Matches(msg, k.Cancel):
		m.record(journal.TypeSessionCancelled, map[string]any{"session": m.state.Session})
		return m, m.startFetch()
	}

	m.sel = clampSelection(buildColumns(m.state), m.sel)
	m.syncDetail()
	return m, nil
}

func (m *appModel) toggleFocusedList(cols []boardColumn) {
	if len(cols) == 0 {
		return
	}
	id := cols[clampSelection(cols, m.sel).Col].id
	m.state = m.state.Toggle(id)
	m.record(journal.TypeSelectionToggled, map[string]any{
		"list":     id,
		"selected": m.state.Selection.Has(id),
	})
}

func (m *appModel) createMergedList() {
	next, err := m.state.CreateMergedList()
	m.state = next
	var verr *board.ValidationError
	if errors.As(err, &verr) {
		m.record(journal.TypeMergeRejected, map[string]any{"selected": verr.Selected})
		return
	}
	if err != nil {
		m.log.Error("create merged list", zap.Error(err))
		return
	}
	s := m.state.Session
	m.log.Info("merged list created",
		zap.String("first", string(s.First)),
		zap.String("second", string(s.Second)),
		zap.String("merged", string(s.Merged)))
	m.record(journal.TypeMergeCreated, map[string]any{
		"first":  s.First,
		"second": s.Second,
		"merged": s.Merged,
		"order":  m.state.Order,
	})
	for ci, id := range m.state.Order {
		if id == s.Merged {
			m.sel = boardSelection{Col: ci, Item: -1}
			break
		}
	}
}

// moveFocusedItem moves the focused item to the nearest allowed list on the dir side.
func (m *appModel) moveFocusedItem(cols []boardColumn, dir string) {
	_, src, ok := selectedItem(cols, m.sel)
	if !ok {
		return
	}
	if dst, ok := nearestDestination(m.state, src, dir); ok {
		m.moveFocused(cols, dst)
	}
}

// moveFocusedToTarget moves the focused item to the target picked with cycleTarget.
func (m *appModel) moveFocusedToTarget(cols []boardColumn) {
	_, src, ok := selectedItem(cols, m.sel)
	if !ok {
		return
	}
	if dst, ok := moveTarget(m.state, src, m.sel.Target); ok {
		m.moveFocused(cols, dst)
	}
}

// cycleTarget advances the move target through the focused list's destinations.
func (m *appModel) cycleTarget(cols []boardColumn) {
	_, src, ok := selectedItem(cols, m.sel)
	if !ok {
		return
	}
	dsts := m.state.Destinations(src)
	cur, ok := moveTarget(m.state, src, m.sel.Target)
	if !ok {
		return
	}
	for i, d := range dsts {
		if d == cur {
			m.sel.Target = dsts[(i+1)%len(dsts)]
			return
		}
	}
}

func (m *appModel) moveFocused(cols []boardColumn, dst model.ListID) {
	it, src, ok := selectedItem(cols, m.sel)
	if !ok {
		return
	}
	next, moved := m.state.Move(it.ID, src, dst)
	if !moved {
		return
	}
	m.state = next
	m.record(journal.TypeItemMoved, map[string]any{"item": it.ID, "from": src, "to": dst})
}

func (m *appModel) syncDetail() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.detail.Width = w
	m.detail.Height = 6
	it, _, ok := selectedItem(buildColumns(m.state), m.sel)
	if !ok {
		m.detail.SetContent("")
		return
	}
	body := "# " + it.Name
	if d := strings.TrimSpace(it.Description); d != "" {
		body += "\n\n" + d
	}
	m.detail.SetContent(renderMarkdown(body, w))
	m.detail.GotoTop()
}

func (m appModel) View() string {
	k := m.keys.forPhase(m.phase, m.state.Mode == board.ModeMerge)
	footer := m.help.View(k)

	switch m.phase {
	case phaseLoading:
		return normalizePane(m.spinner.View()+" Loading lists…", m.width, m.height-1) + "\n" + footer
	case phaseError:
		return m.viewError() + "\n" + footer
	}

	header := m.viewHeader()
	var detail string
	if m.showDetail {
		detail = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorCardBorder).
			Render(m.detail.View())
	}

	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 1
	if detail != "" {
		bodyH -= lipgloss.Height(detail)
	}
	if bodyH < 6 {
		bodyH = 6
	}
	body := renderColumns(m.state, buildColumns(m.state), m.sel, m.width, bodyH)

	parts := []string{header, body}
	if detail != "" {
		parts = append(parts, detail)
	}
	parts = append(parts, footer)
	return strings.Join(parts, "\n")
}

func (m appModel) viewHeader() string {
	title := lipgloss.NewStyle().Bold(true)
	notice := ""
	if m.state.Notice != "" {
		notice = "  " + styleNotice().Render(m.state.Notice)
	}

	if m.state.Mode == board.ModeMerge {
		s := m.state.Session
		line := title.Render(fmt.Sprintf("Creating List %s from List %s and List %s", s.Merged, s.First, s.Second))
		active := make([]string, 0, 3)
		for _, id := range m.state.ActiveLists() {
			active = append(active, string(id))
		}
		hint := styleMuted().Render(fmt.Sprintf("  [%s]  move items with < > or tab + m, then u to update or esc to cancel", strings.Join(active, " | ")))
		return line + hint + notice
	}

	button := lipgloss.NewStyle().
		Foreground(colorAccentFg).
		Background(colorAccent).
		Padding(0, 1).
		Render("Create a New List (n)")
	selected := styleMuted().Render(fmt.Sprintf("  %d selected", len(m.state.Selection)))
	return title.Render("List Creation") + "  " + button + selected + notice
}

func (m appModel) viewError() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorError).
		Padding(1, 3)
	msg := lipgloss.NewStyle().Bold(true).Render("Something went wrong while loading the lists.")
	detail := ""
	if m.err != nil {
		detail = "\n" + styleMuted().Render(m.err.Error())
	}
	retry := "\n\n" + lipgloss.NewStyle().Foreground(colorAccent).Render("Press r to retry")
	content := box.Render(msg + detail + retry)
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
}
