package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"listmerge/internal/board"
	"listmerge/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeSource struct {
	items []model.Item
	err   error
	calls int
}

func (f *fakeSource) Fetch(context.Context) ([]model.Item, error) {
	f.calls++
	return f.items, f.err
}

type fakeRecorder struct {
	types []string
}

func (r *fakeRecorder) Record(_ context.Context, typ string, _ map[string]any) error {
	r.types = append(r.types, typ)
	return nil
}

func sampleItems() []model.Item {
	return []model.Item{
		{ID: "a", ListNumber: "1", Name: "Alpha", Description: "first item"},
		{ID: "b", ListNumber: "1", Name: "Bravo"},
		{ID: "c", ListNumber: "2", Name: "Charlie"},
		{ID: "d", ListNumber: "3", Name: "Delta"},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m appModel, msgs ...tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(appModel)
	}
	return m, cmd
}

func loadedModel(t *testing.T, rec *fakeRecorder) appModel {
	t.Helper()
	opts := Options{Source: &fakeSource{items: sampleItems()}}
	if rec != nil {
		opts.Recorder = rec
	}
	m := newAppModel(opts)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 160, Height: 40}, itemsLoadedMsg{items: sampleItems()})
	if m.phase != phaseReady {
		t.Fatalf("expected ready phase after load, got %v", m.phase)
	}
	return m
}

func idsOf(items []model.Item) []model.ItemID {
	out := make([]model.ItemID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFetchItemsCmd_CarriesSeqAndResult(t *testing.T) {
	src := &fakeSource{items: sampleItems()}
	msg := fetchItemsCmd(src, 3)()
	got, ok := msg.(itemsLoadedMsg)
	if !ok {
		t.Fatalf("expected itemsLoadedMsg, got %T", msg)
	}
	if got.seq != 3 || got.err != nil || len(got.items) != 4 {
		t.Fatalf("unexpected msg: %+v", got)
	}
	if src.calls != 1 {
		t.Fatalf("expected one fetch, got %d", src.calls)
	}
}

func TestApp_LoadingThenReady(t *testing.T) {
	m := newAppModel(Options{Source: &fakeSource{}})
	if m.phase != phaseLoading {
		t.Fatalf("expected loading phase initially")
	}
	if !strings.Contains(m.View(), "Loading lists") {
		t.Fatalf("expected loading view, got=%q", m.View())
	}
	if m.Init() == nil {
		t.Fatalf("expected Init to start a fetch")
	}

	m, _ = press(t, m, itemsLoadedMsg{items: sampleItems()})
	want := []model.ListID{"1", "2", "3"}
	if strings.Join(toStrings(m.state.Order), ",") != strings.Join(toStrings(want), ",") {
		t.Fatalf("order=%v want %v", m.state.Order, want)
	}
	out := m.View()
	for _, s := range []string{"List Creation", "Create a New List", "[ ] List 1", "Alpha", "Delta"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in view, got=%q", s, out)
		}
	}
}

func TestApp_ErrorThenRetry(t *testing.T) {
	rec := &fakeRecorder{}
	m := newAppModel(Options{Source: &fakeSource{}, Recorder: rec})
	m, _ = press(t, m, itemsLoadedMsg{err: errors.New("boom")})
	if m.phase != phaseError {
		t.Fatalf("expected error phase, got %v", m.phase)
	}
	if out := m.View(); !strings.Contains(out, "Press r to retry") || !strings.Contains(out, "boom") {
		t.Fatalf("expected retry hint and error text, got=%q", out)
	}

	// Board keys do nothing on the error screen.
	m, cmd := press(t, m, runes("n"))
	if cmd != nil || m.phase != phaseError {
		t.Fatalf("expected n to be ignored in error phase")
	}

	m, cmd = press(t, m, runes("r"))
	if cmd == nil {
		t.Fatalf("expected retry to issue a fetch")
	}
	if m.phase != phaseLoading || m.fetches != 1 {
		t.Fatalf("expected loading phase and fetches=1, got phase=%v fetches=%d", m.phase, m.fetches)
	}
	if len(rec.types) != 1 || rec.types[0] != "fetch.failed" {
		t.Fatalf("recorded=%v", rec.types)
	}
}

func TestApp_CreateRequiresTwoSelectedLists(t *testing.T) {
	rec := &fakeRecorder{}
	m := loadedModel(t, rec)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace}, runes("n"))
	if m.state.Mode != board.ModeSelect {
		t.Fatalf("expected to stay in select mode")
	}
	if m.state.Notice != board.SelectionNotice {
		t.Fatalf("notice=%q", m.state.Notice)
	}
	if !strings.Contains(m.View(), "You should select exactly 2 lists") {
		t.Fatalf("expected notice in view")
	}
	if got := rec.types[len(rec.types)-1]; got != "merge.rejected" {
		t.Fatalf("last event=%q", got)
	}

	// Toggling again clears the notice.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.state.Notice != "" {
		t.Fatalf("expected notice cleared, got %q", m.state.Notice)
	}
	if len(m.state.Selection) != 0 {
		t.Fatalf("expected list 1 unselected, got %v", m.state.Selection)
	}
}

func TestApp_MergeMoveAndUpdate(t *testing.T) {
	rec := &fakeRecorder{}
	m := loadedModel(t, rec)

	// Select lists 1 and 2, then create list 4 next to list 1.
	m, _ = press(t, m,
		tea.KeyMsg{Type: tea.KeySpace},
		runes("l"),
		tea.KeyMsg{Type: tea.KeySpace},
		runes("n"),
	)
	if m.state.Mode != board.ModeMerge {
		t.Fatalf("expected merge mode, notice=%q", m.state.Notice)
	}
	if got := strings.Join(toStrings(m.state.Order), ","); got != "1,4,2,3" {
		t.Fatalf("order=%s", got)
	}
	if m.sel.Col != 1 {
		t.Fatalf("expected focus on merged list, got col %d", m.sel.Col)
	}
	out := m.View()
	for _, s := range []string{"Creating List 4 from List 1 and List 2", "[1 | 4 | 2]", "List 4 (0 items) new", "→ 4"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in view, got=%q", s, out)
		}
	}

	// Alpha: list 1 -> list 4 is rightwards.
	m, _ = press(t, m, runes("h"), runes(">"))
	if got := idsOf(m.state.Lists["4"]); len(got) != 1 || got[0] != "a" {
		t.Fatalf("list 4=%v", got)
	}

	// Charlie: list 2 -> list 4 is leftwards, so ">" is a no-op and "<" moves it.
	m, _ = press(t, m, runes("l"), runes("l"), runes(">"))
	if len(m.state.Lists["2"]) != 1 {
		t.Fatalf("expected > to leave list 2 alone, got %v", idsOf(m.state.Lists["2"]))
	}
	m, _ = press(t, m, runes("<"))
	if len(m.state.Lists["2"]) != 0 || len(m.state.Lists["4"]) != 2 {
		t.Fatalf("list 2=%v list 4=%v", idsOf(m.state.Lists["2"]), idsOf(m.state.Lists["4"]))
	}

	// List 3 is outside the session.
	m, _ = press(t, m, runes("l"), runes("<"), runes(">"))
	if len(m.state.Lists["3"]) != 1 {
		t.Fatalf("expected list 3 untouched, got %v", idsOf(m.state.Lists["3"]))
	}

	m, cmd := press(t, m, runes("u"))
	if cmd != nil {
		t.Fatalf("expected update to be local")
	}
	if m.state.Mode != board.ModeSelect || len(m.state.Selection) != 0 {
		t.Fatalf("expected select mode with empty selection after update")
	}
	if got := strings.Join(toStrings(m.state.Order), ","); got != "1,4,2,3" {
		t.Fatalf("order after update=%s", got)
	}
	if !strings.Contains(m.View(), "[ ] List 4") {
		t.Fatalf("expected merged list to stay as a regular list")
	}

	wantTypes := []string{
		"fetch.ok",
		"selection.toggled", "selection.toggled",
		"merge.created",
		"item.moved", "item.moved",
		"session.committed",
	}
	if strings.Join(rec.types, ",") != strings.Join(wantTypes, ",") {
		t.Fatalf("recorded=%v want %v", rec.types, wantTypes)
	}
}

func TestApp_CancelRefetchesAndResets(t *testing.T) {
	m := loadedModel(t, nil)
	m, _ = press(t, m,
		tea.KeyMsg{Type: tea.KeySpace},
		runes("l"),
		tea.KeyMsg{Type: tea.KeySpace},
		runes("n"),
		runes("h"),
		runes(">"),
	)
	if len(m.state.Lists["4"]) != 1 {
		t.Fatalf("expected a moved item before cancel")
	}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || m.phase != phaseLoading {
		t.Fatalf("expected cancel to start a re-fetch")
	}
	m, _ = press(t, m, itemsLoadedMsg{seq: m.fetches, items: sampleItems()})

	fresh := board.New(sampleItems(), nil)
	if got := strings.Join(toStrings(m.state.Order), ","); got != strings.Join(toStrings(fresh.Order), ",") {
		t.Fatalf("order=%s", got)
	}
	if m.state.Mode != board.ModeSelect || len(m.state.Selection) != 0 {
		t.Fatalf("expected a fresh board after cancel")
	}
	if _, ok := m.state.Lists["4"]; ok {
		t.Fatalf("expected merged list to be discarded")
	}
}

func TestApp_SelectKeysDisabledDuringMerge(t *testing.T) {
	m := loadedModel(t, nil)
	m, _ = press(t, m,
		tea.KeyMsg{Type: tea.KeySpace},
		runes("l"),
		tea.KeyMsg{Type: tea.KeySpace},
		runes("n"),
	)
	before := strings.Join(toStrings(m.state.Order), ",")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace}, runes("n"))
	if got := strings.Join(toStrings(m.state.Order), ","); got != before {
		t.Fatalf("expected n to be ignored in merge mode, order=%s", got)
	}
	if len(m.state.Selection) != 2 {
		t.Fatalf("expected selection untouched in merge mode, got %v", m.state.Selection)
	}
}

func TestApp_DetailPaneShowsFocusedItem(t *testing.T) {
	m := loadedModel(t, nil)
	m, _ = press(t, m, runes("d"))
	if !m.showDetail {
		t.Fatalf("expected detail pane on")
	}
	it, _, ok := selectedItem(buildColumns(m.state), m.sel)
	if !ok || it.ID != "a" {
		t.Fatalf("focused item=%+v ok=%v", it, ok)
	}
	if out := m.View(); !strings.Contains(out, "first") {
		t.Fatalf("expected description in detail pane, got=%q", out)
	}
}

func TestKeyMap_ForPhase(t *testing.T) {
	k := newKeyMap()
	sel := k.forPhase(phaseReady, false)
	if !sel.Toggle.Enabled() || sel.MoveLeft.Enabled() || sel.Retry.Enabled() {
		t.Fatalf("unexpected select-mode bindings")
	}
	mer := k.forPhase(phaseReady, true)
	if mer.Toggle.Enabled() || !mer.MoveRight.Enabled() || !mer.Cancel.Enabled() {
		t.Fatalf("unexpected merge-mode bindings")
	}
	errK := k.forPhase(phaseError, false)
	if !errK.Retry.Enabled() || errK.Left.Enabled() {
		t.Fatalf("unexpected error-phase bindings")
	}
}

func toStrings(ids []model.ListID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

// twoSessionsState merges 1+2 into 4, updates, then merges 4+2 into 5. The session
// lists of the second merge (2 and 4) both sit left of 5.
func twoSessionsState(t *testing.T) board.State {
	t.Helper()
	st, err := board.New(sampleItems(), nil).Toggle("1").Toggle("2").CreateMergedList()
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}
	st, err = st.Commit().Toggle("4").Toggle("2").CreateMergedList()
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	st, ok := st.Move("c", "2", "5")
	if !ok {
		t.Fatalf("expected c to move into 5")
	}
	return st
}

func TestApp_MoveReachesEveryDestinationOnOneSide(t *testing.T) {
	m := loadedModel(t, nil)
	m.state = twoSessionsState(t)
	m.sel = clampSelection(buildColumns(m.state), boardSelection{Col: 3})
	if m.sel.ItemID != "c" {
		t.Fatalf("expected focus on c in list 5, got %+v", m.sel)
	}

	// "<" goes to the nearest list on the left.
	m, _ = press(t, m, runes("<"))
	if got := idsOf(m.state.Lists["2"]); len(got) != 1 || got[0] != "c" {
		t.Fatalf("expected c back in list 2, got %v", got)
	}

	// The farther list is reached by picking it as the target.
	m.state = twoSessionsState(t)
	m.sel = clampSelection(buildColumns(m.state), boardSelection{Col: 3})
	if out := m.View(); !strings.Contains(out, "[← 4]") {
		t.Fatalf("expected list 4 as the default target, got=%q", out)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.sel.Target != "2" {
		t.Fatalf("target=%q want 2", m.sel.Target)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.sel.Target != "4" {
		t.Fatalf("target=%q want 4 after wrapping", m.sel.Target)
	}
	m, _ = press(t, m, runes("m"))
	if got := idsOf(m.state.Lists["4"]); len(got) != 1 || got[0] != "c" {
		t.Fatalf("expected c in list 4, got %v", got)
	}
	if len(m.state.Lists["5"]) != 0 {
		t.Fatalf("expected list 5 empty, got %v", idsOf(m.state.Lists["5"]))
	}
}
