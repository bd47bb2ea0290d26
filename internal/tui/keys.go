package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Create    key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Target    key.Binding
	MoveTo    key.Binding
	Update    key.Binding
	Cancel    key.Binding
	Retry     key.Binding
	Detail    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev list")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next list")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select list")),
		Create:    key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "create a new list")),
		MoveLeft:  key.NewBinding(key.WithKeys("<", ",", "shift+left", "H"), key.WithHelp("<", "move item ←")),
		MoveRight: key.NewBinding(key.WithKeys(">", ".", "shift+right", "L"), key.WithHelp(">", "move item →")),
		Target:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next move target")),
		MoveTo:    key.NewBinding(key.WithKeys("m", "enter"), key.WithHelp("m", "move to target")),
		Update:    key.NewBinding(key.WithKeys("u", "ctrl+s"), key.WithHelp("u", "update")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc/c", "cancel")),
		Retry:     key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "retry")),
		Detail:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "details")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// forPhase enables only the bindings that do something in the current screen, so
// the help line never advertises dead keys.
func (k keyMap) forPhase(p phase, merging bool) keyMap {
	ready := p == phaseReady
	k.Left.SetEnabled(ready)
	k.Right.SetEnabled(ready)
	k.Up.SetEnabled(ready)
	k.Down.SetEnabled(ready)
	k.Detail.SetEnabled(ready)
	k.Toggle.SetEnabled(ready && !merging)
	k.Create.SetEnabled(ready && !merging)
	k.MoveLeft.SetEnabled(ready && merging)
	k.MoveRight.SetEnabled(ready && merging)
	k.Target.SetEnabled(ready && merging)
	k.MoveTo.SetEnabled(ready && merging)
	k.Update.SetEnabled(ready && merging)
	k.Cancel.SetEnabled(ready && merging)
	k.Retry.SetEnabled(p == phaseError)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Create, k.MoveLeft, k.MoveRight, k.Update, k.Cancel, k.Retry, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Toggle, k.Create, k.Detail},
		{k.MoveLeft, k.MoveRight, k.Target, k.MoveTo, k.Update, k.Cancel},
		{k.Retry, k.Help, k.Quit},
	}
}
