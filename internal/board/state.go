package board

import (
	"listmerge/internal/model"
)

type Mode int

const (
	ModeSelect Mode = iota
	ModeMerge
)

func (m Mode) String() string {
	switch m {
	case ModeMerge:
		return "merge"
	default:
		return "select"
	}
}

// State is the whole board: lists, display order, selection, and the merge session.
//
// Transitions are value methods that return a new State and never mutate their
// receiver, so a State can be kept as a snapshot.
type State struct {
	Lists     Lists          `json:"lists"`
	Order     []model.ListID `json:"order"`
	Selection Selection      `json:"selection"`
	Mode      Mode           `json:"-"`
	Session   Session        `json:"session"`
	Notice    string         `json:"notice,omitempty"`
	Routes    []Route        `json:"-"`
}

// New builds a fresh board from fetched items. A nil routes slice means DefaultRoutes.
func New(items []model.Item, routes []Route) State {
	lists, order := Group(items)
	if routes == nil {
		routes = DefaultRoutes()
	}
	return State{
		Lists:     lists,
		Order:     order,
		Selection: Selection{},
		Mode:      ModeSelect,
		Routes:    append([]Route(nil), routes...),
	}
}

func (s State) clone() State {
	out := s
	out.Lists = s.Lists.Clone()
	out.Order = append([]model.ListID(nil), s.Order...)
	out.Selection = append(Selection(nil), s.Selection...)
	out.Routes = append([]Route(nil), s.Routes...)
	return out
}

// Toggle checks or unchecks a list. Unknown ids and toggles outside select mode are ignored.
func (s State) Toggle(id model.ListID) State {
	if s.Mode != ModeSelect {
		return s
	}
	if _, ok := s.Lists[id]; !ok {
		return s
	}
	out := s.clone()
	out.Selection = s.Selection.Toggle(id)
	out.Notice = ""
	return out
}

// CreateMergedList opens a merge session for exactly two selected lists.
//
// On a bad selection it returns a *ValidationError and a state that differs from the
// receiver only by Notice. In merge mode it is a no-op.
func (s State) CreateMergedList() (State, error) {
	if s.Mode == ModeMerge {
		return s, nil
	}
	if len(s.Selection) != 2 {
		out := s.clone()
		out.Notice = SelectionNotice
		return out, &ValidationError{Selected: len(s.Selection)}
	}

	sel := s.Selection.Sorted()
	first, second := sel[0], sel[1]
	newID := NextID(s.Lists)

	out := s.clone()
	order := make([]model.ListID, 0, len(s.Order)+1)
	inserted := false
	for _, id := range s.Order {
		order = append(order, id)
		if !inserted && id == first {
			order = append(order, newID)
			inserted = true
		}
	}
	if !inserted {
		order = append(order, newID)
	}
	out.Order = order
	out.Lists[newID] = []model.Item{}
	out.Mode = ModeMerge
	out.Session = Session{First: first, Second: second, Merged: newID}
	out.Notice = ""
	return out, nil
}

// Move relocates an item along a configured route between the session's lists.
// Anything else (no session, route not allowed, item not in src) is a silent no-op.
func (s State) Move(itemID model.ItemID, src, dst model.ListID) (State, bool) {
	if !s.CanMove(src, dst) {
		return s, false
	}
	lists, ok := MoveItem(s.Lists, itemID, src, dst)
	if !ok {
		return s, false
	}
	out := s.clone()
	out.Lists = lists.Clone()
	out.Notice = ""
	return out, true
}

// CanMove reports whether a route allows moving items from src to dst right now.
func (s State) CanMove(src, dst model.ListID) bool {
	if s.Mode != ModeMerge || src == dst {
		return false
	}
	from, ok := s.Session.RoleOf(src)
	if !ok {
		return false
	}
	to, ok := s.Session.RoleOf(dst)
	if !ok {
		return false
	}
	for _, r := range s.Routes {
		if r.From == from && r.To == to {
			return true
		}
	}
	return false
}

// Destinations lists the lists an item in src may move to, in display order.
func (s State) Destinations(src model.ListID) []model.ListID {
	var out []model.ListID
	for _, id := range s.Order {
		if s.CanMove(src, id) {
			out = append(out, id)
		}
	}
	return out
}

// Arrow is "→" when dst is displayed after src and "←" otherwise.
func (s State) Arrow(src, dst model.ListID) string {
	if s.position(dst) > s.position(src) {
		return "→"
	}
	return "←"
}

func (s State) position(id model.ListID) int {
	for i, x := range s.Order {
		if x == id {
			return i
		}
	}
	return -1
}

// Commit ends the merge session, keeping the current lists and order as the baseline.
// Nothing is written anywhere.
func (s State) Commit() State {
	out := s.clone()
	out.Mode = ModeSelect
	out.Selection = Selection{}
	out.Session = Session{}
	out.Notice = ""
	return out
}

// Reset discards every change and rebuilds the board from freshly fetched items,
// keeping the receiver's routes.
func (s State) Reset(items []model.Item) State {
	return New(items, s.Routes)
}

// ActiveLists returns the session's lists in display order (empty outside merge mode).
func (s State) ActiveLists() []model.ListID {
	if s.Mode != ModeMerge {
		return nil
	}
	var out []model.ListID
	for _, id := range s.Order {
		if s.Session.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// Find returns the list holding itemID.
func (s State) Find(itemID model.ItemID) (model.Item, model.ListID, bool) {
	for _, id := range s.Order {
		for _, it := range s.Lists[id] {
			if it.ID == itemID {
				return it, id, true
			}
		}
	}
	return model.Item{}, "", false
}
