package board

import "listmerge/internal/model"

// Selection is the set of checked list ids, in the order they were checked.
// It has no upper bound; the two-list rule is enforced by CreateMergedList.
type Selection []model.ListID

func (s Selection) Has(id model.ListID) bool {
	for _, x := range s {
		if x == id {
			return true
		}
	}
	return false
}

// Toggle returns a new selection with id removed if present, added otherwise.
func (s Selection) Toggle(id model.ListID) Selection {
	out := make(Selection, 0, len(s)+1)
	found := false
	for _, x := range s {
		if x == id {
			found = true
			continue
		}
		out = append(out, x)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

// Sorted returns the selected ids in ascending numeric order.
func (s Selection) Sorted() []model.ListID {
	out := append([]model.ListID(nil), s...)
	SortIDs(out)
	return out
}
