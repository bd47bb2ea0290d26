package board

import "listmerge/internal/model"

// MoveItem removes the item with itemID from src and appends it to dst.
//
// It is a silent no-op (returning the input lists and false) when the item is not in
// src, when src == dst, or when dst is not a known list. The input is never mutated.
func MoveItem(lists Lists, itemID model.ItemID, src, dst model.ListID) (Lists, bool) {
	if src == dst {
		return lists, false
	}
	from, ok := lists[src]
	if !ok {
		return lists, false
	}
	to, ok := lists[dst]
	if !ok {
		return lists, false
	}
	idx := -1
	for i, it := range from {
		if it.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return lists, false
	}

	// Items are immutable; membership is defined by the map, so ListNumber keeps the
	// value the API sent.
	moved := from[idx]

	out := make(Lists, len(lists))
	for k, v := range lists {
		out[k] = v
	}
	nextFrom := make([]model.Item, 0, len(from)-1)
	nextFrom = append(nextFrom, from[:idx]...)
	nextFrom = append(nextFrom, from[idx+1:]...)
	nextTo := make([]model.Item, 0, len(to)+1)
	nextTo = append(nextTo, to...)
	nextTo = append(nextTo, moved)
	out[src] = nextFrom
	out[dst] = nextTo
	return out, true
}
