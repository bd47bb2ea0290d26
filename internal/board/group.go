package board

import (
	"sort"
	"strconv"
	"strings"

	"listmerge/internal/model"
)

// Lists maps a list id to its items, in display order within the list.
type Lists map[model.ListID][]model.Item

// Clone copies the map and every item slice.
func (l Lists) Clone() Lists {
	out := make(Lists, len(l))
	for k, v := range l {
		out[k] = append(make([]model.Item, 0, len(v)), v...)
	}
	return out
}

// Count returns the number of items across the given lists (all lists when none are given).
func (l Lists) Count(ids ...model.ListID) int {
	if len(ids) == 0 {
		n := 0
		for _, v := range l {
			n += len(v)
		}
		return n
	}
	n := 0
	for _, id := range ids {
		n += len(l[id])
	}
	return n
}

// Group partitions items by list number. Items keep their input order within a list;
// the returned order is the distinct list ids sorted by numeric value.
func Group(items []model.Item) (Lists, []model.ListID) {
	lists := Lists{}
	order := []model.ListID{}
	for _, it := range items {
		key := model.ListID(strings.TrimSpace(string(it.ListNumber)))
		it.ListNumber = key
		if _, ok := lists[key]; !ok {
			order = append(order, key)
		}
		lists[key] = append(lists[key], it)
	}
	SortIDs(order)
	return lists, order
}

// Flatten concatenates lists in the given order.
func Flatten(lists Lists, order []model.ListID) []model.Item {
	out := make([]model.Item, 0, lists.Count())
	for _, id := range order {
		out = append(out, lists[id]...)
	}
	return out
}

// SortIDs sorts list ids ascending by numeric value. Ids that are not numbers sort
// after all numeric ids, lexically.
func SortIDs(ids []model.ListID) {
	sort.SliceStable(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })
}

func lessID(a, b model.ListID) bool {
	af, aok := numericID(a)
	bf, bok := numericID(b)
	switch {
	case aok && bok:
		if af != bf {
			return af < bf
		}
		return a < b
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

func numericID(id model.ListID) (float64, bool) {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NextID returns max(numeric ids)+1 as a string. Non-numeric ids are ignored; with no
// numeric ids the next id is "1".
func NextID(lists Lists) model.ListID {
	max := 0.0
	found := false
	for k := range lists {
		f, ok := numericID(k)
		if !ok {
			continue
		}
		if !found || f > max {
			max = f
			found = true
		}
	}
	if !found {
		return "1"
	}
	return model.ListID(strconv.FormatFloat(max+1, 'f', -1, 64))
}
