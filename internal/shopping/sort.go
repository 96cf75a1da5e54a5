package shopping

import "sort"

// Sort tier buckets, compared ascending before any other key.
const (
	tierOrdered   = 0 // unchecked with a learned order entry
	tierUnordered = 1 // unchecked without one
	tierChecked   = 2 // checked, regardless of learned order
)

type sortKey struct {
	tier     int
	rank     int
	category string
	name     string
}

func keyFor(item ListItem, orders map[string]int) sortKey {
	if item.Checked {
		return sortKey{tier: tierChecked, category: categoryOrEmpty(item), name: item.Name}
	}
	if rank, ok := orders[item.Key.String()]; ok {
		return sortKey{tier: tierOrdered, rank: rank}
	}
	return sortKey{tier: tierUnordered, category: categoryOrEmpty(item), name: item.Name}
}

func categoryOrEmpty(item ListItem) string {
	if item.Category == nil {
		return ""
	}
	return *item.Category
}

func (a sortKey) less(b sortKey) bool {
	if a.tier != b.tier {
		return a.tier < b.tier
	}
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	if a.category != b.category {
		return a.category < b.category
	}
	return a.name < b.name
}

// SortItems orders the list in place: unchecked items with a learned order
// first (by that order), then remaining unchecked items by category and
// name, then checked items by category and name. With no learned orders the
// whole unchecked set sorts alphabetically. The sort is stable.
func SortItems(items []ListItem, orders map[string]int) {
	sort.SliceStable(items, func(i, j int) bool {
		return keyFor(items[i], orders).less(keyFor(items[j], orders))
	})
}
