package shopping

import "sort"

// Relearn computes a shop's new item ordering from an observed shopping
// sequence. Observed keys get sort orders 1..N in sequence order,
// overwriting whatever they had before. Previously tracked keys absent from
// the sequence keep their relative order (by prior sort order) and are
// renumbered N+1, N+2, ... after the observed block. Submitting the same
// sequence twice yields identical numbering.
func Relearn(sequence []string, existing map[string]int) map[string]int {
	updated := make(map[string]int, len(existing)+len(sequence))

	observed := make(map[string]struct{}, len(sequence))
	for idx, key := range sequence {
		updated[key] = idx + 1
		observed[key] = struct{}{}
	}

	remaining := make([]string, 0, len(existing))
	for key := range existing {
		if _, ok := observed[key]; !ok {
			remaining = append(remaining, key)
		}
	}
	sort.Slice(remaining, func(i, j int) bool {
		return existing[remaining[i]] < existing[remaining[j]]
	})

	next := len(sequence) + 1
	for _, key := range remaining {
		updated[key] = next
		next++
	}

	return updated
}
