// Package postingalg implements the pure set operations over sorted DocId
// lists of a posting list: OR, AND (skip-accelerated), AND_NOT, NOT.
package postingalg

import "github.com/billstark/retriever/internal/index"

// Or merges a and b without duplicates. Both inputs must already be sorted
// ascending; the result is sorted ascending and duplicate-free.
func Or(a, b index.DocIDs) index.DocIDs {
	out := make(index.DocIDs, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// And intersects a and b. skipA/skipB are optional skip-pointer maps (may
// be nil); when present they accelerate the merge but never change the
// result.
func And(a, b index.DocIDs, skipA, skipB map[int]int) index.DocIDs {
	out := index.DocIDs{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i = advance(a, i, b[j], skipA)
		default:
			j = advance(b, j, a[i], skipB)
		}
	}
	return out
}

// advance moves pointer i forward on list l, following skip pointers as far
// as they stay <= bound. If at least one skip was followed, the landed
// position is returned as-is — it may already equal bound, and the caller's
// equality check must see it. Only when no skip applies at all does advance
// fall through to a single-step move.
func advance(l index.DocIDs, i int, bound index.DocID, skip map[int]int) int {
	followed := false
	for skip != nil {
		target, ok := skip[i]
		if !ok || target >= len(l) || l[target] > bound {
			break
		}
		i = target
		followed = true
	}
	if followed {
		return i
	}
	return i + 1
}

// AndNot returns the elements of a that do not appear in b, via a sorted
// two-pointer walk. Skip pointers are not used here.
func AndNot(a, b index.DocIDs) index.DocIDs {
	out := make(index.DocIDs, 0, len(a))
	i, j := 0, 0
	for i < len(a) {
		for j < len(b) && b[j] < a[i] {
			j++
		}
		if j < len(b) && b[j] == a[i] {
			i++
			continue
		}
		out = append(out, a[i])
		i++
	}
	return out
}

// Not is AND_NOT(allDocs, a).
func Not(allDocs, a index.DocIDs) index.DocIDs {
	return AndNot(allDocs, a)
}
