package boolquery

import (
	"github.com/billstark/retriever/internal/index"
	"github.com/billstark/retriever/internal/postingalg"
)

// collapse evaluates an AST node into a concrete sorted posting list, per
// a cost-driven evaluation order.
func collapse(n Node) index.DocIDs {
	switch t := n.(type) {
	case *keywordNode:
		return t.load().Docs
	case *notNode:
		return postingalg.AndNot(t.allDocs, collapse(t.child))
	case *orNode:
		var acc index.DocIDs
		for i, c := range t.children {
			if i == 0 {
				acc = collapse(c)
				continue
			}
			acc = postingalg.Or(acc, collapse(c))
		}
		return acc
	case *andNode:
		return collapseAnd(t)
	}
	return nil
}

// effectiveCount returns the cost figure used to order And's children
// normally child.count(), but child.inner.count() when child
// is a Not whose AND-NOT shortcut applies (its inner count is strictly
// less than the Not's own count, i.e. the complement is the larger set).
func effectiveCount(n Node) (cost int, shortcutInner Node) {
	if not, ok := n.(*notNode); ok {
		innerCount := not.child.count()
		if innerCount < not.count() {
			return innerCount, not.child
		}
	}
	return n.count(), nil
}

func collapseAnd(a *andNode) index.DocIDs {
	remaining := append([]Node(nil), a.children...)

	seedIdx := argminCost(remaining)
	seed := remaining[seedIdx]
	remaining = append(remaining[:seedIdx], remaining[seedIdx+1:]...)

	var acc index.DocIDs
	var skipAcc map[int]int
	if kw, ok := seed.(*keywordNode); ok {
		p := kw.load()
		acc = p.Docs
		skipAcc = p.Skips
	} else {
		acc = collapse(seed)
	}

	for len(remaining) > 0 {
		idx := argminCost(remaining)
		child := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)

		_, shortcutInner := effectiveCount(child)
		if shortcutInner != nil {
			acc = postingalg.AndNot(acc, collapse(shortcutInner))
		} else {
			var skipChild map[int]int
			if kw, ok := child.(*keywordNode); ok {
				skipChild = kw.load().Skips
			}
			acc = postingalg.And(acc, collapse(child), skipAcc, skipChild)
		}
		// After any step past the first, the accumulator's skip pointers
		// are no longer usable.
		skipAcc = nil
	}

	return acc
}

func argminCost(nodes []Node) int {
	best := 0
	bestCost, _ := effectiveCount(nodes[0])
	for i := 1; i < len(nodes); i++ {
		c, _ := effectiveCount(nodes[i])
		if c < bestCost {
			bestCost = c
			best = i
		}
	}
	return best
}
