// Package rank implements the lnc.ltc ranked scorer: query and document
// weight vectors, cosine-style scoring divided by document length, and
// top-k selection with ascending-DocId tie-break.
package rank

import (
	"container/heap"
	"math"
	"sort"

	"github.com/billstark/retriever/internal/index"
	"github.com/billstark/retriever/internal/normalize"
)

// DefaultK is the default result count when none is given.
const DefaultK = 10

// queryTerm is one distinct term of the query, in first-occurrence order,
// with its in-query frequency (qtf).
type queryTerm struct {
	term string
	qtf  int
}

// Search parses query, scores every candidate document (one containing at
// least one query term) against it, and returns the top-k DocIds, highest
// score first, ties broken by ascending DocId.
func Search(query string, reader *index.Reader, k int) index.DocIDs {
	if k <= 0 {
		return index.DocIDs{}
	}

	terms := orderedQueryTerms(query)
	if len(terms) == 0 {
		return index.DocIDs{}
	}

	qvec := make([]float64, len(terms))
	postingsByTerm := make([]index.RankedPostingList, len(terms))
	N := reader.NumDocs()

	for i, qt := range terms {
		df, _, ok := reader.Lookup(qt.term)
		if !ok || df == 0 {
			continue
		}
		postingsByTerm[i] = reader.RankedPostings(qt.term)
		idf := math.Log10(float64(N) / float64(df))
		qvec[i] = (1 + math.Log10(float64(qt.qtf))) * idf
	}
	l2Normalize(qvec)

	candidates := candidateSet(postingsByTerm)
	if len(candidates) == 0 {
		return index.DocIDs{}
	}

	h := &resultHeap{}
	for _, doc := range candidates {
		dvec := make([]float64, len(terms))
		for i, p := range postingsByTerm {
			if p == nil {
				continue
			}
			if tf := p.TermFreq(doc); tf > 0 {
				dvec[i] = 1 + math.Log10(float64(tf))
			}
		}
		l2Normalize(dvec)

		length := reader.DocLength(doc)
		if length == 0 {
			continue
		}
		score := dot(qvec, dvec) / float64(length)
		pushBounded(h, scored{doc: doc, score: score}, k)
	}

	return extractSorted(h)
}

// orderedQueryTerms normalizes query and counts occurrences per term,
// preserving first-occurrence order so query and document vectors line up
// component-for-component.
func orderedQueryTerms(query string) []queryTerm {
	var terms []queryTerm
	seenAt := make(map[string]int)
	normalize.Each(query, func(term string) {
		if i, ok := seenAt[term]; ok {
			terms[i].qtf++
			return
		}
		seenAt[term] = len(terms)
		terms = append(terms, queryTerm{term: term, qtf: 1})
	})
	return terms
}

// candidateSet is the union of every term's document set: every document
// containing at least one query term.
func candidateSet(postingsByTerm []index.RankedPostingList) index.DocIDs {
	seen := make(map[index.DocID]struct{})
	var out index.DocIDs
	for _, p := range postingsByTerm {
		for _, e := range p {
			if _, ok := seen[e.DocID]; !ok {
				seen[e.DocID] = struct{}{}
				out = append(out, e.DocID)
			}
		}
	}
	return out
}

// l2Normalize divides v by its L2 norm in place. If the norm is zero, v is
// left unchanged (the "division by zero" rule: output
// zero scores, do not fail).
func l2Normalize(v []float64) {
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	if sumSq == 0 {
		return
	}
	norm := math.Sqrt(sumSq)
	for i := range v {
		v[i] /= norm
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// scored is one candidate's final score, used by the bounded top-k heap.
type scored struct {
	doc   index.DocID
	score float64
}

// better reports whether a should be kept over b when only one of the two
// can survive: higher score wins; on equal score, the smaller DocId wins.
func better(a, b scored) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.doc < b.doc
}

// resultHeap is a min-heap over "worseness": its root is always the worst
// of the currently-kept top-k candidates, so a new candidate can be
// compared against the root in O(1) and, if better, swapped in for
// O(log k) total work, via the standard library's container/heap.
type resultHeap []scored

func (h resultHeap) Len() int { return len(h) }
func (h resultHeap) Less(i, j int) bool {
	// i is "worse than" j: Less must be true for the element that should
	// sit closer to the root (the one we'd evict first).
	return better(h[j], h[i])
}
func (h resultHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *resultHeap) Push(x any)   { *h = append(*h, x.(scored)) }
func (h *resultHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func pushBounded(h *resultHeap, s scored, k int) {
	if h.Len() < k {
		heap.Push(h, s)
		return
	}
	if h.Len() == 0 {
		return
	}
	root := (*h)[0]
	if better(s, root) {
		(*h)[0] = s
		heap.Fix(h, 0)
	}
}

func extractSorted(h *resultHeap) index.DocIDs {
	out := make([]scored, h.Len())
	copy(out, *h)
	sort.Slice(out, func(i, j int) bool { return better(out[i], out[j]) })

	ids := make(index.DocIDs, len(out))
	for i, s := range out {
		ids[i] = s.doc
	}
	return ids
}
