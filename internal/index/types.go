// Package index implements the on-disk dictionary/postings format: a term
// dictionary plus a postings file, read randomly by the searcher and
// written once by the indexer.
package index

import "sort"

// DocID is a document identifier: the decimal file name of a corpus entry.
type DocID int

// DocIDs sorts ascending, as every posting list and result set must.
type DocIDs []DocID

func (d DocIDs) Len() int           { return len(d) }
func (d DocIDs) Less(i, j int) bool { return d[i] < d[j] }
func (d DocIDs) Swap(i, j int)      { d[i], d[j] = d[j], d[i] }

func (d DocIDs) sorted() DocIDs {
	out := append(DocIDs(nil), d...)
	sort.Sort(out)
	return out
}

// DocPosting pairs a document with a count (term frequency, or — for the
// all-documents posting — the document's unique-term count).
type DocPosting struct {
	DocID DocID
	Count uint32
}

// RankedPostingList is a sorted vector of (DocId, tf) pairs: the ranked
// posting-entry grammar. No skip pointers; the ranked scorer never needs
// them.
type RankedPostingList []DocPosting

// TermFreq returns the term frequency for doc, or 0 if doc is absent.
func (p RankedPostingList) TermFreq(doc DocID) uint32 {
	i := sort.Search(len(p), func(i int) bool { return p[i].DocID >= doc })
	if i < len(p) && p[i].DocID == doc {
		return p[i].Count
	}
	return 0
}

// BooleanPostingList is a sorted vector of DocIds plus an optional skip map:
// the boolean posting-entry grammar. Skip pointers are an accelerator
// only — correctness never depends on their presence.
type BooleanPostingList struct {
	Docs  DocIDs
	Skips map[int]int // position -> target position, sparse
}

func (p BooleanPostingList) Len() int { return len(p.Docs) }

// BuildSkips places skip pointers at every multiple of floor(sqrt(n))
// except the last position: pointer at i targets
// min(i + floor(sqrt(n)), n-1). Lists shorter than 4 get no skip pointers.
func BuildSkips(n int) map[int]int {
	if n < 4 {
		// Too short to benefit; floor(sqrt(n)) would be 0 or 1, and a step
		// of 1 only points at the next position.
		return nil
	}
	step := isqrt(n)
	if step < 2 {
		return nil
	}
	skips := make(map[int]int)
	for i := 0; i < n-1; i += step {
		target := i + step
		if target > n-1 {
			target = n - 1
		}
		if target != i {
			skips[i] = target
		}
	}
	return skips
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
