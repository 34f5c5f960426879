// Package normalize implements the tokenization pipeline shared by the
// indexer and the searcher: segment, sanitize, fold case, stem.
package normalize

import (
	"regexp"
	"strings"

	"github.com/blevesearch/go-porterstemmer"
)

// wordSpan is a locale-independent, Treebank-ish word segmenter: it keeps
// letters, digits, underscores, internal hyphens and apostrophes together as
// one span, and splits on everything else (whitespace, most punctuation).
var wordSpan = regexp.MustCompile(`[\p{L}\p{N}_]+(?:['’\-][\p{L}\p{N}_]+)*`)

// sanitize strips everything outside [A-Za-z0-9_\s\-] from a segment.
var sanitize = regexp.MustCompile(`[^A-Za-z0-9_\s\-]+`)

// Terms returns the normalized term sequence for text, in order. Terms
// is deterministic and idempotent (up to stemmer stability): feeding
// already-normalized text back through Terms reproduces it unchanged.
//
// This exact pipeline runs both at index time and at query time.
func Terms(text string) []string {
	var terms []string
	Each(text, func(term string) {
		terms = append(terms, term)
	})
	return terms
}

// Each calls fn once per normalized term, in order, without building an
// intermediate slice. Prefer this for the indexer's per-document pass.
func Each(text string, fn func(term string)) {
	for _, span := range wordSpan.FindAllString(text, -1) {
		cleaned := sanitize.ReplaceAllString(span, "")
		if cleaned == "" {
			continue
		}
		lower := strings.ToLower(cleaned)
		stemmed := porterstemmer.StemString(lower)
		if stemmed == "" {
			continue
		}
		fn(stemmed)
	}
}
