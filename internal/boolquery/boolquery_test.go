package boolquery

import (
	"path/filepath"
	"testing"

	"github.com/billstark/retriever/internal/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openFixture builds the three-document corpus from the worked end-to-end
// scenarios: doc 1 "quick brown fox", doc 2 "quick quick fox", doc 3
// "lazi dog" (already stemmed/folded terms).
func openFixture(t *testing.T) *index.Reader {
	t.Helper()
	dir := t.TempDir()
	dict := filepath.Join(dir, "dictionary.txt")
	postings := filepath.Join(dir, "postings.txt")

	b := index.NewBuilder(index.Boolean)
	docs := map[index.DocID][]string{
		1: {"quick", "brown", "fox"},
		2: {"quick", "quick", "fox"},
		3: {"lazi", "dog"},
	}
	for doc, terms := range docs {
		for _, term := range terms {
			b.AddTerm(doc, term)
		}
	}
	require.NoError(t, b.Write(dict, postings))

	r, err := index.Open(dict, postings, index.Boolean)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func evalOK(t *testing.T, r *index.Reader, query string) index.DocIDs {
	t.Helper()
	got, err := Eval(query, r)
	require.NoError(t, err)
	return got
}

func TestEndToEndScenarios(t *testing.T) {
	r := openFixture(t)

	assert.Equal(t, index.DocIDs{1, 2}, evalOK(t, r, "quick AND fox"))
	assert.Equal(t, index.DocIDs{2}, evalOK(t, r, "quick AND NOT brown"))
	assert.Equal(t, index.DocIDs{1, 2}, evalOK(t, r, "(quick OR lazy) AND NOT dog"))
	assert.Equal(t, index.DocIDs{3}, evalOK(t, r, "NOT quick"))
}

func TestDoubleNegationEquivalence(t *testing.T) {
	r := openFixture(t)
	assert.Equal(t, evalOK(t, r, "quick"), evalOK(t, r, "NOT NOT quick"))
}

func TestDeMorganEquivalence(t *testing.T) {
	r := openFixture(t)
	assert.Equal(t, evalOK(t, r, "NOT (quick AND dog)"), evalOK(t, r, "NOT quick OR NOT dog"))
}

func TestResultsAscendingAndDeduped(t *testing.T) {
	r := openFixture(t)
	got := evalOK(t, r, "quick OR fox OR brown OR dog OR lazy")
	assert.Equal(t, index.DocIDs{1, 2, 3}, got)
	assert.True(t, len(got) == len(dedupe(got)))
}

func TestUnknownTermIsEmptyNotError(t *testing.T) {
	r := openFixture(t)
	got := evalOK(t, r, "nonexistentterm")
	assert.Empty(t, got)
}

func TestUnmatchedParenIsParseError(t *testing.T) {
	r := openFixture(t)
	_, err := Eval("(quick AND fox", r)
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestDanglingOperatorIsParseError(t *testing.T) {
	r := openFixture(t)
	_, err := Eval("quick AND", r)
	require.Error(t, err)
}

func TestBlankQueryIsEmptyNotError(t *testing.T) {
	r := openFixture(t)
	got, err := Eval("", r)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func dedupe(ds index.DocIDs) index.DocIDs {
	seen := make(map[index.DocID]struct{}, len(ds))
	var out index.DocIDs
	for _, d := range ds {
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}
