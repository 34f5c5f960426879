package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
}

func buildFixture(t *testing.T, mode Mode) (*Reader, string) {
	t.Helper()
	dir := t.TempDir()
	dict := filepath.Join(dir, "dictionary.txt")
	postings := filepath.Join(dir, "postings.txt")

	b := NewBuilder(mode)
	docs := map[DocID][]string{
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

	r, err := Open(dict, postings, mode)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r, dir
}

func TestRankedRoundTrip(t *testing.T) {
	r, _ := buildFixture(t, Ranked)

	assert.Equal(t, DocIDs{1, 2, 3}, r.AllDocs())
	assert.Equal(t, uint32(3), r.DocLength(1)) // quick, brown, fox: 3 distinct terms
	assert.Equal(t, uint32(2), r.DocLength(2)) // quick, fox: 2 distinct terms
	assert.Equal(t, uint32(2), r.DocLength(3)) // lazi, dog: 2 distinct terms

	quick := r.RankedPostings("quick")
	require.Len(t, quick, 2)
	assert.Equal(t, uint32(1), quick.TermFreq(1))
	assert.Equal(t, uint32(2), quick.TermFreq(2))

	df, _, ok := r.Lookup("quick")
	require.True(t, ok)
	assert.Equal(t, 2, df)
	assert.Equal(t, df, len(quick))
}

func TestBooleanRoundTrip(t *testing.T) {
	r, _ := buildFixture(t, Boolean)

	fox := r.BooleanPostings("fox")
	assert.Equal(t, DocIDs{1, 2}, fox.Docs)

	missing := r.BooleanPostings("nonexistent")
	assert.Empty(t, missing.Docs)
}

func TestDictionaryParseSkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "dictionary.txt")
	postings := filepath.Join(dir, "postings.txt")

	b := NewBuilder(Ranked)
	b.AddTerm(1, "quick")
	require.NoError(t, b.Write(dict, postings))

	// Append a trailing blank line and a malformed line, both must be
	// silently skipped.
	f, err := appendFile(dict)
	require.NoError(t, err)
	_, err = f.WriteString("\nbogus-line-without-enough-fields\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	r, err := Open(dict, postings, Ranked)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 1, r.NumDocs())
}

func TestSkipPointerPlacement(t *testing.T) {
	// n=16 -> step = floor(sqrt(16)) = 4.
	skips := BuildSkips(16)
	assert.Equal(t, 4, skips[0])
	assert.Equal(t, 8, skips[4])
	assert.Equal(t, 12, skips[8])
	_, ok := skips[15]
	assert.False(t, ok, "no skip pointer at the last position")
}
