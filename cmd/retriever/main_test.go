package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(os.Stderr)
	root.SetErr(os.Stderr)
	return root.Execute()
}

func TestEndToEnd_BooleanIndexAndSearch(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "dictionary.txt")
	postings := filepath.Join(dir, "postings.txt")

	require.NoError(t, runCmd(t, "index",
		"-i", "testdata/corpus",
		"-d", dict,
		"-p", postings,
		"-m", "bool",
	))

	queries := filepath.Join(dir, "queries.txt")
	results := filepath.Join(dir, "results.txt")
	require.NoError(t, os.WriteFile(queries, []byte(
		"quick AND fox\nquick AND NOT brown\n(quick OR lazy) AND NOT dog\nNOT quick\n"), 0o644))

	require.NoError(t, runCmd(t, "search",
		"-d", dict,
		"-p", postings,
		"-q", queries,
		"-o", results,
		"-m", "bool",
	))

	got, err := os.ReadFile(results)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(got), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "1 2", lines[0])
	assert.Equal(t, "2", lines[1])
	assert.Equal(t, "1 2", lines[2])
	assert.Equal(t, "3", lines[3])
}

func TestEndToEnd_RankedIndexAndSearch(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "dictionary.txt")
	postings := filepath.Join(dir, "postings.txt")

	require.NoError(t, runCmd(t, "index",
		"-i", "testdata/corpus",
		"-d", dict,
		"-p", postings,
		"-m", "ranked",
	))

	queries := filepath.Join(dir, "queries.txt")
	results := filepath.Join(dir, "results.txt")
	require.NoError(t, os.WriteFile(queries, []byte("quick fox\nnonexistentterm\n"), 0o644))

	require.NoError(t, runCmd(t, "search",
		"-d", dict,
		"-p", postings,
		"-q", queries,
		"-o", results,
		"-m", "ranked",
		"-k", "2",
	))

	got, err := os.ReadFile(results)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(got), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2 1", lines[0])
	assert.Equal(t, "", lines[1])
}

func TestIndex_WorkersFlagOverridesAutomaticSizing(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "dictionary.txt")
	postings := filepath.Join(dir, "postings.txt")

	require.NoError(t, runCmd(t, "index",
		"-i", "testdata/corpus",
		"-d", dict,
		"-p", postings,
		"-m", "ranked",
		"--workers", "1",
	))

	_, err := os.Stat(dict)
	require.NoError(t, err)
	_, err = os.Stat(postings)
	require.NoError(t, err)
}

func TestIndex_MissingFlagsIsUsageError(t *testing.T) {
	err := runCmd(t, "index", "-i", "testdata/corpus")
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
}

func TestSearch_MissingFlagsIsUsageError(t *testing.T) {
	err := runCmd(t, "search", "-d", "x")
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
}
