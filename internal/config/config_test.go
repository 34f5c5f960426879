package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathIsZeroDefaults(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults{}, d)
}

func TestLoad_ParsesKnownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "retriever.toml")
	require.NoError(t, os.WriteFile(path, []byte("k = 25\nworkers = 8\nlog_level = \"debug\"\n"), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults{K: 25, Workers: 8, LogLevel: "debug"}, d)
}

func TestLoad_IgnoresUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "retriever.toml")
	require.NoError(t, os.WriteFile(path, []byte("k = 5\nfuture_option = true\n"), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, d.K)
}
