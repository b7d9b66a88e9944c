package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noneRecorded(string) bool { return false }

func TestNewManagerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output", "nested")

	m, err := NewManager(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Empty(t, m.Orphans(noneRecorded))

	// Idempotent on an existing directory
	_, err = NewManager(dir)
	assert.NoError(t, err)
}

func TestNewManagerRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := NewManager(path)
	assert.Error(t, err)
}

func TestWriteImage(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	require.NoError(t, m.WriteImage("001-about.png", []byte("first")))
	require.NoError(t, m.WriteImage("001-about.png", []byte("second")))

	data, err := os.ReadFile(filepath.Join(dir, "001-about.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.Equal(t, []string{"001-about.png"}, m.Orphans(noneRecorded))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files remain")
}

func TestWriteImageRejectsPaths(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, m.WriteImage("../escape.png", []byte("x")))
	assert.Error(t, m.WriteImage("", []byte("x")))
}

func TestScanAndOrphans(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"001-a.png", "002-b.png", "notes.txt", tempPrefix + "123.tmp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	m, err := NewManager(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"001-a.png", "002-b.png"}, m.Orphans(noneRecorded))
	assert.NoFileExists(t, filepath.Join(dir, tempPrefix+"123.tmp"))

	recorded := map[string]bool{"001-a.png": true}
	orphans := m.Orphans(func(name string) bool { return recorded[name] })
	assert.Equal(t, []string{"002-b.png"}, orphans)
}
