package parse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage_PicksDominantExtension(t *testing.T) {
	Register(stubAdapter{})

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.stub"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.stub"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("c"), 0o644))

	lang, ok := DetectLanguage(dir)
	require.True(t, ok)
	assert.Equal(t, "stublang", lang)
}

func TestDetectLanguage_NoRecognizedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("c"), 0o644))

	_, ok := DetectLanguage(dir)
	assert.False(t, ok)
}

func TestDetectLanguage_SkipsExcludedDirectories(t *testing.T) {
	Register(stubAdapter{})

	dir := t.TempDir()
	excluded := filepath.Join(dir, "node_modules")
	require.NoError(t, os.MkdirAll(excluded, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(excluded, "dep.stub"), []byte("x"), 0o644))

	_, ok := DetectLanguage(dir)
	assert.False(t, ok, "a .stub file only inside node_modules should not count")
}
