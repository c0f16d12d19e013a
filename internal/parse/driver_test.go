package parse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/detectsim/internal/settings"
)

func TestDriver_LoadProject_ParsesMatchingFilesOnly(t *testing.T) {
	Register(stubAdapter{})

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.stub"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("noise"), 0o644))

	driver := NewDriver(settings.Default())
	proj, warnings, err := driver.LoadProject(dir, "demo", "stublang", false)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, proj.Files, 1)
	assert.Equal(t, "demo", proj.ProjectName)
	assert.Equal(t, "stublang", proj.LanguageTag)
	assert.False(t, proj.IsTemplate)
}

func TestDriver_LoadProject_UnknownLanguageErrors(t *testing.T) {
	driver := NewDriver(settings.Default())
	_, _, err := driver.LoadProject(t.TempDir(), "demo", "no-such-language", false)
	assert.Error(t, err)
}

func TestDriver_LoadProject_SkipsSyntaxErrorFiles(t *testing.T) {
	Register(stubAdapter{})

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.stub"), []byte("package main\nfunc main( {\n"), 0o644))

	driver := NewDriver(settings.Default())
	proj, warnings, err := driver.LoadProject(dir, "demo", "stublang", false)
	require.NoError(t, err)
	assert.Empty(t, proj.Files)
	assert.Len(t, warnings, 1)
}
