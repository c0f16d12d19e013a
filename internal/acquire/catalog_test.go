package acquire

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogue(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalogue.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestParseCatalogueFile_DerivesNameFromURL(t *testing.T) {
	path := writeCatalogue(t, "https://example.com/org/myrepo.git\n")

	targets, err := ParseCatalogueFile(path)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "https://example.com/org/myrepo.git", targets[0].URL)
	assert.Equal(t, "myrepo", targets[0].Name)
}

func TestParseCatalogueFile_UsesExplicitName(t *testing.T) {
	path := writeCatalogue(t, "https://example.com/org/myrepo.git  display name\n")

	targets, err := ParseCatalogueFile(path)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "display name", targets[0].Name)
}

func TestParseCatalogueFile_SkipsBlankLinesAndComments(t *testing.T) {
	path := writeCatalogue(t, "\n# a comment\nhttps://example.com/a.git\n\n# another\nhttps://example.com/b.git\n")

	targets, err := ParseCatalogueFile(path)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "a", targets[0].Name)
	assert.Equal(t, "b", targets[1].Name)
}

func TestParseCatalogueFile_MissingFile(t *testing.T) {
	_, err := ParseCatalogueFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
