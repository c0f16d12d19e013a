package acquire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneOrUpdate_InvalidLocalSourceFailsWithoutNetwork(t *testing.T) {
	// A file:// URL pointing at a directory that doesn't exist fails during
	// go-git's local transport setup, never touching the network, which
	// keeps this test hermetic while still exercising the real clone path.
	target := Target{URL: "file:///nonexistent/source/repo", Name: "demo"}

	err := CloneOrUpdate(target, t.TempDir())
	assert.Error(t, err)
}

func TestCloneAll_CollectsPerTargetErrorsWithoutAborting(t *testing.T) {
	targets := []Target{
		{URL: "file:///nonexistent/a", Name: "a"},
		{URL: "file:///nonexistent/b", Name: "b"},
	}

	errs := CloneAll(targets, t.TempDir())
	assert.Len(t, errs, 2)
}
