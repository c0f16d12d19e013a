package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sitter "github.com/smacker/go-tree-sitter"
	tsgolang "github.com/smacker/go-tree-sitter/golang"
)

func TestHashSource_DeterministicAndDistinct(t *testing.T) {
	a := hashSource("package main")
	b := hashSource("package main")
	c := hashSource("package other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestASTCache_GetOrParseHitsOnRepeatedSource(t *testing.T) {
	cache := &astCache{maxAge: time.Second}

	parser := sitter.NewParser()
	parser.SetLanguage(tsgolang.GetLanguage())

	source := "package main\nfunc main() {}\n"

	tree1, err := cache.getOrParse(parser, "go", source)
	require.NoError(t, err)
	require.NotNil(t, tree1)
	defer tree1.Close()

	missesAfterFirst := cache.misses.Load()
	hitsAfterFirst := cache.hits.Load()
	assert.Equal(t, int64(1), missesAfterFirst)
	assert.Equal(t, int64(0), hitsAfterFirst)

	tree2, err := cache.getOrParse(parser, "go", source)
	require.NoError(t, err)
	require.NotNil(t, tree2)
	defer tree2.Close()

	assert.Equal(t, int64(1), cache.misses.Load())
	assert.Equal(t, int64(1), cache.hits.Load())
}
