package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Thresholds(t *testing.T) {
	cfg := Default()

	assert.False(t, cfg.FastScan)
	assert.Equal(t, 0.6, cfg.SkipAttrListThreshold)
	assert.Equal(t, 80, cfg.MethodInterfaceThreshold)
	assert.Equal(t, 70, cfg.ColorThresholdGreen)
	assert.Equal(t, 85, cfg.ColorThresholdYellow)
	assert.False(t, cfg.SymmetricStatementBlocks)
	assert.False(t, cfg.Weight)
	assert.False(t, cfg.LegacyColor)
	assert.Equal(t, 0, cfg.Workers)
}

func TestDefault_NodeTranslationCoversEveryLanguage(t *testing.T) {
	cfg := Default()
	for _, lang := range []string{"go", "python", "javascript", "typescript", "php"} {
		table, ok := cfg.NodeTranslation[lang]
		require.Truef(t, ok, "expected a node translation table for %s", lang)
		assert.NotEmpty(t, table)
	}
}

func TestDefault_TypeNormalizationCanonicalizesPrimitives(t *testing.T) {
	cfg := Default()
	goTable := cfg.TypeNormalization["go"]

	assert.Equal(t, "Double", goTable["int"])
	assert.Equal(t, "Double", goTable["float64"])
	assert.Equal(t, "String", goTable["string"])
	assert.Equal(t, "Boolean", goTable["bool"])
	assert.Equal(t, "List", goTable["array"])
	assert.Equal(t, "Map", goTable["map"])
}

func TestDefault_ReturnsIndependentInstances(t *testing.T) {
	a := Default()
	b := Default()
	a.FastScan = true
	a.NodeTranslation["go"]["foo"] = "bar"

	assert.False(t, b.FastScan)
	_, ok := b.NodeTranslation["go"]["foo"]
	assert.False(t, ok, "mutating one Default() result must not affect another")
}
