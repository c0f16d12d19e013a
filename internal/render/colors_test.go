package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/oxhq/detectsim/internal/settings"
)

func TestGradientHex_ClampsAndAnchorsEndpoints(t *testing.T) {
	assert.Equal(t, gradientHex(-5), gradientHex(0), "negative scores should clamp to 0")
	assert.Equal(t, gradientHex(150), gradientHex(100), "scores above 100 should clamp to 100")
	assert.Equal(t, "#00C000", gradientHex(0))
	assert.Equal(t, "#FF0000", gradientHex(100))
}

func TestColorStyles_GradientModeCachesByScore(t *testing.T) {
	f := excelize.NewFile()
	cfg := settings.Default()
	cs := newColorStyles(f, cfg)

	first := cs.StyleFor(42)
	second := cs.StyleFor(42)
	assert.Equal(t, first, second, "the same score should reuse its cached style ID")

	other := cs.StyleFor(90)
	assert.NotEqual(t, first, other)
}

func TestColorStyles_LegacyModeThreeBands(t *testing.T) {
	f := excelize.NewFile()
	cfg := settings.Default()
	cfg.LegacyColor = true
	cs := newColorStyles(f, cfg)

	green := cs.StyleFor(cfg.ColorThresholdGreen)
	yellow := cs.StyleFor(cfg.ColorThresholdGreen + 1)
	red := cs.StyleFor(cfg.ColorThresholdYellow + 1)

	assert.Equal(t, cs.legacy[0], green)
	assert.Equal(t, cs.legacy[1], yellow)
	assert.Equal(t, cs.legacy[2], red)
}
