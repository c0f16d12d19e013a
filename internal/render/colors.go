package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/oxhq/detectsim/internal/settings"
)

// colorStyles caches the style IDs backing the heatmap/detail sheet color
// bands so every sheet reuses the same three (legacy mode) or continuously
// interpolated (default mode) fills instead of registering a style per cell.
type colorStyles struct {
	cfg    *settings.Config
	file   *excelize.File
	legacy [3]int // green, yellow, red, only populated in legacy mode
	cache  map[int]int
}

func newColorStyles(file *excelize.File, cfg *settings.Config) *colorStyles {
	cs := &colorStyles{cfg: cfg, file: file, cache: make(map[int]int)}
	if cfg.LegacyColor {
		cs.legacy[0] = cs.mustStyle("#76FF71")
		cs.legacy[1] = cs.mustStyle("#E7FF71")
		cs.legacy[2] = cs.mustStyle("#FF7171")
	}
	return cs
}

func (cs *colorStyles) mustStyle(hex string) int {
	id, err := cs.file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
	})
	if err != nil {
		return 0
	}
	return id
}

// StyleFor returns the style ID for a probability score, matching
// ExcelHandler.get_format's three-band thresholds in legacy mode, or a
// continuous green-to-red gradient otherwise (§4.9.4).
func (cs *colorStyles) StyleFor(score int) int {
	if cs.cfg.LegacyColor {
		switch {
		case score <= cs.cfg.ColorThresholdGreen:
			return cs.legacy[0]
		case score <= cs.cfg.ColorThresholdYellow:
			return cs.legacy[1]
		default:
			return cs.legacy[2]
		}
	}

	if id, ok := cs.cache[score]; ok {
		return id
	}
	id := cs.mustStyle(gradientHex(score))
	cs.cache[score] = id
	return id
}

// gradientHex interpolates green (#00C000) -> yellow (#E7E000) -> red
// (#FF0000) across [0,100].
func gradientHex(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	var r, g, b int
	if score <= 50 {
		t := float64(score) / 50
		r = int(0 + t*(231-0))
		g = int(192 + t*(224-192))
		b = 0
	} else {
		t := float64(score-50) / 50
		r = int(231 + t*(255-231))
		g = int(224 - t*224)
		b = 0
	}
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
