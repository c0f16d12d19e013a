// Package render builds the xlsx report workbook produced by a comparison
// run, grounded on original_source/detection/compare.py's ExcelHandler: an
// overview sheet, one heatmap per language, and one detail sheet per rendered
// pair linked back and forth via hyperlinks.
package render

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/oxhq/detectsim/internal/schedule"
	"github.com/oxhq/detectsim/internal/settings"
)

const overviewSheet = "Overview"

// Workbook accumulates a run's results into an *excelize.File, mirroring
// ExcelHandler's dict_of_projects bookkeeping plus its sheet-writer methods.
type Workbook struct {
	cfg    *settings.Config
	file   *excelize.File
	colors *colorStyles

	// byLanguage groups results in encounter order so heatmaps and the
	// overview histogram are built in one pass over settled data.
	byLanguage map[string][]schedule.Result
	languages  []string

	// skipped lists projects that never made it into a comparison pair (no
	// detectable language, or zero parseable source files), surfaced on the
	// overview sheet alongside failed comparisons.
	skipped []string

	detailCount int
}

// New returns an empty Workbook ready to receive results via Add.
func New(cfg *settings.Config) *Workbook {
	f := excelize.NewFile()
	return &Workbook{
		cfg:        cfg,
		file:       f,
		colors:     newColorStyles(f, cfg),
		byLanguage: make(map[string][]schedule.Result),
	}
}

// Add records one comparison result for later rendering. Failed comparisons
// (Result.Err != nil) are listed on the overview's failed-comparisons list
// and not plotted onto any heatmap.
func (w *Workbook) Add(res schedule.Result) {
	lang := res.Pair.First.LanguageTag
	if _, ok := w.byLanguage[lang]; !ok {
		w.languages = append(w.languages, lang)
	}
	w.byLanguage[lang] = append(w.byLanguage[lang], res)
}

// AddSkipped records a project that was never compared (no detectable
// language, or zero parseable source files), for display on the overview
// sheet's skipped-projects list.
func (w *Workbook) AddSkipped(name string) {
	w.skipped = append(w.skipped, name)
}

// pairKey identifies a detail sheet independent of argument order, matching
// how the heatmap looks sheets up from either axis.
func pairKey(lang, a, b string) string {
	if a > b {
		a, b = b, a
	}
	return lang + "\x00" + a + "\x00" + b
}

// nextDetailSheetName returns a short, Excel-safe, collision-free sheet name;
// compare.py used "report-row-col", but row/col indices aren't known until
// the heatmap is laid out, so results are named by discovery order instead.
func (w *Workbook) nextDetailSheetName() string {
	w.detailCount++
	return fmt.Sprintf("Report %d", w.detailCount)
}

// Render lays out every sheet (overview, heatmaps, detail sheets) and returns
// the finished workbook. It is idempotent only in the sense that calling it
// twice re-renders from the same accumulated results; it does not clear
// previously rendered sheets.
func (w *Workbook) Render() *excelize.File {
	sort.Strings(w.languages)

	w.writeOverview()
	for _, lang := range w.languages {
		w.writeHeatmap(lang, w.byLanguage[lang])
	}

	w.file.DeleteSheet("Sheet1")
	if len(w.languages) > 0 {
		idx, _ := w.file.GetSheetIndex(heatmapSheetName(w.languages[0]))
		w.file.SetActiveSheet(idx)
	}
	return w.file
}

// SaveAs writes the rendered workbook to path.
func (w *Workbook) SaveAs(path string) error {
	return w.file.SaveAs(path)
}

func heatmapSheetName(lang string) string {
	return "Heatmap " + lang
}

// reportScore returns the top-level probability of a settled report, or -1
// for a failed comparison.
func reportScore(res schedule.Result) int {
	if res.Err != nil {
		return -1
	}
	return res.Report.Probability
}
