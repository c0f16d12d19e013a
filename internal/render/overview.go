package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// writeOverview renders the run-level summary sheet: a 10-point-bin
// probability histogram with a bar chart, plus the skipped and failed pair
// lists, the Go shape of compare.py's overview sheet.
func (w *Workbook) writeOverview() {
	w.file.NewSheet(overviewSheet)

	bins := make([]int, 10) // [0,10) .. [90,100]
	var failed []string

	for _, lang := range w.languages {
		for _, res := range w.byLanguage[lang] {
			if res.Err != nil {
				failed = append(failed, fmt.Sprintf("%s vs %s: %v",
					res.Pair.First.Name(), res.Pair.Second.Name(), res.Err))
				continue
			}
			score := res.Report.Probability
			if score < 0 {
				score = 0
			}
			bin := score / 10
			if bin > 9 {
				bin = 9
			}
			bins[bin]++
		}
	}

	w.file.SetCellValue(overviewSheet, "A1", "Score Range")
	w.file.SetCellValue(overviewSheet, "B1", "Pairs")
	for i, count := range bins {
		row := i + 2
		label := fmt.Sprintf("%d-%d", i*10, i*10+9)
		if i == 9 {
			label = "90-100"
		}
		w.file.SetCellValue(overviewSheet, cellAt(1, row), label)
		w.file.SetCellValue(overviewSheet, cellAt(2, row), count)
	}

	if err := w.file.AddChart(overviewSheet, "D1", &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{
			{
				Name:       overviewSheet + "!$B$1",
				Categories: overviewSheet + "!$A$2:$A$11",
				Values:     overviewSheet + "!$B$2:$B$11",
			},
		},
		Title: []excelize.RichTextRun{{Text: "Similarity score distribution"}},
	}); err != nil {
		// A chart is cosmetic; the histogram data above still renders without it.
		_ = err
	}

	listRow := 14
	w.file.SetCellValue(overviewSheet, cellAt(1, listRow), "Failed comparisons")
	for i, msg := range failed {
		w.file.SetCellValue(overviewSheet, cellAt(1, listRow+1+i), msg)
	}

	skipRow := listRow + len(failed) + 3
	w.file.SetCellValue(overviewSheet, cellAt(1, skipRow), "Skipped projects")
	for i, name := range w.skipped {
		w.file.SetCellValue(overviewSheet, cellAt(1, skipRow+1+i), name)
	}

	w.file.SetColWidth(overviewSheet, "A", "A", 48)
	w.file.SetColWidth(overviewSheet, "B", "B", 10)
}
