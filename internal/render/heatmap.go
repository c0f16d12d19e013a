package render

import (
	"fmt"
	"sort"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/schedule"
)

// writeHeatmap lays out one language's square probability matrix: templates
// first (as both leading rows and columns), then submissions, both axes
// alphabetical within their group, plus a trailing "Best Match" column -
// the Go shape of ExcelHandler's heatmap_sheet.
func (w *Workbook) writeHeatmap(lang string, results []schedule.Result) {
	sheet := heatmapSheetName(lang)
	w.file.NewSheet(sheet)

	projects := collectProjects(results)
	order := orderProjects(projects)

	scoreOf := make(map[string]int, len(results))   // pairKey -> probability
	sheetOf := make(map[string]string, len(results)) // pairKey -> detail sheet
	for _, res := range results {
		if res.Err != nil {
			continue // failed pairs are left off the heatmap
		}
		key := pairKey(lang, res.Pair.First.Name(), res.Pair.Second.Name())
		scoreOf[key] = reportScore(res)
		backLink := fmt.Sprintf("%s!A1", sheet)
		sheetOf[key] = w.writeDetailSheet(backLink, res.Report)
	}

	headerRow := 1
	headerCol := 1
	for i, name := range order {
		w.file.SetCellValue(sheet, cellAt(headerCol+1+i, headerRow), name)
		w.file.SetCellValue(sheet, cellAt(headerCol, headerRow+1+i), name)
	}
	bestCol := headerCol + 1 + len(order)
	w.file.SetCellValue(sheet, cellAt(bestCol, headerRow), "Best Match")

	for i, rowName := range order {
		best := -1
		for j, colName := range order {
			r, c := headerRow+1+i, headerCol+1+j
			if i == j {
				continue
			}
			key := pairKey(lang, rowName, colName)
			score, ok := scoreOf[key]
			if !ok {
				continue
			}
			ref := cellAt(c, r)
			w.file.SetCellValue(sheet, ref, score)
			w.file.SetCellStyle(sheet, ref, ref, w.colors.StyleFor(clampScore(score)))
			if target, ok := sheetOf[key]; ok {
				w.file.SetCellHyperLink(sheet, ref, fmt.Sprintf("%s!A1", target), "Location")
			}
			if score > best {
				best = score
			}
		}
		if best >= 0 {
			w.file.SetCellValue(sheet, cellAt(bestCol, headerRow+1+i), best)
		}
	}

	w.file.SetColWidth(sheet, cellColLetter(headerCol), cellColLetter(bestCol), 14)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	return score
}

// collectProjects returns the distinct *entity.Project values appearing as
// either side of results.
func collectProjects(results []schedule.Result) []*entity.Project {
	seen := make(map[string]*entity.Project)
	for _, res := range results {
		seen[res.Pair.First.Name()] = res.Pair.First
		seen[res.Pair.Second.Name()] = res.Pair.Second
	}
	out := make([]*entity.Project, 0, len(seen))
	for _, p := range seen {
		out = append(out, p)
	}
	return out
}

// orderProjects sorts templates before submissions, alphabetically within
// each group, matching the original heatmap's leading-templates convention.
func orderProjects(projects []*entity.Project) []string {
	var templates, submissions []string
	for _, p := range projects {
		if p.IsTemplate {
			templates = append(templates, p.Name())
		} else {
			submissions = append(submissions, p.Name())
		}
	}
	sort.Strings(templates)
	sort.Strings(submissions)
	return append(templates, submissions...)
}

// cellAt converts 1-indexed (col, row) coordinates to an A1 reference.
func cellAt(col, row int) string {
	return fmt.Sprintf("%s%d", cellColLetter(col), row)
}

// cellColLetter converts a 1-indexed column number to its spreadsheet letter.
func cellColLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
