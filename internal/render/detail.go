package render

import (
	"fmt"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/report"
)

// visualisableKinds mirrors compare.py's types_to_compare: only these levels
// of the report tree get their own detail-sheet row, everything finer
// (modifiers, parameters, statement blocks) stays folded into its parent's
// probability instead of printing a row of its own.
var visualisableKinds = map[string]bool{
	entity.KindProject: true,
	entity.KindFile:    true,
	entity.KindClass:   true,
	entity.KindMethod:  true,
}

// detailRow is one flattened, indentation-ready line of a report tree,
// the Go shape of report_tree_to_list_of_lists's per-row list.
type detailRow struct {
	depth       int
	kind        string
	first       string
	second      string
	probability int
	weight      int
}

// flattenReport walks r depth-first, emitting one row per visualisable node.
func flattenReport(r report.Report, depth int, out []detailRow) []detailRow {
	if visualisableKinds[r.First.Kind()] || visualisableKinds[r.Second.Kind()] {
		out = append(out, detailRow{
			depth:       depth,
			kind:        r.First.Kind(),
			first:       r.First.Name(),
			second:      r.Second.Name(),
			probability: r.Probability,
			weight:      r.Weight,
		})
		depth++
	}
	for _, child := range r.Children {
		out = flattenReport(child, depth, out)
	}
	return out
}

// writeDetailSheet renders one comparison's report tree as an indented,
// colour-banded row list and returns the sheet name, the Go equivalent of
// create_detail_sheet.
func (w *Workbook) writeDetailSheet(heatmapBackLink string, r report.Report) string {
	name := w.nextDetailSheetName()
	w.file.NewSheet(name)

	headerRow := 1
	w.file.SetCellValue(name, "A1", "Entity")
	w.file.SetCellValue(name, "B1", r.First.Name())
	w.file.SetCellValue(name, "C1", r.Second.Name())
	w.file.SetCellValue(name, "D1", "Score")
	col := "E"
	if w.cfg.Weight {
		w.file.SetCellValue(name, col+"1", "Weight")
	}
	if heatmapBackLink != "" {
		w.file.SetCellValue(name, "G1", "<< back to heatmap")
		w.file.SetCellHyperLink(name, "G1", heatmapBackLink, "Location")
	}

	rows := flattenReport(r, 0, nil)
	for i, row := range rows {
		excelRow := headerRow + 1 + i
		label := fmt.Sprintf("%s%s", indent(row.depth), row.kind)
		w.file.SetCellValue(name, cellRef("A", excelRow), label)
		w.file.SetCellValue(name, cellRef("B", excelRow), row.first)
		w.file.SetCellValue(name, cellRef("C", excelRow), row.second)
		w.file.SetCellValue(name, cellRef("D", excelRow), row.probability)
		w.file.SetCellStyle(name, cellRef("D", excelRow), cellRef("D", excelRow), w.colors.StyleFor(row.probability))
		if w.cfg.Weight {
			w.file.SetCellValue(name, cellRef("E", excelRow), row.weight)
		}
	}

	w.file.SetColWidth(name, "A", "A", 40)
	w.file.SetColWidth(name, "B", "C", 28)
	return name
}

func indent(depth int) string {
	out := ""
	for i := 0; i < depth; i++ {
		out += "  "
	}
	return out
}

func cellRef(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
