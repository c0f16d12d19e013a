package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/report"
	"github.com/oxhq/detectsim/internal/settings"
)

func TestFlattenReport_OnlyVisualisableKindsEmitRows(t *testing.T) {
	cfg := settings.Default()
	proj := entity.NewProject("p", "go", false, cfg)
	class := entity.NewClass("A", nil, nil, nil, proj)
	modifier := entity.NewModifier("public")

	// Class is visualisable (entity.KindClass); Modifier is not, so its
	// report should fold into the parent row rather than emit one of its own.
	classReport := report.New(90, 10, class, class)
	classReport.Children = []report.Report{report.New(50, 10, modifier, modifier)}

	rows := flattenReport(classReport, 0, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.KindClass, rows[0].kind)
	assert.Equal(t, 90, rows[0].probability)
}

func TestFlattenReport_NestedVisualisableIncrementsDepth(t *testing.T) {
	cfg := settings.Default()
	proj := entity.NewProject("p", "go", false, cfg)
	file := entity.NewFile("f.go", "f.go", nil, nil, nil, nil, proj)
	class := entity.NewClass("A", nil, nil, nil, proj)

	fileReport := report.New(80, 10, file, file)
	fileReport.Children = []report.Report{report.New(70, 10, class, class)}

	rows := flattenReport(fileReport, 0, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].depth)
	assert.Equal(t, 1, rows[1].depth)
}

func TestIndent_GrowsByTwoSpacesPerLevel(t *testing.T) {
	assert.Equal(t, "", indent(0))
	assert.Equal(t, "  ", indent(1))
	assert.Equal(t, "    ", indent(2))
}

func TestWriteDetailSheet_WritesHeaderAndRows(t *testing.T) {
	cfg := settings.Default()
	proj := entity.NewProject("p", "go", false, cfg)
	classA := entity.NewClass("A", nil, nil, nil, proj)
	classB := entity.NewClass("B", nil, nil, nil, proj)

	r := report.New(100, 10, classA, classB)

	w := New(cfg)
	name := w.writeDetailSheet("Heatmap go!A1", r)

	assert.Equal(t, "Report 1", name)
	entityLabel, err := w.file.GetCellValue(name, "A2")
	require.NoError(t, err)
	assert.Contains(t, entityLabel, entity.KindClass)

	first, err := w.file.GetCellValue(name, "B1")
	require.NoError(t, err)
	assert.Equal(t, "A", first)

	score, err := w.file.GetCellValue(name, "D2")
	require.NoError(t, err)
	assert.Equal(t, "100", score)
}
