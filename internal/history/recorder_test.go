package history

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/report"
	"github.com/oxhq/detectsim/internal/schedule"
	"github.com/oxhq/detectsim/internal/settings"
)

func TestSerializeReport_FlattensEntitiesAndNestsChildren(t *testing.T) {
	cfg := settings.Default()
	proj := entity.NewProject("p", "go", false, cfg)
	classA := entity.NewClass("A", nil, nil, nil, proj)
	classB := entity.NewClass("B", nil, nil, nil, proj)
	modifier := entity.NewModifier("public")

	r := report.New(90, 10, classA, classB)
	r.Children = []report.Report{report.New(100, 5, modifier, modifier)}

	node := serializeReport(r)
	assert.Equal(t, 90, node.Probability)
	assert.Equal(t, 10, node.Weight)
	assert.Equal(t, entity.KindClass, node.FirstKind)
	assert.Equal(t, "A", node.FirstName)
	assert.Equal(t, "B", node.SecondName)
	require.Len(t, node.Children, 1)
	assert.Equal(t, 100, node.Children[0].Probability)
}

func TestRecorder_StartRunRecordResultAndFinish(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	db, err := Connect(dsn, false)
	require.NoError(t, err)

	rec, err := StartRun(db, map[string]string{"mode": "test"})
	require.NoError(t, err)
	require.NotEmpty(t, rec.runID)

	var run Run
	require.NoError(t, db.First(&run, "id = ?", rec.runID).Error)
	assert.Equal(t, "running", run.Status)

	cfg := settings.Default()
	first := entity.NewProject("template", "go", true, cfg)
	second := entity.NewProject("submission", "go", false, cfg)

	ok := schedule.Result{
		Pair:   schedule.Pair{First: first, Second: second},
		Report: report.New(80, 10, first, second),
	}
	require.NoError(t, rec.RecordResult(ok))

	failed := schedule.Result{
		Pair: schedule.Pair{First: first, Second: second},
		Err:  errors.New("parse failed"),
	}
	require.NoError(t, rec.RecordResult(failed))

	var rows []PairResult
	require.NoError(t, db.Where("run_id = ?", rec.runID).Find(&rows).Error)
	require.Len(t, rows, 2)

	var okRow, failRow PairResult
	for _, row := range rows {
		if row.Failed {
			failRow = row
		} else {
			okRow = row
		}
	}
	assert.Equal(t, 80, okRow.Probability)
	assert.True(t, okRow.FirstIsTemplate)
	assert.NotEmpty(t, okRow.ReportTree)
	assert.Equal(t, "parse failed", failRow.FailureCause)

	require.NoError(t, rec.Finish(2, 2, 1))

	require.NoError(t, db.First(&run, "id = ?", rec.runID).Error)
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, 2, run.ProjectCount)
	assert.Equal(t, 1, run.FailureCount)
	assert.NotNil(t, run.EndedAt)
}
