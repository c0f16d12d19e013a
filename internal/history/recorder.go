package history

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/oxhq/detectsim/internal/report"
	"github.com/oxhq/detectsim/internal/schedule"
)

// Recorder persists a run's results incrementally, one row per RecordResult
// call, so every result already recorded survives a later crash (for example
// in the render stage) instead of being lost with the whole run, the property
// db/sqlite.go's Stage/Apply tables give morfx's staged transformations.
type Recorder struct {
	db    *gorm.DB
	runID string
}

// StartRun inserts a new Run row and returns a Recorder bound to it.
func StartRun(db *gorm.DB, configSnapshot any) (*Recorder, error) {
	cfgJSON, err := json.Marshal(configSnapshot)
	if err != nil {
		return nil, err
	}
	run := &Run{
		ID:     uuid.NewString(),
		Config: datatypes.JSON(cfgJSON),
		Status: "running",
	}
	if err := db.Create(run).Error; err != nil {
		return nil, err
	}
	return &Recorder{db: db, runID: run.ID}, nil
}

// RecordResult appends one comparison outcome to the run.
func (r *Recorder) RecordResult(res schedule.Result) error {
	row := &PairResult{
		ID:               uuid.NewString(),
		RunID:            r.runID,
		Language:         res.Pair.First.LanguageTag,
		FirstProject:     res.Pair.First.Name(),
		SecondProject:    res.Pair.Second.Name(),
		FirstIsTemplate:  res.Pair.First.IsTemplate,
		SecondIsTemplate: res.Pair.Second.IsTemplate,
	}

	if res.Err != nil {
		row.Failed = true
		row.FailureCause = res.Err.Error()
	} else {
		row.Probability = res.Report.Probability
		row.Weight = res.Report.Weight
		treeJSON, err := json.Marshal(serializeReport(res.Report))
		if err != nil {
			return err
		}
		row.ReportTree = datatypes.JSON(treeJSON)
	}

	return r.db.Create(row).Error
}

// Finish marks the run complete with its final counters.
func (r *Recorder) Finish(projectCount, pairCount, failureCount int) error {
	now := time.Now()
	return r.db.Model(&Run{}).Where("id = ?", r.runID).Updates(map[string]any{
		"ended_at":      &now,
		"project_count": projectCount,
		"pair_count":    pairCount,
		"failure_count": failureCount,
		"status":        "completed",
	}).Error
}

// reportNode is the JSON-serializable mirror of report.Report: entities
// collapse to their name/kind pair since the live report.Entity values
// (parsed AST-backed structs) aren't meant to survive a process boundary.
type reportNode struct {
	Probability int          `json:"probability"`
	Weight      int          `json:"weight"`
	FirstKind   string       `json:"first_kind"`
	FirstName   string       `json:"first_name"`
	SecondKind  string       `json:"second_kind"`
	SecondName  string       `json:"second_name"`
	Children    []reportNode `json:"children,omitempty"`
}

func serializeReport(r report.Report) reportNode {
	node := reportNode{
		Probability: r.Probability,
		Weight:      r.Weight,
		FirstKind:   r.First.Kind(),
		FirstName:   r.First.Name(),
		SecondKind:  r.Second.Kind(),
		SecondName:  r.Second.Name(),
	}
	for _, c := range r.Children {
		node.Children = append(node.Children, serializeReport(c))
	}
	return node
}
