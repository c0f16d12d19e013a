// Package history persists one row per comparison run and one row per
// pairwise report via GORM, so a long batch's results survive a render-stage
// crash and can be re-rendered without re-running every comparison.
package history

import (
	"time"

	"gorm.io/datatypes"
)

// Run represents one invocation of the comparison engine: a batch of projects
// acquired, parsed, compared, and (eventually) rendered.
type Run struct {
	ID        string     `gorm:"primaryKey;type:varchar(20)"`
	StartedAt time.Time  `gorm:"autoCreateTime"`
	EndedAt   *time.Time

	// Configuration snapshot, so a re-render can reconstruct the thresholds
	// and palette the original run used without re-reading CLI flags.
	Config datatypes.JSON `gorm:"type:jsonb"`

	// Statistics
	ProjectCount int `gorm:"default:0"`
	PairCount    int `gorm:"default:0"`
	FailureCount int `gorm:"default:0"`

	Status string `gorm:"type:varchar(20);default:'running'"` // running, completed, failed

	PairResults []PairResult `gorm:"foreignKey:RunID"`
}

// PairResult is one settled (or failed) pairwise comparison belonging to a Run.
type PairResult struct {
	ID    string `gorm:"primaryKey;type:varchar(20)"`
	RunID string `gorm:"type:varchar(20);index"`

	Language string `gorm:"type:varchar(50);not null"`

	FirstProject     string `gorm:"type:varchar(255);not null"`
	SecondProject    string `gorm:"type:varchar(255);not null"`
	FirstIsTemplate  bool
	SecondIsTemplate bool

	Probability int `gorm:"default:0"`
	Weight      int `gorm:"default:0"`

	// ReportTree is the serialized report.Report, so a re-render can rebuild
	// detail sheets without holding the whole batch's entity graphs in memory.
	ReportTree datatypes.JSON `gorm:"type:jsonb"`

	Failed       bool   `gorm:"default:false"`
	FailureCause string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Run) TableName() string        { return "runs" }
func (PairResult) TableName() string { return "pair_results" }
