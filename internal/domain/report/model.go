package report

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// TypeDailySummary is the report type produced by the project summary job.
const TypeDailySummary = "daily_summary"

// Report is an analytical report for a project. Status and Result are
// written only by the background job; callers create reports in the
// pending state and poll for the outcome.
type Report struct {
	ID         int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID  int64          `json:"project_id" gorm:"not null;index:idx_report_project"`
	Type       string         `json:"type" gorm:"not null"`
	Params     datatypes.JSON `json:"params,omitempty"`
	Status     Status         `json:"status" gorm:"not null;default:'pending'"`
	Result     datatypes.JSON `json:"result,omitempty"`
	CreatedAt  time.Time      `json:"created_at" gorm:"not null"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
}

// TableName specifies the table name for the Report model
func (Report) TableName() string {
	return "reports"
}

// SummaryResult is the payload the project summary job persists into a
// report's Result column.
type SummaryResult struct {
	ProjectID            int64            `json:"project_id"`
	GeneratedAt          string           `json:"generated_at"`
	StatusCounts         map[string]int64 `json:"status_counts"`
	AvgLeadTimeDays30Day *float64         `json:"avg_lead_time_days_last_30_days"`
}
