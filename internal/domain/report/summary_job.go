package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mhmdevan/workload-radar/internal/domain/task"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
	"github.com/mhmdevan/workload-radar/pkg/logger"
)

const (
	summaryWindow   = 30 * 24 * time.Hour
	timestampLayout = "2006-01-02T15:04:05.000000"
	secondsPerDay   = 86400.0
)

// SummaryJob computes status-count and lead-time metrics for one
// project and persists them onto the requesting report record. It runs
// on the worker, outside the request/response cycle.
type SummaryJob struct {
	db  *connection.Database
	log *logger.Logger
	now func() time.Time
}

// NewSummaryJob creates a summary job handler. The clock is injectable
// for tests; pass nil for the real one.
func NewSummaryJob(db *connection.Database, log *logger.Logger, now func() time.Time) *SummaryJob {
	if now == nil {
		now = time.Now
	}
	return &SummaryJob{db: db, log: log, now: now}
}

// HandleTask adapts Run to the broker handler signature. The single
// positional argument is the report id.
func (j *SummaryJob) HandleTask(ctx context.Context, args []interface{}) error {
	if len(args) != 1 {
		return fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	reportID, err := toInt64(args[0])
	if err != nil {
		return fmt.Errorf("invalid report id argument: %w", err)
	}
	return j.Run(ctx, reportID)
}

// Run generates the summary for the given report inside one
// transaction; partial writes are never visible. A missing report is a
// no-op, tolerating the race where the record is deleted before the
// job runs. Any other error propagates to the caller untouched.
func (j *SummaryJob) Run(ctx context.Context, reportID int64) error {
	return j.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rep Report
		if err := tx.First(&rep, reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				j.log.Warn("Report vanished before summary job ran", zap.Int64("report_id", reportID))
				return nil
			}
			return err
		}

		// One clock read anchors both generated_at and the trailing
		// window.
		now := j.now().UTC()
		since := now.Add(-summaryWindow)

		statusCounts := make(map[string]int64, 3)
		for _, status := range task.Statuses() {
			var count int64
			if err := tx.Model(&task.Task{}).
				Where("project_id = ? AND status = ?", rep.ProjectID, status).
				Count(&count).Error; err != nil {
				return err
			}
			statusCounts[string(status)] = count
		}

		avgLeadTime, err := avgLeadTimeDays(tx, rep.ProjectID, since)
		if err != nil {
			return err
		}

		result := SummaryResult{
			ProjectID:            rep.ProjectID,
			GeneratedAt:          now.Format(timestampLayout),
			StatusCounts:         statusCounts,
			AvgLeadTimeDays30Day: avgLeadTime,
		}
		rawResult, err := json.Marshal(result)
		if err != nil {
			return err
		}

		if err := tx.Model(&Report{}).Where("id = ?", rep.ID).Updates(map[string]interface{}{
			"result":      datatypes.JSON(rawResult),
			"status":      StatusReady,
			"finished_at": now,
		}).Error; err != nil {
			return err
		}

		j.log.Info("Project summary generated",
			zap.Int64("report_id", rep.ID),
			zap.Int64("project_id", rep.ProjectID))
		return nil
	})
}

// avgLeadTimeDays averages the fractional-day lead time of tasks done
// at or after since. An empty set yields nil, not zero.
func avgLeadTimeDays(tx *gorm.DB, projectID int64, since time.Time) (*float64, error) {
	var rows []struct {
		CreatedAt time.Time
		DoneAt    time.Time
	}
	err := tx.Model(&task.Task{}).
		Select("created_at", "done_at").
		Where("project_id = ? AND status = ? AND done_at IS NOT NULL AND done_at >= ?",
			projectID, task.StatusDone, since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	var totalDays float64
	for _, row := range rows {
		totalDays += row.DoneAt.Sub(row.CreatedAt).Seconds() / secondsPerDay
	}
	avg := totalDays / float64(len(rows))
	return &avg, nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}
