package report_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhmdevan/workload-radar/internal/domain/project"
	"github.com/mhmdevan/workload-radar/internal/domain/report"
	"github.com/mhmdevan/workload-radar/internal/domain/task"
	"github.com/mhmdevan/workload-radar/internal/domain/user"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/migrations"
	"github.com/mhmdevan/workload-radar/pkg/logger"
)

var jobNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *connection.Database {
	t.Helper()
	db, err := connection.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db, logger.NewLogger()))
	return db
}

func seedProject(t *testing.T, db *connection.Database) project.Project {
	t.Helper()
	owner := user.User{Email: "owner@example.com", Name: "Owner", PasswordHash: "x", CreatedAt: jobNow}
	require.NoError(t, db.Create(&owner).Error)
	p := project.Project{Name: "radar", OwnerID: owner.ID, CreatedAt: jobNow}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedTaskForProject(t *testing.T, db *connection.Database, projectID int64, status task.Status, createdAt time.Time, doneAt *time.Time) {
	t.Helper()
	tk := task.Task{
		ProjectID: &projectID,
		Title:     "job test task",
		Status:    status,
		Priority:  task.PriorityNormal,
		CreatedAt: createdAt,
		DoneAt:    doneAt,
	}
	require.NoError(t, db.Create(&tk).Error)
}

func seedReport(t *testing.T, db *connection.Database, projectID int64) report.Report {
	t.Helper()
	rep := report.Report{
		ProjectID: projectID,
		Type:      report.TypeDailySummary,
		Params:    []byte(`{}`),
		Status:    report.StatusPending,
		CreatedAt: jobNow,
	}
	require.NoError(t, db.Create(&rep).Error)
	return rep
}

func runJob(t *testing.T, db *connection.Database, reportID int64) report.SummaryResult {
	t.Helper()
	job := report.NewSummaryJob(db, logger.NewLogger(), func() time.Time { return jobNow })
	require.NoError(t, job.Run(context.Background(), reportID))

	var rep report.Report
	require.NoError(t, db.First(&rep, reportID).Error)
	assert.Equal(t, report.StatusReady, rep.Status)
	require.NotNil(t, rep.FinishedAt)

	var result report.SummaryResult
	require.NoError(t, json.Unmarshal(rep.Result, &result))
	return result
}

func TestSummaryJobMissingReportIsNoOp(t *testing.T) {
	db := newTestDB(t)
	job := report.NewSummaryJob(db, logger.NewLogger(), nil)

	require.NoError(t, job.Run(context.Background(), 424242))

	var count int64
	require.NoError(t, db.Model(&report.Report{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSummaryJobStatusCountsComplete(t *testing.T) {
	db := newTestDB(t)
	p := seedProject(t, db)
	rep := seedReport(t, db, p.ID)

	created := jobNow.Add(-48 * time.Hour)
	done := jobNow.Add(-24 * time.Hour)
	seedTaskForProject(t, db, p.ID, task.StatusTodo, created, nil)
	seedTaskForProject(t, db, p.ID, task.StatusTodo, created, nil)
	seedTaskForProject(t, db, p.ID, task.StatusDone, created, &done)

	result := runJob(t, db, rep.ID)

	assert.Equal(t, p.ID, result.ProjectID)
	// Exactly the three known statuses, zero counts included.
	assert.Equal(t, map[string]int64{
		"todo":        2,
		"in_progress": 0,
		"done":        1,
	}, result.StatusCounts)

	var total int64
	for _, count := range result.StatusCounts {
		total += count
	}
	assert.Equal(t, int64(3), total)
}

func TestSummaryJobFractionalLeadTime(t *testing.T) {
	db := newTestDB(t)
	p := seedProject(t, db)
	rep := seedReport(t, db, p.ID)

	// 5.5 days of lead time. The engine's whole-day metric would say 5;
	// this job must report the fractional value.
	done := jobNow.Add(-24 * time.Hour)
	created := done.Add(-(5*24 + 12) * time.Hour)
	seedTaskForProject(t, db, p.ID, task.StatusDone, created, &done)

	result := runJob(t, db, rep.ID)

	require.NotNil(t, result.AvgLeadTimeDays30Day)
	assert.InDelta(t, 5.5, *result.AvgLeadTimeDays30Day, 1e-9)
}

func TestSummaryJobWindowBoundary(t *testing.T) {
	db := newTestDB(t)
	p := seedProject(t, db)
	rep := seedReport(t, db, p.ID)

	// Completed exactly 30 days before job time: included (inclusive
	// lower bound). Completed 31 days before: excluded.
	atBoundary := jobNow.Add(-30 * 24 * time.Hour)
	beyondBoundary := jobNow.Add(-31 * 24 * time.Hour)
	seedTaskForProject(t, db, p.ID, task.StatusDone, atBoundary.Add(-2*24*time.Hour), &atBoundary)
	seedTaskForProject(t, db, p.ID, task.StatusDone, beyondBoundary.Add(-10*24*time.Hour), &beyondBoundary)

	result := runJob(t, db, rep.ID)

	// Only the boundary task qualifies, with its 2-day lead time.
	require.NotNil(t, result.AvgLeadTimeDays30Day)
	assert.InDelta(t, 2.0, *result.AvgLeadTimeDays30Day, 1e-9)
}

func TestSummaryJobEmptyWindowYieldsNull(t *testing.T) {
	db := newTestDB(t)
	p := seedProject(t, db)
	rep := seedReport(t, db, p.ID)

	seedTaskForProject(t, db, p.ID, task.StatusTodo, jobNow.Add(-time.Hour), nil)

	result := runJob(t, db, rep.ID)
	assert.Nil(t, result.AvgLeadTimeDays30Day)

	// The persisted JSON must carry an explicit null, not a zero.
	var rep2 report.Report
	require.NoError(t, db.First(&rep2, rep.ID).Error)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rep2.Result, &raw))
	assert.Equal(t, "null", string(raw["avg_lead_time_days_last_30_days"]))
}

func TestSummaryJobGeneratedAtMatchesClock(t *testing.T) {
	db := newTestDB(t)
	p := seedProject(t, db)
	rep := seedReport(t, db, p.ID)

	result := runJob(t, db, rep.ID)
	assert.Equal(t, jobNow.Format(report.TimestampLayout), result.GeneratedAt)

	var stored report.Report
	require.NoError(t, db.First(&stored, rep.ID).Error)
	assert.True(t, stored.FinishedAt.Equal(jobNow))
}

func TestSummaryJobIgnoresOtherProjects(t *testing.T) {
	db := newTestDB(t)
	p := seedProject(t, db)
	other := project.Project{Name: "other", OwnerID: p.OwnerID, CreatedAt: jobNow}
	require.NoError(t, db.Create(&other).Error)
	rep := seedReport(t, db, p.ID)

	done := jobNow.Add(-time.Hour)
	seedTaskForProject(t, db, other.ID, task.StatusDone, done.Add(-24*time.Hour), &done)
	seedTaskForProject(t, db, p.ID, task.StatusTodo, jobNow.Add(-time.Hour), nil)

	result := runJob(t, db, rep.ID)
	assert.Equal(t, int64(0), result.StatusCounts["done"])
	assert.Nil(t, result.AvgLeadTimeDays30Day)
}

func TestHandleTaskDecodesJSONNumberArg(t *testing.T) {
	db := newTestDB(t)
	p := seedProject(t, db)
	rep := seedReport(t, db, p.ID)

	job := report.NewSummaryJob(db, logger.NewLogger(), func() time.Time { return jobNow })
	require.NoError(t, job.HandleTask(context.Background(), []interface{}{json.Number("1")}))

	var stored report.Report
	require.NoError(t, db.First(&stored, rep.ID).Error)
	assert.Equal(t, report.StatusReady, stored.Status)
}

func TestHandleTaskRejectsBadArgs(t *testing.T) {
	db := newTestDB(t)
	job := report.NewSummaryJob(db, logger.NewLogger(), nil)

	assert.Error(t, job.HandleTask(context.Background(), nil))
	assert.Error(t, job.HandleTask(context.Background(), []interface{}{"not-a-number"}))
}
