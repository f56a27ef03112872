package analytics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhmdevan/workload-radar/pkg/logger"
)

// summaryRow mirrors the columns DuckDB writes into
// analytics_summary.parquet. done_date is days since the Unix epoch.
type summaryRow struct {
	ProjectID       int64   `parquet:"project_id,optional"`
	DoneDate        int32   `parquet:"done_date,date"`
	TasksDone       int64   `parquet:"tasks_done"`
	AvgLeadTimeDays float64 `parquet:"avg_lead_time_days,optional"`
}

func doneDateOf(t time.Time) int32 {
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	return int32(t.Truncate(24*time.Hour).Sub(epoch).Hours() / 24)
}

func writeTasksFile(t *testing.T, dir string, rows []TaskRow) string {
	t.Helper()
	path := filepath.Join(dir, TasksFileName)
	require.NoError(t, writeParquet(path, rows))
	return path
}

func TestComputeSummaryLeadTimeWholeDays(t *testing.T) {
	dir := t.TempDir()
	engine := NewEngine(logger.NewLogger())

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	// Done 5.5 days after creation: the engine's whole-day difference
	// must be 5, not 5.5 and not 6.
	done := created.Add(5*24*time.Hour + 12*time.Hour)
	tasksPath := writeTasksFile(t, dir, []TaskRow{
		{ID: 1, ProjectID: int64Ptr(1), Status: "done", Priority: 2, CreatedAt: created, DoneAt: &done},
	})

	summaryPath, rows, err := engine.ComputeSummary(context.Background(), tasksPath, dir)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	summary := readParquetRows[summaryRow](t, summaryPath)
	require.Len(t, summary, 1)
	assert.Equal(t, int64(1), summary[0].ProjectID)
	assert.Equal(t, doneDateOf(done), summary[0].DoneDate)
	assert.Equal(t, int64(1), summary[0].TasksDone)
	assert.Equal(t, 5.0, summary[0].AvgLeadTimeDays)
}

func TestComputeSummaryGroupingAndOrdering(t *testing.T) {
	dir := t.TempDir()
	engine := NewEngine(logger.NewLogger())

	day := func(d int) time.Time { return time.Date(2024, 1, d, 10, 0, 0, 0, time.UTC) }
	d3, d4 := day(3), day(4)
	tasksPath := writeTasksFile(t, dir, []TaskRow{
		{ID: 1, ProjectID: int64Ptr(2), Status: "done", Priority: 2, CreatedAt: day(1), DoneAt: &d4},
		{ID: 2, ProjectID: int64Ptr(1), Status: "done", Priority: 2, CreatedAt: day(1), DoneAt: &d3},
		{ID: 3, ProjectID: int64Ptr(1), Status: "done", Priority: 2, CreatedAt: day(2), DoneAt: &d3},
		{ID: 4, ProjectID: int64Ptr(1), Status: "done", Priority: 2, CreatedAt: day(1), DoneAt: &d4},
		{ID: 5, ProjectID: int64Ptr(1), Status: "in_progress", Priority: 2, CreatedAt: day(1)},
	})

	summaryPath, rows, err := engine.ComputeSummary(context.Background(), tasksPath, dir)
	require.NoError(t, err)

	// Four done tasks across three distinct (project, day) pairs.
	assert.Equal(t, int64(3), rows)

	summary := readParquetRows[summaryRow](t, summaryPath)
	require.Len(t, summary, 3)

	// Ordered by (project_id, done_date).
	assert.Equal(t, int64(1), summary[0].ProjectID)
	assert.Equal(t, doneDateOf(d3), summary[0].DoneDate)
	assert.Equal(t, int64(1), summary[1].ProjectID)
	assert.Equal(t, doneDateOf(d4), summary[1].DoneDate)
	assert.Equal(t, int64(2), summary[2].ProjectID)

	// Counts of done tasks survive the grouping.
	var total int64
	for _, row := range summary {
		total += row.TasksDone
	}
	assert.Equal(t, int64(4), total)

	// Project 1, done on day 3: lead times 2 and 1, mean 1.5.
	assert.Equal(t, 1.5, summary[0].AvgLeadTimeDays)
}

func TestComputeSummaryEmptyInput(t *testing.T) {
	dir := t.TempDir()
	engine := NewEngine(logger.NewLogger())

	tasksPath := writeTasksFile(t, dir, nil)

	summaryPath, rows, err := engine.ComputeSummary(context.Background(), tasksPath, dir)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	f, err := os.Open(summaryPath)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)

	pf, err := parquet.OpenFile(f, info.Size())
	require.NoError(t, err)
	assert.Equal(t, int64(0), pf.NumRows())

	fields := pf.Schema().Fields()
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name())
	}
	assert.Equal(t, []string{"project_id", "done_date", "tasks_done", "avg_lead_time_days"}, names)
}

func TestComputeSummaryEndToEndScenario(t *testing.T) {
	dir := t.TempDir()
	engine := NewEngine(logger.NewLogger())

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	done := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	tasksPath := writeTasksFile(t, dir, []TaskRow{
		{ID: 1, ProjectID: int64Ptr(1), Status: "done", Priority: 2, CreatedAt: created, DoneAt: &done},
		{ID: 2, ProjectID: int64Ptr(1), Status: "done", Priority: 2, CreatedAt: created, DoneAt: &done},
	})

	summaryPath, rows, err := engine.ComputeSummary(context.Background(), tasksPath, dir)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	summary := readParquetRows[summaryRow](t, summaryPath)
	require.Len(t, summary, 1)
	assert.Equal(t, int64(1), summary[0].ProjectID)
	assert.Equal(t, int64(2), summary[0].TasksDone)
	assert.Equal(t, 2.0, summary[0].AvgLeadTimeDays)
}
