package analytics

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhmdevan/workload-radar/internal/domain/task"
	"github.com/mhmdevan/workload-radar/pkg/config"
	"github.com/mhmdevan/workload-radar/pkg/logger"
)

func TestPipelineFailsFastWithoutDataDir(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{}

	pipeline := NewPipeline(db, cfg, logger.NewLogger())
	report, err := pipeline.Run(context.Background())

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrDataDirNotConfigured)
}

func TestPipelineProducesAllThreeFiles(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	cfg := &config.Config{Analytics: config.AnalyticsConfig{DataDir: dir}}

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	done := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	seedTask(t, db, 1, task.StatusDone, created, &done)
	seedTask(t, db, 1, task.StatusTodo, created, nil)

	pipeline := NewPipeline(db, cfg, logger.NewLogger())
	report, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	for _, path := range []string{report.TasksParquet, report.TaskEventsParquet, report.SummaryParquet} {
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Greater(t, info.Size(), int64(0))
	}

	assert.Equal(t, int64(1), report.SummaryRowCount)
	assert.NotEmpty(t, report.StartedAtUTC)
	assert.NotEmpty(t, report.FinishedAtUTC)
	assert.GreaterOrEqual(t, report.DurationSeconds, 0.0)

	started, parseErr := time.Parse(timestampLayout, report.StartedAtUTC)
	require.NoError(t, parseErr)
	finished, parseErr := time.Parse(timestampLayout, report.FinishedAtUTC)
	require.NoError(t, parseErr)
	assert.False(t, finished.Before(started))
}

func TestPipelineCreatesMissingDirectory(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir() + "/nested/analytics"
	cfg := &config.Config{Analytics: config.AnalyticsConfig{DataDir: dir}}

	pipeline := NewPipeline(db, cfg, logger.NewLogger())
	_, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPipelineRerunIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	cfg := &config.Config{Analytics: config.AnalyticsConfig{DataDir: dir}}

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	done := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	seedTask(t, db, 1, task.StatusDone, created, &done)

	pipeline := NewPipeline(db, cfg, logger.NewLogger())

	first, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	firstSummary := readParquetRows[summaryRow](t, first.SummaryParquet)

	second, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	secondSummary := readParquetRows[summaryRow](t, second.SummaryParquet)

	assert.Equal(t, first.SummaryRowCount, second.SummaryRowCount)
	assert.Equal(t, firstSummary, secondSummary)
}
