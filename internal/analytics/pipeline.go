package analytics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
	"github.com/mhmdevan/workload-radar/pkg/config"
	"github.com/mhmdevan/workload-radar/pkg/logger"
)

// ErrDataDirNotConfigured is returned before any I/O when
// analytics.data_dir is unset. This is a misconfiguration, not a
// retryable condition.
var ErrDataDirNotConfigured = errors.New("analytics data directory is not configured")

const timestampLayout = "2006-01-02T15:04:05.000000"

// RunReport describes one completed pipeline run.
type RunReport struct {
	TasksParquet      string  `json:"tasks_parquet"`
	TaskEventsParquet string  `json:"task_events_parquet"`
	SummaryParquet    string  `json:"summary_parquet"`
	SummaryRowCount   int64   `json:"summary_row_count"`
	StartedAtUTC      string  `json:"started_at_utc"`
	FinishedAtUTC     string  `json:"finished_at_utc"`
	DurationSeconds   float64 `json:"duration_seconds"`
}

// Pipeline sequences the Parquet exports and the summary aggregation.
// Failures propagate unhandled to the caller; rerunning the whole
// pipeline is the recovery path, which full-snapshot semantics keep
// idempotent at the file level.
type Pipeline struct {
	exporter *Exporter
	engine   *Engine
	cfg      *config.Config
	log      *logger.Logger
}

func NewPipeline(db *connection.Database, cfg *config.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{
		exporter: NewExporter(db, log),
		engine:   NewEngine(log),
		cfg:      cfg,
		log:      log,
	}
}

// Run executes one offline analytics pass: tasks export, task-events
// export, then aggregation over the tasks file written in this same
// run.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	dir := p.cfg.Analytics.DataDir
	if dir == "" {
		return nil, ErrDataDirNotConfigured
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create analytics directory: %w", err)
	}

	startedAt := time.Now().UTC()
	p.log.Info("Starting offline analytics run",
		zap.String("data_dir", dir),
		zap.Time("started_at", startedAt))

	tasksPath, taskRows, err := p.exporter.ExportTasks(ctx, dir)
	if err != nil {
		return nil, err
	}

	eventsPath, _, err := p.exporter.ExportTaskEvents(ctx, dir)
	if err != nil {
		return nil, err
	}

	summaryPath, summaryRows, err := p.engine.ComputeSummary(ctx, tasksPath, dir)
	if err != nil {
		return nil, err
	}

	finishedAt := time.Now().UTC()
	duration := finishedAt.Sub(startedAt).Seconds()

	report := &RunReport{
		TasksParquet:      tasksPath,
		TaskEventsParquet: eventsPath,
		SummaryParquet:    summaryPath,
		SummaryRowCount:   summaryRows,
		StartedAtUTC:      startedAt.Format(timestampLayout),
		FinishedAtUTC:     finishedAt.Format(timestampLayout),
		DurationSeconds:   duration,
	}

	p.log.Info("Offline analytics run completed",
		zap.Int("task_rows", taskRows),
		zap.Int64("summary_rows", summaryRows),
		zap.Float64("duration_seconds", duration))

	return report, nil
}
