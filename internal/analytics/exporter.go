package analytics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mhmdevan/workload-radar/internal/domain/task"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
	"github.com/mhmdevan/workload-radar/pkg/logger"
)

const (
	TasksFileName      = "tasks.parquet"
	TaskEventsFileName = "task_events.parquet"
)

// TaskRow is the flattened, analytics-friendly projection of a task.
// Foreign relations are reduced to their ids. The struct doubles as the
// Parquet schema, so an empty export still carries the full column set.
type TaskRow struct {
	ID         int64      `parquet:"id"`
	ProjectID  *int64     `parquet:"project_id,optional"`
	AssigneeID *int64     `parquet:"assignee_id,optional"`
	Status     string     `parquet:"status"`
	Priority   int64      `parquet:"priority"`
	CreatedAt  time.Time  `parquet:"created_at,timestamp"`
	DoneAt     *time.Time `parquet:"done_at,optional,timestamp"`
}

// TaskEventRow is the flattened projection of a task event.
type TaskEventRow struct {
	ID        int64     `parquet:"id"`
	TaskID    *int64    `parquet:"task_id,optional"`
	Type      string    `parquet:"type"`
	Payload   *string   `parquet:"payload,optional"`
	CreatedAt time.Time `parquet:"created_at,timestamp"`
}

// Exporter materializes relational tables into Parquet snapshot files.
// Each run is a full snapshot that overwrites any previous file.
type Exporter struct {
	db  *connection.Database
	log *logger.Logger
}

func NewExporter(db *connection.Database, log *logger.Logger) *Exporter {
	return &Exporter{db: db, log: log}
}

// ExportTasks writes the tasks table to tasks.parquet in dir and
// returns the file path and the exported row count.
func (e *Exporter) ExportTasks(ctx context.Context, dir string) (string, int, error) {
	var tasks []task.Task
	// One read transaction so the snapshot is internally consistent.
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Order("id").Find(&tasks).Error
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to read tasks: %w", err)
	}

	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, TaskRow{
			ID:         t.ID,
			ProjectID:  t.ProjectID,
			AssigneeID: t.AssigneeID,
			Status:     string(t.Status),
			Priority:   int64(t.Priority),
			CreatedAt:  t.CreatedAt,
			DoneAt:     t.DoneAt,
		})
	}

	path := filepath.Join(dir, TasksFileName)
	if err := writeParquet(path, rows); err != nil {
		return "", 0, err
	}

	e.log.Info("Exported tasks to Parquet",
		zap.Int("rows", len(rows)),
		zap.String("path", path))
	return path, len(rows), nil
}

// ExportTaskEvents writes the task_events table to task_events.parquet
// in dir. The export is independent of the tasks export; it exists so
// future event-based metrics can plug in without reshaping the
// pipeline contract.
func (e *Exporter) ExportTaskEvents(ctx context.Context, dir string) (string, int, error) {
	var events []task.TaskEvent
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Order("id").Find(&events).Error
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to read task events: %w", err)
	}

	rows := make([]TaskEventRow, 0, len(events))
	for _, ev := range events {
		var payload *string
		if len(ev.Payload) > 0 {
			s := string(ev.Payload)
			payload = &s
		}
		rows = append(rows, TaskEventRow{
			ID:        ev.ID,
			TaskID:    ev.TaskID,
			Type:      ev.Type,
			Payload:   payload,
			CreatedAt: ev.CreatedAt,
		})
	}

	path := filepath.Join(dir, TaskEventsFileName)
	if err := writeParquet(path, rows); err != nil {
		return "", 0, err
	}

	e.log.Info("Exported task events to Parquet",
		zap.Int("rows", len(rows)),
		zap.String("path", path))
	return path, len(rows), nil
}

// writeParquet overwrites path with the given rows. A nil or empty
// slice still produces a valid zero-row file with the schema derived
// from T.
func writeParquet[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	writer := parquet.NewGenericWriter[T](f)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := writer.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return f.Close()
}
