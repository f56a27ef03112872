package analytics

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhmdevan/workload-radar/internal/domain/task"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/migrations"
	"github.com/mhmdevan/workload-radar/pkg/logger"
)

func newTestDB(t *testing.T) *connection.Database {
	t.Helper()
	db, err := connection.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db, logger.NewLogger()))
	return db
}

func readParquetRows[T any](t *testing.T, path string) []T {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	reader := parquet.NewGenericReader[T](f)
	defer reader.Close()

	rows := make([]T, 0)
	buf := make([]T, 8)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if err != nil {
			break
		}
	}
	return rows
}

func int64Ptr(v int64) *int64 { return &v }

func seedTask(t *testing.T, db *connection.Database, projectID int64, status task.Status, createdAt time.Time, doneAt *time.Time) task.Task {
	t.Helper()
	tk := task.Task{
		ProjectID: &projectID,
		Title:     "test task",
		Status:    status,
		Priority:  task.PriorityNormal,
		CreatedAt: createdAt,
		DoneAt:    doneAt,
	}
	require.NoError(t, db.Create(&tk).Error)
	return tk
}

func TestExportTasksSnapshot(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	exporter := NewExporter(db, logger.NewLogger())

	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	done := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	seedTask(t, db, 1, task.StatusDone, created, &done)
	seedTask(t, db, 1, task.StatusTodo, created, nil)

	path, rows, err := exporter.ExportTasks(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	exported := readParquetRows[TaskRow](t, path)
	require.Len(t, exported, 2)

	assert.Equal(t, "done", exported[0].Status)
	assert.Equal(t, int64Ptr(1), exported[0].ProjectID)
	require.NotNil(t, exported[0].DoneAt)
	assert.True(t, exported[0].DoneAt.Equal(done))
	assert.True(t, exported[0].CreatedAt.Equal(created))

	assert.Equal(t, "todo", exported[1].Status)
	assert.Nil(t, exported[1].DoneAt)
}

func TestExportTasksEmptyTableStillTyped(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	exporter := NewExporter(db, logger.NewLogger())

	path, rows, err := exporter.ExportTasks(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)

	pf, err := parquet.OpenFile(f, info.Size())
	require.NoError(t, err)
	assert.Equal(t, int64(0), pf.NumRows())

	// The schema must match the non-empty case so downstream consumers
	// never see a column-set mismatch.
	fields := pf.Schema().Fields()
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name())
	}
	assert.Equal(t, []string{"id", "project_id", "assignee_id", "status", "priority", "created_at", "done_at"}, names)
}

func TestExportTaskEvents(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	exporter := NewExporter(db, logger.NewLogger())

	taskID := int64(7)
	event := task.TaskEvent{
		TaskID:    &taskID,
		Type:      "status_change",
		Payload:   []byte(`{"from":"todo","to":"done"}`),
		CreatedAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&event).Error)

	noPayload := task.TaskEvent{
		TaskID:    &taskID,
		Type:      "created",
		CreatedAt: time.Date(2024, 2, 1, 11, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&noPayload).Error)

	path, rows, err := exporter.ExportTaskEvents(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	exported := readParquetRows[TaskEventRow](t, path)
	require.Len(t, exported, 2)
	assert.Equal(t, "status_change", exported[0].Type)
	require.NotNil(t, exported[0].Payload)
	assert.JSONEq(t, `{"from":"todo","to":"done"}`, *exported[0].Payload)
	assert.Nil(t, exported[1].Payload)
}

func TestExportOverwritesPreviousSnapshot(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	exporter := NewExporter(db, logger.NewLogger())

	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	seedTask(t, db, 1, task.StatusTodo, created, nil)

	path, rows, err := exporter.ExportTasks(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	seedTask(t, db, 1, task.StatusTodo, created, nil)

	path2, rows2, err := exporter.ExportTasks(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, path, path2)
	assert.Equal(t, 2, rows2)

	exported := readParquetRows[TaskRow](t, path2)
	assert.Len(t, exported, 2)
}
