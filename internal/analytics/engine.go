package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/mhmdevan/workload-radar/pkg/logger"
)

const SummaryFileName = "analytics_summary.parquet"

// summarySQL buckets done tasks per (project, completion day).
// lead_time_days is a whole-day difference; the fractional variant
// lives in the report summary job and is intentionally different.
const summarySQL = `
CREATE OR REPLACE TABLE analytics_summary AS
WITH done_tasks AS (
    SELECT
        project_id,
        CAST(created_at AS TIMESTAMP) AS created_at,
        CAST(done_at AS TIMESTAMP) AS done_at
    FROM tasks
    WHERE done_at IS NOT NULL
),
enriched AS (
    SELECT
        project_id,
        CAST(done_at AS DATE) AS done_date,
        date_diff('day', created_at, done_at) AS lead_time_days
    FROM done_tasks
)
SELECT
    project_id,
    done_date,
    COUNT(*) AS tasks_done,
    AVG(lead_time_days) AS avg_lead_time_days
FROM enriched
GROUP BY project_id, done_date
ORDER BY project_id, done_date;
`

// Engine computes grouped analytics over exported Parquet files using
// an ephemeral in-memory DuckDB session. No engine state survives
// between runs.
type Engine struct {
	log *logger.Logger
}

func NewEngine(log *logger.Logger) *Engine {
	return &Engine{log: log}
}

// ComputeSummary loads the tasks Parquet file, aggregates completions
// per (project_id, done_date) and writes analytics_summary.parquet
// into dir, overwriting any previous file. It returns the output path
// and the number of summary rows. Zero input rows produce a zero-row,
// well-typed output file.
func (e *Engine) ComputeSummary(ctx context.Context, tasksPath, dir string) (string, int64, error) {
	summaryPath := filepath.Join(dir, SummaryFileName)

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return "", 0, fmt.Errorf("failed to open duckdb session: %w", err)
	}
	defer db.Close()

	// Keep every statement on one connection: the session tables are
	// per-database but the deterministic ordering of the COPY below
	// depends on the CREATE TABLE it follows.
	conn, err := db.Conn(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to acquire duckdb connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx,
		"CREATE OR REPLACE TABLE tasks AS SELECT * FROM read_parquet(?);",
		tasksPath,
	); err != nil {
		return "", 0, fmt.Errorf("failed to load tasks parquet: %w", err)
	}

	if _, err := conn.ExecContext(ctx, summarySQL); err != nil {
		return "", 0, fmt.Errorf("failed to compute analytics summary: %w", err)
	}

	copyStmt := fmt.Sprintf("COPY analytics_summary TO '%s' (FORMAT PARQUET);", escapeSQLString(summaryPath))
	if _, err := conn.ExecContext(ctx, copyStmt); err != nil {
		return "", 0, fmt.Errorf("failed to write summary parquet: %w", err)
	}

	var rowCount int64
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM analytics_summary;").Scan(&rowCount); err != nil {
		return "", 0, fmt.Errorf("failed to count summary rows: %w", err)
	}

	e.log.Info("Analytics summary written",
		zap.String("path", summaryPath),
		zap.Int64("rows", rowCount))

	return summaryPath, rowCount, nil
}

// escapeSQLString doubles single quotes for embedding a path into a
// COPY statement, which does not accept bound parameters.
func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
