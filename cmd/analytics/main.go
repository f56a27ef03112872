package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"

	"go.uber.org/zap"

	"github.com/mhmdevan/workload-radar/internal/analytics"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
	"github.com/mhmdevan/workload-radar/pkg/config"
	"github.com/mhmdevan/workload-radar/pkg/logger"
)

// Runs the offline analytics pipeline once and prints the run report.
// Intended to be invoked from cron or a scheduler with no overlap
// between runs.
func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger()
	defer log.Sync()

	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	pipeline := analytics.NewPipeline(db, cfg, log)
	report, err := pipeline.Run(context.Background())
	if err != nil {
		log.Error("Offline analytics failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Println("Offline analytics completed:")
	fmt.Printf("  tasks_parquet: %s\n", report.TasksParquet)
	fmt.Printf("  task_events_parquet: %s\n", report.TaskEventsParquet)
	fmt.Printf("  summary_parquet: %s\n", report.SummaryParquet)
	fmt.Printf("  summary_row_count: %d\n", report.SummaryRowCount)
	fmt.Printf("  started_at_utc: %s\n", report.StartedAtUTC)
	fmt.Printf("  finished_at_utc: %s\n", report.FinishedAtUTC)
	fmt.Printf("  duration_seconds: %.2f\n", report.DurationSeconds)
}
