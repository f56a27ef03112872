package main

import (
	"context"
	"encoding/json"
	stdlog "log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mhmdevan/workload-radar/internal/domain/report"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/migrations"
	"github.com/mhmdevan/workload-radar/pkg/broker"
	"github.com/mhmdevan/workload-radar/pkg/config"
	"github.com/mhmdevan/workload-radar/pkg/logger"
)

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

	if err := migrations.AutoMigrate(db, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	taskBroker, err := broker.NewTaskBroker(cfg.Redis.URL, cfg.Worker.Queue, cfg.Worker.ResultsTTL, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer taskBroker.Close()

	summaryJob := report.NewSummaryJob(db, log, nil)
	reportRepo := report.NewRepository(db)

	consumer := broker.NewConsumer(taskBroker, log)
	consumer.Register(report.JobGenerateProjectSummary, summaryJob.HandleTask)

	// A failed summary job leaves its report pending forever otherwise;
	// mark it failed so callers polling the record see the outcome.
	consumer.OnFailure(func(ctx context.Context, taskName string, args []interface{}, jobErr error) {
		if taskName != report.JobGenerateProjectSummary || len(args) != 1 {
			return
		}
		num, ok := args[0].(json.Number)
		if !ok {
			return
		}
		reportID, err := num.Int64()
		if err != nil {
			return
		}
		if err := reportRepo.UpdateStatus(ctx, reportID, report.StatusFailed); err != nil {
			log.Error("Failed to mark report as failed",
				zap.Int64("report_id", reportID),
				zap.Error(err))
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal("Worker stopped", zap.Error(err))
	}
	log.Info("Worker shut down")
}
