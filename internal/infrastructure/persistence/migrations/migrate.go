package migrations

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mhmdevan/workload-radar/internal/domain/project"
	"github.com/mhmdevan/workload-radar/internal/domain/report"
	"github.com/mhmdevan/workload-radar/internal/domain/task"
	"github.com/mhmdevan/workload-radar/internal/domain/user"
	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
	"github.com/mhmdevan/workload-radar/pkg/logger"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *connection.Database, log *logger.Logger) error {
	log.Info("Starting automatic database migration")

	models := []interface{}{
		&user.User{},
		&project.Project{},
		&task.Task{},
		&task.TaskEvent{},
		&report.Report{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Error("Database migration failed", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migration completed")
	return nil
}
