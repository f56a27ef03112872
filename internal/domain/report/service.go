package report

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/mhmdevan/workload-radar/internal/domain/project"
	"github.com/mhmdevan/workload-radar/pkg/broker"
	"github.com/mhmdevan/workload-radar/pkg/logger"
)

// JobGenerateProjectSummary is the queue task name consumed by the
// report worker.
const JobGenerateProjectSummary = "reports.generate_project_summary"

// Service defines business logic for creating and reading reports
type Service interface {
	RequestProjectSummary(ctx context.Context, projectID int64, params map[string]interface{}) (*Report, error)
	GetReport(ctx context.Context, id int64) (*Report, error)
}

type service struct {
	repo        Repository
	projectRepo project.Repository
	queue       broker.Queue
	log         *logger.Logger
}

func NewService(repo Repository, projectRepo project.Repository, queue broker.Queue, log *logger.Logger) Service {
	return &service{
		repo:        repo,
		projectRepo: projectRepo,
		queue:       queue,
		log:         log,
	}
}

// RequestProjectSummary creates a pending report and enqueues its
// generation job. The caller gets the pending record back immediately;
// the result is observable only by polling the report.
func (s *service) RequestProjectSummary(ctx context.Context, projectID int64, params map[string]interface{}) (*Report, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if params == nil {
		params = map[string]interface{}{}
	}
	rawParams, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		ProjectID: p.ID,
		Type:      TypeDailySummary,
		Params:    rawParams,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}

	taskID, err := s.queue.Enqueue(ctx, JobGenerateProjectSummary, rep.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Project summary report requested",
		zap.Int64("report_id", rep.ID),
		zap.Int64("project_id", p.ID),
		zap.String("queue_task_id", taskID))

	return rep, nil
}

func (s *service) GetReport(ctx context.Context, id int64) (*Report, error) {
	return s.repo.FindByID(ctx, id)
}
