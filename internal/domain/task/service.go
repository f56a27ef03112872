package task

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/mhmdevan/workload-radar/internal/domain/project"
	"github.com/mhmdevan/workload-radar/internal/domain/user"
)

// Service defines business logic for tasks and task events
type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasksForProject(ctx context.Context, projectID int64, limit, offset int) ([]Task, error)
	UpdateStatus(ctx context.Context, taskID int64, newStatus Status) (*Task, error)
}

type CreateTaskInput struct {
	ProjectID   int64
	Title       string
	Description string
	AssigneeID  *int64
}

type service struct {
	repo        Repository
	projectRepo project.Repository
	userRepo    user.Repository
	now         func() time.Time
}

func NewService(repo Repository, projectRepo project.Repository, userRepo user.Repository) Service {
	return &service{
		repo:        repo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidInput
	}

	if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(ctx, *input.AssigneeID); err != nil {
			return nil, err
		}
	}

	projectID := input.ProjectID
	t := &Task{
		ProjectID:   &projectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      StatusTodo,
		Priority:    PriorityNormal,
		AssigneeID:  input.AssigneeID,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	if err := s.addEvent(ctx, t.ID, "created", map[string]interface{}{"title": t.Title}); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *service) GetTask(ctx context.Context, id int64) (*Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListTasksForProject(ctx context.Context, projectID int64, limit, offset int) ([]Task, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID, limit, offset)
}

// UpdateStatus transitions a task to a new status. The first transition
// to done stamps DoneAt; it is never overwritten afterwards. A
// same-status update is a no-op and records no event.
func (s *service) UpdateStatus(ctx context.Context, taskID int64, newStatus Status) (*Task, error) {
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	oldStatus := t.Status
	if oldStatus == newStatus {
		return t, nil
	}

	t.Status = newStatus
	if newStatus == StatusDone && t.DoneAt == nil {
		doneAt := s.now()
		t.DoneAt = &doneAt
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err := s.addEvent(ctx, t.ID, "status_change", map[string]interface{}{
		"from": string(oldStatus),
		"to":   string(newStatus),
	}); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *service) addEvent(ctx context.Context, taskID int64, eventType string, payload map[string]interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.repo.AddEvent(ctx, &TaskEvent{
		TaskID:    &taskID,
		Type:      eventType,
		Payload:   raw,
		CreatedAt: s.now(),
	})
}
