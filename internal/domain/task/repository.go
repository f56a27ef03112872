package task

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid task status")
)

// Repository defines the interface for task persistence operations
type Repository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id int64) (*Task, error)
	ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	AddEvent(ctx context.Context, event *TaskEvent) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Task, error) {
	var t Task
	result := r.db.WithContext(ctx).First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &t, nil
}

func (r *repository) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) Update(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *repository) AddEvent(ctx context.Context, event *TaskEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}
