package project

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// Repository defines the interface for project persistence operations
type Repository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id int64) (*Project, error)
	ListForOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Project, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, project *Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Project, error) {
	var p Project
	result := r.db.WithContext(ctx).First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *repository) ListForOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Project, error) {
	var projects []Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error
	return projects, err
}
