package report

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
)

var ErrReportNotFound = errors.New("report not found")

// Repository defines the interface for report persistence operations
type Repository interface {
	Create(ctx context.Context, report *Report) error
	FindByID(ctx context.Context, id int64) (*Report, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, report *Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Report, error) {
	var rep Report
	result := r.db.WithContext(ctx).First(&rep, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, result.Error
	}
	return &rep, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	return r.db.WithContext(ctx).Model(&Report{}).
		Where("id = ?", id).
		Update("status", status).Error
}
