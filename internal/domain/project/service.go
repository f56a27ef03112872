package project

import (
	"context"
	"strings"
	"time"

	"github.com/mhmdevan/workload-radar/internal/domain/user"
)

// Service defines business logic for working with projects
type Service interface {
	CreateProject(ctx context.Context, ownerID int64, name string) (*Project, error)
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjectsForOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Project, error)
}

type service struct {
	repo     Repository
	userRepo user.Repository
}

func NewService(repo Repository, userRepo user.Repository) Service {
	return &service{repo: repo, userRepo: userRepo}
}

func (s *service) CreateProject(ctx context.Context, ownerID int64, name string) (*Project, error) {
	if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}

	p := &Project{
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProject(ctx context.Context, id int64) (*Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListProjectsForOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Project, error) {
	if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListForOwner(ctx, ownerID, limit, offset)
}
