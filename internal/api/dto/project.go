package dto

import (
	"github.com/mhmdevan/workload-radar/internal/domain/project"
)

// CreateProjectRequest is the payload for creating a project
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// ProjectResponse is the wire representation of a project
type ProjectResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	OwnerID   int64  `json:"owner_id"`
	CreatedAt string `json:"created_at"`
}

// ProjectToResponse maps a project model to its wire representation
func ProjectToResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt.UTC().Format(timestampLayout),
	}
}

// ProjectsToResponse maps a slice of project models
func ProjectsToResponse(projects []project.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, ProjectToResponse(&projects[i]))
	}
	return out
}
