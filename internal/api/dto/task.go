package dto

import (
	"github.com/mhmdevan/workload-radar/internal/domain/task"
)

// CreateTaskRequest is the payload for creating a task under a project
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	AssigneeID  *int64 `json:"assignee_id,omitempty"`
}

// UpdateTaskStatusRequest is the payload for a status transition
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TaskResponse is the wire representation of a task
type TaskResponse struct {
	ID          int64   `json:"id"`
	ProjectID   *int64  `json:"project_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    int     `json:"priority"`
	AssigneeID  *int64  `json:"assignee_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
	DoneAt      *string `json:"done_at,omitempty"`
}

// TaskToResponse maps a task model to its wire representation
func TaskToResponse(t *task.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    t.Priority,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt.UTC().Format(timestampLayout),
	}
	if t.DoneAt != nil {
		doneAt := t.DoneAt.UTC().Format(timestampLayout)
		resp.DoneAt = &doneAt
	}
	return resp
}

// TasksToResponse maps a slice of task models
func TasksToResponse(tasks []task.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskToResponse(&tasks[i]))
	}
	return out
}
