package task

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Statuses lists every known task status in a stable order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Task priorities: 1 high, 2 normal, 3 low.
const (
	PriorityHigh   = 1
	PriorityNormal = 2
	PriorityLow    = 3
)

// Task represents a work task belonging to a project. DoneAt is set
// exactly once, when the status first transitions to done.
type Task struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID   *int64     `json:"project_id" gorm:"index:idx_task_project"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      Status     `json:"status" gorm:"not null;default:'todo';index:idx_task_status"`
	Priority    int        `json:"priority" gorm:"not null;default:2"`
	AssigneeID  *int64     `json:"assignee_id,omitempty" gorm:"index:idx_task_assignee"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null"`
	DoneAt      *time.Time `json:"done_at,omitempty"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// TaskEvent is an append-only audit record generated when a task
// changes state or receives updates.
type TaskEvent struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskID    *int64         `json:"task_id" gorm:"index:idx_task_event_task"`
	Type      string         `json:"type" gorm:"not null"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at" gorm:"not null"`
}

// TableName specifies the table name for the TaskEvent model
func (TaskEvent) TableName() string {
	return "task_events"
}
