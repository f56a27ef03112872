package project

import (
	"time"
)

// Project represents a logical work container owned by a user
type Project struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null"`
	OwnerID   int64     `json:"owner_id" gorm:"not null;index:idx_project_owner"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
