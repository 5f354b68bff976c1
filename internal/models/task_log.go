package models

import "time"

const (
	TaskLogCreated   = "created"
	TaskLogCompleted = "completed"
)

// TaskLog rows are append-only, one per task transition.
type TaskLog struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	TaskID uint `gorm:"index;not null" json:"task_id"`

	Action      string `gorm:"size:20;not null" json:"action"`
	PerformedBy uint   `gorm:"not null" json:"performed_by"`

	CreatedAt time.Time `json:"created_at"`
}
