package models

import "time"

type TaskAssignment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index;not null" json:"company_id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:255" json:"description"`

	AssignedTo uint `gorm:"index;not null" json:"assigned_to"`
	AssignedBy uint `gorm:"not null" json:"assigned_by"`

	DueDate  time.Time `json:"due_date"`
	Priority string    `gorm:"size:20" json:"priority"`

	Status      string     `gorm:"size:20;default:'assigned'" json:"status"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *TaskAssignment) AuditSnapshot() map[string]any {
	return map[string]any{
		"id":           t.ID,
		"company_id":   t.CompanyID,
		"title":        t.Title,
		"description":  t.Description,
		"assigned_to":  t.AssignedTo,
		"assigned_by":  t.AssignedBy,
		"due_date":     t.DueDate,
		"priority":     t.Priority,
		"status":       t.Status,
		"completed_at": t.CompletedAt,
		"created_at":   t.CreatedAt,
		"updated_at":   t.UpdatedAt,
	}
}
