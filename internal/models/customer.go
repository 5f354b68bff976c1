package models

import "time"

type Customer struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index;not null" json:"company_id"`

	Name          string `gorm:"size:100;not null" json:"name"`
	CompanyName   string `gorm:"size:100" json:"company_name"`
	ContactNumber string `gorm:"size:20" json:"contact_number"`
	Email         string `gorm:"size:100" json:"email"`
	Notes         string `gorm:"size:255" json:"notes"`

	PipelineStage string `gorm:"size:50;index" json:"pipeline_stage"`
	LeadStatus    string `gorm:"size:50;index" json:"lead_status"`

	// nil until a salesman takes ownership
	AssignedTo *uint `gorm:"index" json:"assigned_to"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) AuditSnapshot() map[string]any {
	return map[string]any{
		"id":             c.ID,
		"company_id":     c.CompanyID,
		"name":           c.Name,
		"company_name":   c.CompanyName,
		"contact_number": c.ContactNumber,
		"email":          c.Email,
		"notes":          c.Notes,
		"pipeline_stage": c.PipelineStage,
		"lead_status":    c.LeadStatus,
		"assigned_to":    c.AssignedTo,
		"created_at":     c.CreatedAt,
		"updated_at":     c.UpdatedAt,
	}
}
