package models

import "time"

type FollowUp struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CompanyID  uint `gorm:"index;not null" json:"company_id"`
	CustomerID uint `gorm:"index;not null" json:"customer_id"`

	FollowupDate time.Time `gorm:"index" json:"followup_date"`
	Status       string    `gorm:"size:50" json:"status"`
	Notes        string    `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
