package models

import "time"

type Interaction struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CompanyID  uint `gorm:"index;not null" json:"company_id"`
	CustomerID uint `gorm:"index;not null" json:"customer_id"`

	InteractionType string     `gorm:"size:50;not null" json:"interaction_type"`
	Notes           string     `gorm:"size:255" json:"notes"`
	Outcome         string     `gorm:"size:100" json:"outcome"`
	NextActionDate  *time.Time `json:"next_action_date"`

	InteractionDate time.Time `json:"interaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}
