package models

import "time"

type Conversation struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CompanyID  uint `gorm:"index;not null" json:"company_id"`
	CustomerID uint `gorm:"index;not null" json:"customer_id"`

	Channel   string `gorm:"size:50;not null" json:"channel"`
	Direction string `gorm:"size:20;not null" json:"direction"`
	Message   string `gorm:"type:text" json:"message"`

	IsRead        bool   `gorm:"default:false" json:"is_read"`
	AttachmentURL string `gorm:"size:255" json:"attachment_url"`

	CreatedBy *uint `json:"created_by"`

	CreatedAt time.Time `json:"timestamp"`
}
