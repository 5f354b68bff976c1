package models

import "time"

// AuditLog rows are append-only: written once per mutating operation,
// never updated or deleted.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID uint   `gorm:"index;not null" json:"company_id"`
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	Role      string `gorm:"size:20" json:"role"`

	Action       string `gorm:"size:100;not null" json:"action"`
	ResourceType string `gorm:"size:50" json:"resource_type"`
	ResourceID   *uint  `json:"resource_id"`

	BeforeData string `gorm:"type:text" json:"before_data"`
	AfterData  string `gorm:"type:text" json:"after_data"`

	IPAddress  string `gorm:"size:45" json:"ip_address"`
	DeviceInfo string `gorm:"size:255" json:"device_info"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
