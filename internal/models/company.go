package models

import "time"

type Company struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CompanyName string `gorm:"size:100;not null" json:"company_name"`
	CompanySize string `gorm:"size:50" json:"company_size"`
	Industry    string `gorm:"size:100" json:"industry"`
	Location    string `gorm:"size:100" json:"location"`
	CrmType     string `gorm:"size:50;not null" json:"crm_type"`

	// JSON array of enabled feature keys, whole-set replaced on update
	SelectedFeatures string `gorm:"type:text" json:"selected_features"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
