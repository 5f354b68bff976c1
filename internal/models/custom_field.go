package models

import "time"

type CustomField struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index;not null" json:"company_id"`

	FieldName  string `gorm:"size:100;not null" json:"field_name"`
	FieldType  string `gorm:"size:50;not null" json:"field_type"`
	IsRequired bool   `gorm:"default:false" json:"is_required"`

	CreatedAt time.Time `json:"created_at"`
}

type CustomerCustomValue struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"index;not null" json:"customer_id"`
	FieldID    uint `gorm:"index;not null" json:"field_id"`

	Value string `gorm:"size:255" json:"value"`

	CreatedAt time.Time `json:"created_at"`
}
