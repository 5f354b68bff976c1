package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleTeamLeader = "team_leader"
	RoleSalesman   = "salesman"
)

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CompanyID uint    `gorm:"index;not null" json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"size:20" json:"phone"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null" json:"role"`

	// only meaningful for salesmen; points at a team_leader in the same company
	AssignedTeamLeader *uint `gorm:"index" json:"assigned_team_leader"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuditSnapshot lists the persisted public fields of a user. The password
// hash stays out of the audit trail.
func (u *User) AuditSnapshot() map[string]any {
	return map[string]any{
		"id":                   u.ID,
		"company_id":           u.CompanyID,
		"full_name":            u.FullName,
		"email":                u.Email,
		"phone":                u.Phone,
		"role":                 u.Role,
		"assigned_team_leader": u.AssignedTeamLeader,
		"created_at":           u.CreatedAt,
		"updated_at":           u.UpdatedAt,
	}
}
