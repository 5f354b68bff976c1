package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/ysw-crm/crm-backend/internal/domain/assignment"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type AssignmentGormRepository struct {
	db *gorm.DB
}

func NewAssignmentGormRepository(db *gorm.DB) *AssignmentGormRepository {
	return &AssignmentGormRepository{db: db}
}

func (r *AssignmentGormRepository) GetUserWithRole(
	ctx context.Context,
	companyID uint,
	userID uint,
	role string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ? AND role = ?", userID, companyID, role).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AssignmentGormRepository) ListTeamLeaders(
	ctx context.Context,
	companyID uint,
) ([]models.User, error) {

	var leaders []models.User
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND role = ?", companyID, models.RoleTeamLeader).
		Order("id ASC").
		Find(&leaders).Error; err != nil {
		return nil, err
	}

	return leaders, nil
}

func (r *AssignmentGormRepository) ListSalesmenOfLeader(
	ctx context.Context,
	companyID uint,
	teamLeaderID uint,
) ([]models.User, error) {

	var salesmen []models.User
	if err := r.db.WithContext(ctx).
		Where(
			"company_id = ? AND role = ? AND assigned_team_leader = ?",
			companyID, models.RoleSalesman, teamLeaderID,
		).
		Order("id ASC").
		Find(&salesmen).Error; err != nil {
		return nil, err
	}

	return salesmen, nil
}

func (r *AssignmentGormRepository) ListCustomerNames(
	ctx context.Context,
	companyID uint,
	salesmanID uint,
) ([]string, error) {

	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("company_id = ? AND assigned_to = ?", companyID, salesmanID).
		Order("id ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}

	return names, nil
}

// Compile-time check
var _ domain.Repository = (*AssignmentGormRepository)(nil)
