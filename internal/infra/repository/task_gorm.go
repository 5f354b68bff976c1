package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/ysw-crm/crm-backend/internal/domain/task"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type TaskGormRepository struct {
	db *gorm.DB
}

func NewTaskGormRepository(db *gorm.DB) *TaskGormRepository {
	return &TaskGormRepository{db: db}
}

func (r *TaskGormRepository) GetUserInCompany(
	ctx context.Context,
	companyID uint,
	userID uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", userID, companyID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *TaskGormRepository) GetTaskInCompany(
	ctx context.Context,
	companyID uint,
	taskID uint,
) (*models.TaskAssignment, error) {

	var t models.TaskAssignment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", taskID, companyID).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskGormRepository) ListTasks(
	ctx context.Context,
	companyID uint,
	assignedTo *uint,
	status *string,
) ([]models.TaskAssignment, error) {

	q := r.db.WithContext(ctx).
		Where("company_id = ?", companyID)

	if assignedTo != nil {
		q = q.Where("assigned_to = ?", *assignedTo)
	}

	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var tasks []models.TaskAssignment
	if err := q.
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskGormRepository) ListTaskLogs(
	ctx context.Context,
	taskID uint,
) ([]models.TaskLog, error) {

	var logs []models.TaskLog
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}

// Compile-time check
var _ domain.Repository = (*TaskGormRepository)(nil)
