package task

import (
	"context"

	"github.com/ysw-crm/crm-backend/internal/models"
)

type Repository interface {
	GetUserInCompany(
		ctx context.Context,
		companyID uint,
		userID uint,
	) (*models.User, error)

	GetTaskInCompany(
		ctx context.Context,
		companyID uint,
		taskID uint,
	) (*models.TaskAssignment, error)

	ListTasks(
		ctx context.Context,
		companyID uint,
		assignedTo *uint,
		status *string,
	) ([]models.TaskAssignment, error)

	ListTaskLogs(
		ctx context.Context,
		taskID uint,
	) ([]models.TaskLog, error)
}
