package task

import (
	"context"

	domain "github.com/ysw-crm/crm-backend/internal/domain/task"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type ListTasks struct {
	repo domain.Repository
}

func NewListTasks(repo domain.Repository) *ListTasks {
	return &ListTasks{repo: repo}
}

func (uc *ListTasks) Execute(
	ctx context.Context,
	companyID uint,
	assignedTo *uint,
	status *string,
) ([]models.TaskAssignment, error) {
	return uc.repo.ListTasks(ctx, companyID, assignedTo, status)
}

// Logs returns a task's transition trail, oldest first. The task must
// belong to the caller's company.
func (uc *ListTasks) Logs(
	ctx context.Context,
	companyID uint,
	taskID uint,
) ([]models.TaskLog, error) {

	if _, err := uc.repo.GetTaskInCompany(ctx, companyID, taskID); err != nil {
		return nil, httperr.ErrBusiness("task_not_found")
	}

	return uc.repo.ListTaskLogs(ctx, taskID)
}
