package task

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/audit"
	domain "github.com/ysw-crm/crm-backend/internal/domain/task"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type CreateTask struct {
	db   *gorm.DB
	repo domain.Repository
	rec  *audit.Recorder
}

func NewCreateTask(
	db *gorm.DB,
	repo domain.Repository,
	rec *audit.Recorder,
) *CreateTask {
	return &CreateTask{
		db:   db,
		repo: repo,
		rec:  rec,
	}
}

type CreateInput struct {
	Title       string
	Description string
	AssignedTo  uint
	DueDate     time.Time
	Priority    string
}

// Execute creates a task in status assigned, appends its creation TaskLog
// and the audit entry in the same transaction.
func (uc *CreateTask) Execute(
	ctx context.Context,
	actor audit.Actor,
	in CreateInput,
) (*models.TaskAssignment, error) {

	if _, err := uc.repo.GetUserInCompany(ctx, actor.CompanyID, in.AssignedTo); err != nil {
		return nil, httperr.ErrBusiness("assignee_not_found")
	}

	var created models.TaskAssignment

	err := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t := models.TaskAssignment{
			CompanyID:   actor.CompanyID,
			Title:       in.Title,
			Description: in.Description,
			AssignedTo:  in.AssignedTo,
			AssignedBy:  actor.UserID,
			DueDate:     in.DueDate,
			Priority:    in.Priority,
			Status:      string(domain.InitialStatus()),
		}

		if err := tx.Create(&t).Error; err != nil {
			return err
		}

		log := models.TaskLog{
			TaskID:      t.ID,
			Action:      models.TaskLogCreated,
			PerformedBy: actor.UserID,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		id := t.ID
		if err := uc.rec.Record(tx, actor, "task_created", "task", &id, nil, &t); err != nil {
			return err
		}

		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}
