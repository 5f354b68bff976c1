package task

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/audit"
	domain "github.com/ysw-crm/crm-backend/internal/domain/task"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type CompleteTask struct {
	db   *gorm.DB
	repo domain.Repository
	rec  *audit.Recorder
}

func NewCompleteTask(
	db *gorm.DB,
	repo domain.Repository,
	rec *audit.Recorder,
) *CompleteTask {
	return &CompleteTask{
		db:   db,
		repo: repo,
		rec:  rec,
	}
}

// Execute moves a task from assigned to completed. A second completion
// fails with task_already_completed and leaves no extra TaskLog row.
// The completion log records the actor who actually completed the task.
func (uc *CompleteTask) Execute(
	ctx context.Context,
	actor audit.Actor,
	taskID uint,
) (*models.TaskAssignment, error) {

	t, err := uc.repo.GetTaskInCompany(ctx, actor.CompanyID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("task_not_found")
		}
		return nil, err
	}

	// before-snapshot happens prior to any field mutation
	before := t.AuditSnapshot()

	if err := domain.Complete(t, time.Now()); err != nil {
		return nil, err
	}

	err = uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(t).Error; err != nil {
			return err
		}

		log := models.TaskLog{
			TaskID:      t.ID,
			Action:      models.TaskLogCompleted,
			PerformedBy: actor.UserID,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		id := t.ID
		return uc.rec.Record(tx, actor, "task_completed", "task", &id, before, t)
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
