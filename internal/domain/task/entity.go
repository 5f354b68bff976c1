package task

import (
	"time"

	"github.com/ysw-crm/crm-backend/internal/models"
)

func Complete(t *models.TaskAssignment, now time.Time) error {
	if err := CanComplete(Status(t.Status)); err != nil {
		return err
	}

	t.Status = string(StatusCompleted)
	t.CompletedAt = &now
	return nil
}
