package task

import "github.com/ysw-crm/crm-backend/internal/httperr"

type Status string

const (
	StatusAssigned  Status = "assigned"
	StatusCompleted Status = "completed"
)

func InitialStatus() Status {
	return StatusAssigned
}

// CanComplete allows only the one-way assigned -> completed transition.
func CanComplete(current Status) error {
	if current != StatusAssigned {
		return httperr.ErrBusiness("task_already_completed")
	}
	return nil
}
