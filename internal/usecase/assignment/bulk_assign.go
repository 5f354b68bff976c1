package assignment

import (
	"context"

	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/audit"
	domain "github.com/ysw-crm/crm-backend/internal/domain/assignment"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type BulkAssignCustomers struct {
	db   *gorm.DB
	repo domain.Repository
	rec  *audit.Recorder
}

func NewBulkAssignCustomers(
	db *gorm.DB,
	repo domain.Repository,
	rec *audit.Recorder,
) *BulkAssignCustomers {
	return &BulkAssignCustomers{
		db:   db,
		repo: repo,
		rec:  rec,
	}
}

type BulkAssignInput struct {
	SalesmanID    uint
	PipelineStage *string
	LeadStatus    *string
}

// Execute hands every currently unassigned customer matching the filters
// to one salesman. The update runs as a single set-based statement, so the
// returned count and the mutated rows come from the same snapshot and
// already-assigned customers are never touched.
func (uc *BulkAssignCustomers) Execute(
	ctx context.Context,
	actor audit.Actor,
	in BulkAssignInput,
) (int64, error) {

	if _, err := uc.repo.GetUserWithRole(ctx, actor.CompanyID, in.SalesmanID, models.RoleSalesman); err != nil {
		return 0, httperr.ErrBusiness("salesman_not_found")
	}

	var affected int64

	err := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Customer{}).
			Where("company_id = ? AND assigned_to IS NULL", actor.CompanyID)

		if in.PipelineStage != nil {
			q = q.Where("pipeline_stage = ?", *in.PipelineStage)
		}

		if in.LeadStatus != nil {
			q = q.Where("lead_status = ?", *in.LeadStatus)
		}

		res := q.Update("assigned_to", in.SalesmanID)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected

		return uc.rec.Record(
			tx,
			actor,
			"customers_bulk_assigned",
			"customer",
			nil,
			map[string]any{
				"unassigned_count": affected,
				"pipeline_stage":   in.PipelineStage,
				"lead_status":      in.LeadStatus,
			},
			map[string]any{
				"assigned_count": affected,
				"assigned_to":    in.SalesmanID,
			},
		)
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}
