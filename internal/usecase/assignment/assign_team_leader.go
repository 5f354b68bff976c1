package assignment

import (
	"context"

	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/audit"
	domain "github.com/ysw-crm/crm-backend/internal/domain/assignment"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type AssignTeamLeader struct {
	db   *gorm.DB
	repo domain.Repository
	rec  *audit.Recorder
}

func NewAssignTeamLeader(
	db *gorm.DB,
	repo domain.Repository,
	rec *audit.Recorder,
) *AssignTeamLeader {
	return &AssignTeamLeader{
		db:   db,
		repo: repo,
		rec:  rec,
	}
}

// Execute points a salesman at a team leader. Both must resolve with the
// right role inside the actor's company; the previous leader reference is
// overwritten (single parent).
func (uc *AssignTeamLeader) Execute(
	ctx context.Context,
	actor audit.Actor,
	salesmanID uint,
	teamLeaderID uint,
) (*models.User, error) {

	salesman, err := uc.repo.GetUserWithRole(ctx, actor.CompanyID, salesmanID, models.RoleSalesman)
	if err != nil {
		return nil, httperr.ErrBusiness("salesman_not_found")
	}

	if _, err := uc.repo.GetUserWithRole(ctx, actor.CompanyID, teamLeaderID, models.RoleTeamLeader); err != nil {
		return nil, httperr.ErrBusiness("team_leader_not_found")
	}

	before := salesman.AuditSnapshot()
	salesman.AssignedTeamLeader = &teamLeaderID

	err = uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", salesman.ID).
			Update("assigned_team_leader", teamLeaderID).Error; err != nil {
			return err
		}

		id := salesman.ID
		return uc.rec.Record(tx, actor, "team_leader_assigned", "user", &id, before, salesman)
	})
	if err != nil {
		return nil, err
	}

	return salesman, nil
}
