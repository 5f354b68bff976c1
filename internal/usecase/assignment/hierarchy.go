package assignment

import (
	"context"

	domain "github.com/ysw-crm/crm-backend/internal/domain/assignment"
	"github.com/ysw-crm/crm-backend/internal/dto"
)

type Hierarchy struct {
	repo domain.Repository
}

func NewHierarchy(repo domain.Repository) *Hierarchy {
	return &Hierarchy{repo: repo}
}

// Execute builds the team_leader -> salesman -> customer tree for the
// dashboard. Leaders without salesmen and salesmen without customers still
// appear, with empty lists rather than nulls.
func (uc *Hierarchy) Execute(
	ctx context.Context,
	companyID uint,
) (*dto.HierarchyResponse, error) {

	leaders, err := uc.repo.ListTeamLeaders(ctx, companyID)
	if err != nil {
		return nil, err
	}

	tree := dto.HierarchyResponse{
		TeamLeaders: make([]dto.HierarchyTeamLeader, 0, len(leaders)),
	}

	for _, leader := range leaders {
		node := dto.HierarchyTeamLeader{
			ID:       leader.ID,
			Name:     leader.FullName,
			Salesmen: make([]dto.HierarchySalesman, 0),
		}

		salesmen, err := uc.repo.ListSalesmenOfLeader(ctx, companyID, leader.ID)
		if err != nil {
			return nil, err
		}

		for _, s := range salesmen {
			names, err := uc.repo.ListCustomerNames(ctx, companyID, s.ID)
			if err != nil {
				return nil, err
			}
			if names == nil {
				names = []string{}
			}

			node.Salesmen = append(node.Salesmen, dto.HierarchySalesman{
				ID:        s.ID,
				Name:      s.FullName,
				Customers: names,
			})
		}

		tree.TeamLeaders = append(tree.TeamLeaders, node)
	}

	return &tree, nil
}
