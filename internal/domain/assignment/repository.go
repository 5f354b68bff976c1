package assignment

import (
	"context"

	"github.com/ysw-crm/crm-backend/internal/models"
)

type Repository interface {
	GetUserWithRole(
		ctx context.Context,
		companyID uint,
		userID uint,
		role string,
	) (*models.User, error)

	ListTeamLeaders(
		ctx context.Context,
		companyID uint,
	) ([]models.User, error)

	ListSalesmenOfLeader(
		ctx context.Context,
		companyID uint,
		teamLeaderID uint,
	) ([]models.User, error)

	ListCustomerNames(
		ctx context.Context,
		companyID uint,
		salesmanID uint,
	) ([]string, error)
}
