package assignment

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ysw-crm/crm-backend/internal/audit"
	dbpkg "github.com/ysw-crm/crm-backend/internal/db"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	infraRepo "github.com/ysw-crm/crm-backend/internal/infra/repository"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type assignmentFixture struct {
	db *gorm.DB

	assignLeader *AssignTeamLeader
	bulkAssign   *BulkAssignCustomers
	hierarchy    *Hierarchy

	companyA models.Company
	companyB models.Company

	admin    models.User
	leader   models.User
	salesman models.User
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	f := &assignmentFixture{db: db}

	f.companyA = models.Company{CompanyName: "Acme", CrmType: "sales_crm"}
	f.companyB = models.Company{CompanyName: "Globex", CrmType: "sales_crm"}
	require.NoError(t, db.Create(&f.companyA).Error)
	require.NoError(t, db.Create(&f.companyB).Error)

	f.admin = models.User{
		CompanyID: f.companyA.ID, FullName: "Ana", Email: "ana@acme.test",
		PasswordHash: "x", Role: models.RoleAdmin,
	}
	f.leader = models.User{
		CompanyID: f.companyA.ID, FullName: "Lea", Email: "lea@acme.test",
		PasswordHash: "x", Role: models.RoleTeamLeader,
	}
	f.salesman = models.User{
		CompanyID: f.companyA.ID, FullName: "Sam", Email: "sam@acme.test",
		PasswordHash: "x", Role: models.RoleSalesman,
	}
	require.NoError(t, db.Create(&f.admin).Error)
	require.NoError(t, db.Create(&f.leader).Error)
	require.NoError(t, db.Create(&f.salesman).Error)

	repo := infraRepo.NewAssignmentGormRepository(db)
	rec := audit.New(db, zerolog.Nop())

	f.assignLeader = NewAssignTeamLeader(db, repo, rec)
	f.bulkAssign = NewBulkAssignCustomers(db, repo, rec)
	f.hierarchy = NewHierarchy(repo)

	return f
}

func (f *assignmentFixture) actor() audit.Actor {
	return audit.Actor{UserID: f.admin.ID, CompanyID: f.companyA.ID, Role: models.RoleAdmin}
}

func (f *assignmentFixture) seedCustomer(t *testing.T, c models.Customer) models.Customer {
	t.Helper()
	if c.CompanyID == 0 {
		c.CompanyID = f.companyA.ID
	}
	require.NoError(t, f.db.Create(&c).Error)
	return c
}

func TestAssignTeamLeader(t *testing.T) {
	f := newAssignmentFixture(t)

	updated, err := f.assignLeader.Execute(context.Background(), f.actor(), f.salesman.ID, f.leader.ID)
	require.NoError(t, err)

	require.NotNil(t, updated.AssignedTeamLeader)
	assert.Equal(t, f.leader.ID, *updated.AssignedTeamLeader)

	var reloaded models.User
	require.NoError(t, f.db.First(&reloaded, f.salesman.ID).Error)
	require.NotNil(t, reloaded.AssignedTeamLeader)
	assert.Equal(t, f.leader.ID, *reloaded.AssignedTeamLeader)

	var entry models.AuditLog
	require.NoError(t, f.db.Where("action = ?", "team_leader_assigned").First(&entry).Error)
	assert.Equal(t, "user", entry.ResourceType)
	assert.Contains(t, entry.BeforeData, `"assigned_team_leader":null`)
	assert.NotContains(t, entry.AfterData, `"assigned_team_leader":null`)
}

func TestAssignTeamLeaderOverwritesPrevious(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	other := models.User{
		CompanyID: f.companyA.ID, FullName: "Noa", Email: "noa@acme.test",
		PasswordHash: "x", Role: models.RoleTeamLeader,
	}
	require.NoError(t, f.db.Create(&other).Error)

	_, err := f.assignLeader.Execute(ctx, f.actor(), f.salesman.ID, f.leader.ID)
	require.NoError(t, err)

	updated, err := f.assignLeader.Execute(ctx, f.actor(), f.salesman.ID, other.ID)
	require.NoError(t, err)

	require.NotNil(t, updated.AssignedTeamLeader)
	assert.Equal(t, other.ID, *updated.AssignedTeamLeader)
}

func TestAssignTeamLeaderRoleMismatch(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	// the target must really be a salesman
	_, err := f.assignLeader.Execute(ctx, f.actor(), f.leader.ID, f.leader.ID)
	assert.True(t, httperr.IsBusiness(err, "salesman_not_found"))

	// and the leader really a team leader
	_, err = f.assignLeader.Execute(ctx, f.actor(), f.salesman.ID, f.admin.ID)
	assert.True(t, httperr.IsBusiness(err, "team_leader_not_found"))
}

func TestAssignTeamLeaderOtherCompany(t *testing.T) {
	f := newAssignmentFixture(t)

	foreign := models.User{
		CompanyID: f.companyB.ID, FullName: "Zed", Email: "zed@globex.test",
		PasswordHash: "x", Role: models.RoleSalesman,
	}
	require.NoError(t, f.db.Create(&foreign).Error)

	_, err := f.assignLeader.Execute(context.Background(), f.actor(), foreign.ID, f.leader.ID)
	assert.True(t, httperr.IsBusiness(err, "salesman_not_found"))
}

func TestBulkAssignOnlyUnassignedMatches(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	taken := f.salesman.ID
	f.seedCustomer(t, models.Customer{Name: "Unassigned lead", PipelineStage: "lead", LeadStatus: "new"})
	f.seedCustomer(t, models.Customer{Name: "Unassigned contacted", PipelineStage: "lead", LeadStatus: "contacted"})
	f.seedCustomer(t, models.Customer{Name: "Already owned", PipelineStage: "lead", LeadStatus: "new", AssignedTo: &taken})
	f.seedCustomer(t, models.Customer{Name: "Wrong stage", PipelineStage: "negotiation", LeadStatus: "new"})
	f.seedCustomer(t, models.Customer{Name: "Other tenant", CompanyID: f.companyB.ID, PipelineStage: "lead", LeadStatus: "new"})

	stage := "lead"
	count, err := f.bulkAssign.Execute(ctx, f.actor(), BulkAssignInput{
		SalesmanID:    f.salesman.ID,
		PipelineStage: &stage,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	var owned int64
	require.NoError(t, f.db.Model(&models.Customer{}).
		Where("company_id = ? AND assigned_to = ?", f.companyA.ID, f.salesman.ID).
		Count(&owned).Error)
	assert.EqualValues(t, 3, owned) // the two new ones plus the pre-owned row

	var foreign models.Customer
	require.NoError(t, f.db.Where("name = ?", "Other tenant").First(&foreign).Error)
	assert.Nil(t, foreign.AssignedTo)

	var entry models.AuditLog
	require.NoError(t, f.db.Where("action = ?", "customers_bulk_assigned").First(&entry).Error)
	assert.Contains(t, entry.BeforeData, `"unassigned_count":2`)
	assert.Contains(t, entry.AfterData, `"assigned_count":2`)
}

func TestBulkAssignSecondRunFindsNothing(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	f.seedCustomer(t, models.Customer{Name: "Lead A", PipelineStage: "lead"})
	f.seedCustomer(t, models.Customer{Name: "Lead B", PipelineStage: "lead"})

	in := BulkAssignInput{SalesmanID: f.salesman.ID}

	count, err := f.bulkAssign.Execute(ctx, f.actor(), in)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = f.bulkAssign.Execute(ctx, f.actor(), in)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBulkAssignUnknownSalesman(t *testing.T) {
	f := newAssignmentFixture(t)

	_, err := f.bulkAssign.Execute(context.Background(), f.actor(), BulkAssignInput{
		SalesmanID: f.leader.ID, // wrong role
	})
	assert.True(t, httperr.IsBusiness(err, "salesman_not_found"))
}

func TestHierarchyTree(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	_, err := f.assignLeader.Execute(ctx, f.actor(), f.salesman.ID, f.leader.ID)
	require.NoError(t, err)

	owned := f.salesman.ID
	f.seedCustomer(t, models.Customer{Name: "Acme Corp", AssignedTo: &owned})
	f.seedCustomer(t, models.Customer{Name: "Initech", AssignedTo: &owned})
	f.seedCustomer(t, models.Customer{Name: "Unowned"})

	tree, err := f.hierarchy.Execute(ctx, f.companyA.ID)
	require.NoError(t, err)

	require.Len(t, tree.TeamLeaders, 1)
	node := tree.TeamLeaders[0]
	assert.Equal(t, f.leader.ID, node.ID)
	assert.Equal(t, "Lea", node.Name)

	require.Len(t, node.Salesmen, 1)
	assert.Equal(t, "Sam", node.Salesmen[0].Name)
	assert.Equal(t, []string{"Acme Corp", "Initech"}, node.Salesmen[0].Customers)
}

func TestHierarchyEmptyBranches(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	// a leader with no salesmen still shows up with an empty list
	tree, err := f.hierarchy.Execute(ctx, f.companyA.ID)
	require.NoError(t, err)
	require.Len(t, tree.TeamLeaders, 1)
	assert.NotNil(t, tree.TeamLeaders[0].Salesmen)
	assert.Empty(t, tree.TeamLeaders[0].Salesmen)

	// and a salesman with no customers shows an empty customer list
	_, err = f.assignLeader.Execute(ctx, f.actor(), f.salesman.ID, f.leader.ID)
	require.NoError(t, err)

	tree, err = f.hierarchy.Execute(ctx, f.companyA.ID)
	require.NoError(t, err)
	require.Len(t, tree.TeamLeaders, 1)
	require.Len(t, tree.TeamLeaders[0].Salesmen, 1)
	assert.NotNil(t, tree.TeamLeaders[0].Salesmen[0].Customers)
	assert.Empty(t, tree.TeamLeaders[0].Salesmen[0].Customers)

	// no leaders at all still yields a non-nil empty tree
	empty, err := f.hierarchy.Execute(ctx, f.companyB.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty.TeamLeaders)
	assert.Empty(t, empty.TeamLeaders)
}
