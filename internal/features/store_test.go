package features

import (
	"context"
	"encoding/json"
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
	"github.com/ysw-crm/crm-backend/internal/models"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB, models.Company) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	company := models.Company{
		CompanyName:      "Acme Sales",
		CrmType:          "sales_crm",
		SelectedFeatures: "[]",
	}
	require.NoError(t, db.Create(&company).Error)

	store := NewStore(db, nil, audit.New(db, zerolog.Nop()))
	return store, db, company
}

func storeActor(companyID uint) audit.Actor {
	return audit.Actor{UserID: 1, CompanyID: companyID, Role: models.RoleAdmin}
}

func TestSetReplacesWholeSet(t *testing.T) {
	store, db, company := newTestStore(t)
	ctx := context.Background()
	actor := storeActor(company.ID)

	require.NoError(t, store.Set(ctx, company.ID, []string{"tasks", "leads_pipeline"}, actor))

	keys, err := store.Get(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"tasks", "leads_pipeline"}, keys)

	// a later set does not merge with the earlier one
	require.NoError(t, store.Set(ctx, company.ID, []string{"analytics_dashboard"}, actor))

	keys, err = store.Get(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"analytics_dashboard"}, keys)

	var entries []models.AuditLog
	require.NoError(t, db.Order("id ASC").Find(&entries).Error)
	require.Len(t, entries, 2)

	assert.Equal(t, "feature_settings_updated", entries[1].Action)
	assert.Equal(t, "company_feature_settings", entries[1].ResourceType)
	assert.JSONEq(t, `{"selected_features":["tasks","leads_pipeline"]}`, entries[1].BeforeData)
	assert.JSONEq(t, `{"selected_features":["analytics_dashboard"]}`, entries[1].AfterData)
}

func TestSetIdenticalSetStillAudited(t *testing.T) {
	store, db, company := newTestStore(t)
	ctx := context.Background()
	actor := storeActor(company.ID)

	require.NoError(t, store.Set(ctx, company.ID, []string{"tasks"}, actor))
	require.NoError(t, store.Set(ctx, company.ID, []string{"tasks"}, actor))

	var entries int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&entries).Error)
	assert.EqualValues(t, 2, entries)
}

func TestSetNilBecomesEmptySet(t *testing.T) {
	store, db, company := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, company.ID, nil, storeActor(company.ID)))

	var reloaded models.Company
	require.NoError(t, db.First(&reloaded, company.ID).Error)
	assert.Equal(t, "[]", reloaded.SelectedFeatures)

	keys, err := store.Get(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, keys)
}

func TestSetUnknownCompany(t *testing.T) {
	store, _, _ := newTestStore(t)

	err := store.Set(context.Background(), 999, []string{"tasks"}, storeActor(999))
	assert.True(t, httperr.IsBusiness(err, "company_not_found"))
}

func TestGetToleratesCorruptColumn(t *testing.T) {
	store, db, company := newTestStore(t)

	require.NoError(t, db.Model(&models.Company{}).
		Where("id = ?", company.ID).
		Update("selected_features", "{not json").Error)

	keys, err := store.Get(context.Background(), company.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, keys)
}

func TestCatalogDefaults(t *testing.T) {
	catalog := Catalog()
	require.NotEmpty(t, catalog)

	known := make(map[string]bool, len(catalog))
	for _, f := range catalog {
		assert.NotEmpty(t, f.Key)
		assert.NotEmpty(t, f.Label)
		assert.False(t, known[f.Key], "duplicate key %s", f.Key)
		known[f.Key] = true
	}

	defaults := Defaults()
	require.NotEmpty(t, defaults)
	for _, key := range defaults {
		assert.True(t, known[key], "default %s not in catalog", key)
	}

	// defaults are a valid payload for the settings column as written
	raw, err := json.Marshal(defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, decodeKeys(string(raw)))
}
