package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ysw-crm/crm-backend/internal/audit"
	dbpkg "github.com/ysw-crm/crm-backend/internal/db"
	"github.com/ysw-crm/crm-backend/internal/features"
	"github.com/ysw-crm/crm-backend/internal/middleware"
	"github.com/ysw-crm/crm-backend/internal/models"
)

// stubAuth plays the part of AuthMiddleware for handler tests.
func stubAuth(userID, companyID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextCompanyID, companyID)
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	}
}

func newFeatureTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, models.Company) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	company := models.Company{CompanyName: "Acme", CrmType: "sales_crm", SelectedFeatures: "[]"}
	require.NoError(t, db.Create(&company).Error)

	store := features.NewStore(db, nil, audit.New(db, zerolog.Nop()))
	h := NewFeatureHandler(store)

	r := gin.New()
	r.GET("/api/features/catalog", h.Catalog)

	secured := r.Group("/api")
	secured.Use(stubAuth(1, company.ID, models.RoleAdmin))
	{
		secured.GET("/features", h.Get)
		secured.PUT("/features", h.Set)
	}

	return r, db, company
}

func TestFeatureCatalogEndpoint(t *testing.T) {
	r, _, _ := newFeatureTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/features/catalog", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"features"`)
	assert.Contains(t, w.Body.String(), `"tasks"`)
}

func TestFeatureSetAndGetEndpoints(t *testing.T) {
	r, db, _ := newFeatureTestRouter(t)

	body := `{"selected_features":["tasks","leads_pipeline"]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/features", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/features", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selected_features":["tasks","leads_pipeline"]}`, w.Body.String())

	var entries int64
	require.NoError(t, db.Model(&models.AuditLog{}).
		Where("action = ?", "feature_settings_updated").Count(&entries).Error)
	assert.EqualValues(t, 1, entries)
}

func TestFeatureSetRejectsMissingField(t *testing.T) {
	r, _, _ := newFeatureTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/features", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}
