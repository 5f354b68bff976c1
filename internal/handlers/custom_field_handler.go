package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/audit"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/httpresp"
	"github.com/ysw-crm/crm-backend/internal/middleware"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type CustomFieldHandler struct {
	db  *gorm.DB
	rec *audit.Recorder
}

func NewCustomFieldHandler(db *gorm.DB, rec *audit.Recorder) *CustomFieldHandler {
	return &CustomFieldHandler{db: db, rec: rec}
}

// --------- Requests ---------

type CreateCustomFieldRequest struct {
	FieldName  string `json:"field_name" binding:"required"`
	FieldType  string `json:"field_type" binding:"required,oneof=text number date boolean"`
	IsRequired bool   `json:"is_required"`
}

// --------- Handlers ---------

func (h *CustomFieldHandler) Create(c *gin.Context) {
	actor := currentActor(c)

	var req CreateCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid custom field payload.")
		return
	}

	field := models.CustomField{
		CompanyID:  actor.CompanyID,
		FieldName:  req.FieldName,
		FieldType:  req.FieldType,
		IsRequired: req.IsRequired,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&field).Error; err != nil {
			return err
		}

		id := field.ID
		return h.rec.Record(tx, actor, "custom_field_created", "custom_field", &id, nil,
			map[string]any{
				"id":          field.ID,
				"company_id":  field.CompanyID,
				"field_name":  field.FieldName,
				"field_type":  field.FieldType,
				"is_required": field.IsRequired,
			})
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_custom_field", "Could not create custom field.")
		return
	}

	c.JSON(http.StatusCreated, field)
}

func (h *CustomFieldHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var fields []models.CustomField
	if err := h.db.
		Where("company_id = ?", companyID).
		Order("id ASC").
		Find(&fields).Error; err != nil {

		httperr.Internal(c, "failed_to_list_custom_fields", "Could not list custom fields.")
		return
	}

	httpresp.List(c, fields)
}
