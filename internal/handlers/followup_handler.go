package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/audit"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/httpresp"
	"github.com/ysw-crm/crm-backend/internal/middleware"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type FollowUpHandler struct {
	db  *gorm.DB
	rec *audit.Recorder
}

func NewFollowUpHandler(db *gorm.DB, rec *audit.Recorder) *FollowUpHandler {
	return &FollowUpHandler{db: db, rec: rec}
}

// --------- Requests ---------

type CreateFollowUpRequest struct {
	CustomerID   uint      `json:"customer_id" binding:"required"`
	FollowupDate time.Time `json:"followup_date" binding:"required"`
	Status       string    `json:"status" binding:"required"`
	Notes        string    `json:"notes"`
}

// --------- Handlers ---------

func (h *FollowUpHandler) Create(c *gin.Context) {
	actor := currentActor(c)

	var req CreateFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid follow-up payload.")
		return
	}

	var count int64
	h.db.Model(&models.Customer{}).
		Where("id = ? AND company_id = ?", req.CustomerID, actor.CompanyID).
		Count(&count)
	if count == 0 {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	followup := models.FollowUp{
		CompanyID:    actor.CompanyID,
		CustomerID:   req.CustomerID,
		FollowupDate: req.FollowupDate,
		Status:       req.Status,
		Notes:        req.Notes,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&followup).Error; err != nil {
			return err
		}

		id := followup.ID
		return h.rec.Record(tx, actor, "followup_created", "followup", &id, nil,
			map[string]any{
				"id":            followup.ID,
				"customer_id":   followup.CustomerID,
				"followup_date": followup.FollowupDate,
				"status":        followup.Status,
			})
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_followup", "Could not create follow-up.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Follow-up created",
		"followup_id": followup.ID,
	})
}

func (h *FollowUpHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	q := h.db.Where("company_id = ?", companyID)

	if customerID := c.Query("customer_id"); customerID != "" {
		q = q.Where("customer_id = ?", customerID)
	}

	var followups []models.FollowUp
	if err := q.
		Order("followup_date ASC").
		Find(&followups).Error; err != nil {

		httperr.Internal(c, "failed_to_list_followups", "Could not list follow-ups.")
		return
	}

	httpresp.List(c, followups)
}
