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

type InteractionHandler struct {
	db  *gorm.DB
	rec *audit.Recorder
}

func NewInteractionHandler(db *gorm.DB, rec *audit.Recorder) *InteractionHandler {
	return &InteractionHandler{db: db, rec: rec}
}

// --------- Requests ---------

type CreateInteractionRequest struct {
	CustomerID      uint       `json:"customer_id" binding:"required"`
	InteractionType string     `json:"interaction_type" binding:"required"`
	Notes           string     `json:"notes"`
	Outcome         string     `json:"outcome"`
	NextActionDate  *time.Time `json:"next_action_date"`
}

// --------- Handlers ---------

func (h *InteractionHandler) Create(c *gin.Context) {
	actor := currentActor(c)

	var req CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid interaction payload.")
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

	interaction := models.Interaction{
		CompanyID:       actor.CompanyID,
		CustomerID:      req.CustomerID,
		InteractionType: req.InteractionType,
		Notes:           req.Notes,
		Outcome:         req.Outcome,
		NextActionDate:  req.NextActionDate,
		InteractionDate: time.Now(),
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&interaction).Error; err != nil {
			return err
		}

		id := interaction.ID
		return h.rec.Record(tx, actor, "interaction_logged", "interaction", &id, nil,
			map[string]any{
				"id":               interaction.ID,
				"customer_id":      interaction.CustomerID,
				"interaction_type": interaction.InteractionType,
				"outcome":          interaction.Outcome,
				"interaction_date": interaction.InteractionDate,
			})
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_interaction", "Could not log interaction.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Interaction logged",
		"interaction_id": interaction.ID,
	})
}

func (h *InteractionHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	q := h.db.Where("company_id = ?", companyID)

	if customerID := c.Query("customer_id"); customerID != "" {
		q = q.Where("customer_id = ?", customerID)
	}

	var interactions []models.Interaction
	if err := q.
		Order("interaction_date DESC").
		Find(&interactions).Error; err != nil {

		httperr.Internal(c, "failed_to_list_interactions", "Could not list interactions.")
		return
	}

	httpresp.List(c, interactions)
}
