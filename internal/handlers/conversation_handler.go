package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/httpresp"
	"github.com/ysw-crm/crm-backend/internal/middleware"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type ConversationHandler struct {
	db *gorm.DB
}

func NewConversationHandler(db *gorm.DB) *ConversationHandler {
	return &ConversationHandler{db: db}
}

// --------- Requests ---------

type CreateConversationRequest struct {
	CustomerID    uint   `json:"customer_id" binding:"required"`
	Channel       string `json:"channel" binding:"required"`
	Direction     string `json:"direction" binding:"required,oneof=inbound outbound"`
	Message       string `json:"message" binding:"required"`
	IsRead        bool   `json:"is_read"`
	AttachmentURL string `json:"attachment_url"`
}

// --------- Handlers ---------

func (h *ConversationHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid conversation payload.")
		return
	}

	var count int64
	h.db.Model(&models.Customer{}).
		Where("id = ? AND company_id = ?", req.CustomerID, companyID).
		Count(&count)
	if count == 0 {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	conversation := models.Conversation{
		CompanyID:     companyID,
		CustomerID:    req.CustomerID,
		Channel:       req.Channel,
		Direction:     req.Direction,
		Message:       req.Message,
		IsRead:        req.IsRead,
		AttachmentURL: req.AttachmentURL,
		CreatedBy:     &userID,
	}

	if err := h.db.Create(&conversation).Error; err != nil {
		httperr.Internal(c, "failed_to_create_conversation", "Could not log conversation.")
		return
	}

	c.JSON(http.StatusCreated, conversation)
}

func (h *ConversationHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	q := h.db.Where("company_id = ?", companyID)

	if customerID := c.Query("customer_id"); customerID != "" {
		q = q.Where("customer_id = ?", customerID)
	}

	var conversations []models.Conversation
	if err := q.
		Order("created_at ASC").
		Find(&conversations).Error; err != nil {

		httperr.Internal(c, "failed_to_list_conversations", "Could not list conversations.")
		return
	}

	httpresp.List(c, conversations)
}
