package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/middleware"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Company").First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Could not load user.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":                   user.ID,
			"full_name":            user.FullName,
			"email":                user.Email,
			"phone":                user.Phone,
			"role":                 user.Role,
			"company_id":           user.CompanyID,
			"assigned_team_leader": user.AssignedTeamLeader,
		},
		"company": gin.H{
			"id":           user.Company.ID,
			"company_name": user.Company.CompanyName,
			"crm_type":     user.Company.CrmType,
			"industry":     user.Company.Industry,
			"location":     user.Company.Location,
		},
	})
}
