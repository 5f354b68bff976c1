package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/middleware"
	"github.com/ysw-crm/crm-backend/internal/models"
)

type AnalyticsHandler struct {
	db *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: db}
}

// ======================================================
// PIPELINE COUNTS
// ======================================================

func (h *AnalyticsHandler) PipelineCounts(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	type row struct {
		PipelineStage string
		Count         int64
	}

	var rows []row
	if err := h.db.
		Model(&models.Customer{}).
		Select("pipeline_stage, COUNT(id) AS count").
		Where("company_id = ?", companyID).
		Group("pipeline_stage").
		Scan(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_count_pipeline", "Could not compute pipeline counts.")
		return
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.PipelineStage] = r.Count
	}

	c.JSON(http.StatusOK, counts)
}

// ======================================================
// OVERVIEW
// ======================================================

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var (
		totalCustomers    int64
		totalLeads        int64
		totalClients      int64
		totalInteractions int64
		pendingTasks      int64
		upcomingFollowups int64
	)

	h.db.Model(&models.Customer{}).
		Where("company_id = ?", companyID).
		Count(&totalCustomers)

	h.db.Model(&models.Customer{}).
		Where("company_id = ? AND lead_status = ?", companyID, "lead").
		Count(&totalLeads)

	h.db.Model(&models.Customer{}).
		Where("company_id = ? AND lead_status = ?", companyID, "client").
		Count(&totalClients)

	h.db.Model(&models.Interaction{}).
		Where("company_id = ?", companyID).
		Count(&totalInteractions)

	h.db.Model(&models.TaskAssignment{}).
		Where("company_id = ? AND status = ?", companyID, "assigned").
		Count(&pendingTasks)

	h.db.Model(&models.FollowUp{}).
		Where("company_id = ? AND followup_date >= ?", companyID, time.Now()).
		Count(&upcomingFollowups)

	c.JSON(http.StatusOK, gin.H{
		"total_customers":    totalCustomers,
		"leads":              totalLeads,
		"clients":            totalClients,
		"interactions":       totalInteractions,
		"pending_tasks":      pendingTasks,
		"upcoming_followups": upcomingFollowups,
	})
}
