package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ysw-crm/crm-backend/internal/audit"
	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	rec *audit.Recorder
}

func NewAuditLogsHandler(rec *audit.Recorder) *AuditLogsHandler {
	return &AuditLogsHandler{rec: rec}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	filters := audit.Filters{
		Action: c.Query("action"),
	}

	if actorStr := c.Query("actor_id"); actorStr != "" {
		if id, err := strconv.ParseUint(actorStr, 10, 32); err == nil {
			u := uint(id)
			filters.ActorID = &u
		}
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			filters.From = &from
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			end := to.Add(24 * time.Hour)
			filters.To = &end
		}
	}

	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, total, err := h.rec.List(c.Request.Context(), companyID, filters)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  filters.Page,
		"limit": filters.Limit,
		"total": total,
		"logs":  logs,
	})
}
