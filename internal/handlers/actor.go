package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ysw-crm/crm-backend/internal/audit"
	"github.com/ysw-crm/crm-backend/internal/middleware"
)

// currentActor resolves the authenticated identity plus request context
// for audit entries. Only valid on routes behind AuthMiddleware.
func currentActor(c *gin.Context) audit.Actor {
	return audit.Actor{
		UserID:     c.MustGet(middleware.ContextUserID).(uint),
		CompanyID:  c.MustGet(middleware.ContextCompanyID).(uint),
		Role:       c.MustGet(middleware.ContextUserRole).(string),
		IPAddress:  c.ClientIP(),
		DeviceInfo: c.Request.UserAgent(),
	}
}
