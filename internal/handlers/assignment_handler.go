package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/middleware"
	ucAssignment "github.com/ysw-crm/crm-backend/internal/usecase/assignment"
)

// ======================================================
// HANDLER
// ======================================================

type AssignmentHandler struct {
	assignLeaderUC *ucAssignment.AssignTeamLeader
	bulkAssignUC   *ucAssignment.BulkAssignCustomers
	hierarchyUC    *ucAssignment.Hierarchy
}

func NewAssignmentHandler(
	assignLeaderUC *ucAssignment.AssignTeamLeader,
	bulkAssignUC *ucAssignment.BulkAssignCustomers,
	hierarchyUC *ucAssignment.Hierarchy,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignLeaderUC: assignLeaderUC,
		bulkAssignUC:   bulkAssignUC,
		hierarchyUC:    hierarchyUC,
	}
}

// --------- Requests ---------

type AssignTeamLeaderRequest struct {
	TeamLeaderID uint `json:"team_leader_id" binding:"required"`
}

type BulkAssignRequest struct {
	SalesmanID    uint    `json:"salesman_id" binding:"required"`
	PipelineStage *string `json:"pipeline_stage"`
	LeadStatus    *string `json:"lead_status"`
}

// ======================================================
// ASSIGN TEAM LEADER
// ======================================================

func (h *AssignmentHandler) AssignTeamLeader(c *gin.Context) {
	actor := currentActor(c)

	salesmanID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_user_id", "Invalid user id.")
		return
	}

	var req AssignTeamLeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid assignment payload.")
		return
	}

	salesman, err := h.assignLeaderUC.Execute(
		c.Request.Context(),
		actor,
		uint(salesmanID),
		req.TeamLeaderID,
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "salesman_not_found"):
			httperr.NotFound(c, "salesman_not_found", "Salesman not found.")
		case httperr.IsBusiness(err, "team_leader_not_found"):
			httperr.NotFound(c, "team_leader_not_found", "Team leader not found.")
		default:
			httperr.Internal(c, "failed_to_assign_team_leader", "Could not assign team leader.")
		}
		return
	}

	c.JSON(http.StatusOK, salesman)
}

// ======================================================
// BULK ASSIGN
// ======================================================

func (h *AssignmentHandler) BulkAssign(c *gin.Context) {
	actor := currentActor(c)

	var req BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid bulk-assign payload.")
		return
	}

	count, err := h.bulkAssignUC.Execute(c.Request.Context(), actor, ucAssignment.BulkAssignInput{
		SalesmanID:    req.SalesmanID,
		PipelineStage: req.PipelineStage,
		LeadStatus:    req.LeadStatus,
	})
	if err != nil {
		if httperr.IsBusiness(err, "salesman_not_found") {
			httperr.NotFound(c, "salesman_not_found", "Salesman not found.")
			return
		}
		httperr.Internal(c, "failed_to_bulk_assign", "Could not assign customers.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"assigned_count": count})
}

// ======================================================
// HIERARCHY
// ======================================================

func (h *AssignmentHandler) Hierarchy(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	tree, err := h.hierarchyUC.Execute(c.Request.Context(), companyID)
	if err != nil {
		httperr.Internal(c, "failed_to_build_hierarchy", "Could not build hierarchy.")
		return
	}

	c.JSON(http.StatusOK, tree)
}
