package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ysw-crm/crm-backend/internal/httperr"
	"github.com/ysw-crm/crm-backend/internal/httpresp"
	"github.com/ysw-crm/crm-backend/internal/middleware"
	ucTask "github.com/ysw-crm/crm-backend/internal/usecase/task"
)

// ======================================================
// HANDLER
// ======================================================

type TaskHandler struct {
	createUC   *ucTask.CreateTask
	completeUC *ucTask.CompleteTask
	listUC     *ucTask.ListTasks
}

func NewTaskHandler(
	createUC *ucTask.CreateTask,
	completeUC *ucTask.CompleteTask,
	listUC *ucTask.ListTasks,
) *TaskHandler {
	return &TaskHandler{
		createUC:   createUC,
		completeUC: completeUC,
		listUC:     listUC,
	}
}

// --------- Requests ---------

type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	AssignedTo  uint      `json:"assigned_to" binding:"required"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	Priority    string    `json:"priority" binding:"required,oneof=low medium high"`
}

// ======================================================
// CREATE
// ======================================================

func (h *TaskHandler) Create(c *gin.Context) {
	actor := currentActor(c)

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid task payload.")
		return
	}

	task, err := h.createUC.Execute(c.Request.Context(), actor, ucTask.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		if httperr.IsBusiness(err, "assignee_not_found") {
			httperr.NotFound(c, "assignee_not_found", "Assigned user not found.")
			return
		}
		httperr.Internal(c, "failed_to_create_task", "Could not create task.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created",
		"task_id": task.ID,
	})
}

// ======================================================
// COMPLETE
// ======================================================

func (h *TaskHandler) Complete(c *gin.Context) {
	actor := currentActor(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_task_id", "Invalid task id.")
		return
	}

	task, err := h.completeUC.Execute(c.Request.Context(), actor, uint(id))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "task_not_found"):
			httperr.NotFound(c, "task_not_found", "Task not found.")
		case httperr.IsBusiness(err, "task_already_completed"):
			httperr.Conflict(c, "task_already_completed", "Task already completed.")
		default:
			httperr.Internal(c, "failed_to_complete_task", "Could not complete task.")
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// ======================================================
// LIST
// ======================================================

func (h *TaskHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var assignedTo *uint
	if v := c.Query("assigned_to"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			u := uint(id)
			assignedTo = &u
		}
	}

	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}

	tasks, err := h.listUC.Execute(c.Request.Context(), companyID, assignedTo, status)
	if err != nil {
		httperr.Internal(c, "failed_to_list_tasks", "Could not list tasks.")
		return
	}

	httpresp.List(c, tasks)
}

func (h *TaskHandler) Logs(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_task_id", "Invalid task id.")
		return
	}

	logs, err := h.listUC.Logs(c.Request.Context(), companyID, uint(id))
	if err != nil {
		if httperr.IsBusiness(err, "task_not_found") {
			httperr.NotFound(c, "task_not_found", "Task not found.")
			return
		}
		httperr.Internal(c, "failed_to_list_task_logs", "Could not list task logs.")
		return
	}

	httpresp.List(c, logs)
}
