package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/proposal-board-api/internal/dto"
	apierrors "github.com/yukikurage/proposal-board-api/internal/errors"
	"github.com/yukikurage/proposal-board-api/internal/middleware"
	"github.com/yukikurage/proposal-board-api/internal/models"
	"github.com/yukikurage/proposal-board-api/internal/services"
)

// TaskHandler serves task endpoints.
type TaskHandler struct {
	taskService *services.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      defaultLogger(logger),
	}
}

// ListTasks returns tasks, optionally filtered by ?proposalId= and ?organizationId=.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	input := services.ListTasksInput{
		OrganizationID: c.Query("organizationId"),
		ProposalID:     c.Query("proposalId"),
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, "ListTasks", input.ProposalID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"count": len(tasks),
	})
}

// GetTask returns one task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id := c.Param("id")

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetTask", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// CreateTask creates a task under a proposal.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		OrganizationID string   `json:"organizationId"`
		ProposalID     string   `json:"proposalId"`
		Title          string   `json:"title"`
		Description    *string  `json:"description"`
		Budget         *float64 `json:"budget"`
		Deadline       *string  `json:"deadline"`
		Assignee       *string  `json:"assignee"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	id, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		OrganizationID: req.OrganizationID,
		ProposalID:     req.ProposalID,
		Title:          req.Title,
		Description:    req.Description,
		Budget:         req.Budget,
		Deadline:       req.Deadline,
		Assignee:       req.Assignee,
		CreatedBy:      middleware.GetActor(c),
	})
	if err != nil {
		respondError(c, h.logger, "CreateTask", req.ProposalID, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"taskId": id})
}

// UpdateTask applies a partial update.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Title       models.Optional[string]  `json:"title"`
		Description models.Optional[string]  `json:"description"`
		Budget      models.Optional[float64] `json:"budget"`
		Deadline    models.Optional[string]  `json:"deadline"`
		Assignee    models.Optional[string]  `json:"assignee"`
	}

	id := c.Param("id")

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.taskService.UpdateTask(c.Request.Context(), id, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		Assignee:    req.Assignee,
	})
	if err != nil {
		respondError(c, h.logger, "UpdateTask", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"taskId": id})
}

// UpdateTaskStatus moves the task to the next status.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status string `json:"status"`
	}

	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	status, err := h.taskService.TransitionStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.logger, "UpdateTaskStatus", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"taskId": id,
		"status": status,
	})
}

// UpdateTaskAssignee reassigns the task.
func (h *TaskHandler) UpdateTaskAssignee(c *gin.Context) {
	type UpdateAssigneeRequest struct {
		Assignee string `json:"assignee"`
	}

	id := c.Param("id")

	var req UpdateAssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignee, err := h.taskService.AssignTask(c.Request.Context(), id, req.Assignee)
	if err != nil {
		respondError(c, h.logger, "UpdateTaskAssignee", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"taskId":   id,
		"assignee": assignee,
	})
}

// DeleteTask archives the task. Tasks are never hard-deleted on their own.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id := c.Param("id")

	if err := h.taskService.ArchiveTask(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteTask", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
