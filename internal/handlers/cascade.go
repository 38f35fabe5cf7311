package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/proposal-board-api/internal/errors"
	"github.com/yukikurage/proposal-board-api/internal/models"
	"github.com/yukikurage/proposal-board-api/internal/repository"
	"github.com/yukikurage/proposal-board-api/internal/services"
	"github.com/yukikurage/proposal-board-api/internal/utils"
)

// CascadeHandler exposes the cascade journal.
type CascadeHandler struct {
	lifecycleService *services.LifecycleService
	logger           *slog.Logger
}

// NewCascadeHandler creates a new CascadeHandler.
func NewCascadeHandler(lifecycleService *services.LifecycleService, logger *slog.Logger) *CascadeHandler {
	return &CascadeHandler{
		lifecycleService: lifecycleService,
		logger:           defaultLogger(logger),
	}
}

// ListCascades returns journaled cascades, newest first. Supports
// ?entityType=, ?entityId=, ?status=, ?page= and ?limit=.
func (h *CascadeHandler) ListCascades(c *gin.Context) {
	filter := repository.CascadeRunFilter{
		EntityType: c.Query("entityType"),
		EntityID:   c.Query("entityId"),
		Pagination: utils.GetPaginationParams(c),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.CascadeRunStatus(raw)
		switch status {
		case models.CascadeRunRunning, models.CascadeRunCompleted, models.CascadeRunFailed:
		default:
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Status = &status
	}

	runs, total, err := h.lifecycleService.ListRuns(filter)
	if err != nil {
		respondError(c, h.logger, "ListCascades", filter.EntityID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cascades":   runs,
		"pagination": utils.NewPaginationResponse(filter.Pagination, total),
	})
}

// GetCascade returns one journaled cascade.
func (h *CascadeHandler) GetCascade(c *gin.Context) {
	id := c.Param("id")

	run, err := h.lifecycleService.GetRun(id)
	if err != nil {
		respondError(c, h.logger, "GetCascade", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cascade": run})
}
