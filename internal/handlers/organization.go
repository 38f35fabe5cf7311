package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/proposal-board-api/internal/config"
	"github.com/yukikurage/proposal-board-api/internal/dto"
	apierrors "github.com/yukikurage/proposal-board-api/internal/errors"
	"github.com/yukikurage/proposal-board-api/internal/middleware"
	"github.com/yukikurage/proposal-board-api/internal/models"
	"github.com/yukikurage/proposal-board-api/internal/services"
)

// OrganizationHandler serves organization endpoints, including the board
// view and the cascading delete.
type OrganizationHandler struct {
	orgService       *services.OrganizationService
	lifecycleService *services.LifecycleService
	logger           *slog.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(
	orgService *services.OrganizationService,
	lifecycleService *services.LifecycleService,
	logger *slog.Logger,
) *OrganizationHandler {
	return &OrganizationHandler{
		orgService:       orgService,
		lifecycleService: lifecycleService,
		logger:           defaultLogger(logger),
	}
}

// ListOrganizations returns every organization.
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.orgService.ListOrganizations(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ListOrganizations", "", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"organizations": dto.ToOrganizationDTOs(orgs),
		"count":         len(orgs),
	})
}

// CreateOrganization creates an organization.
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	type CreateOrganizationRequest struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		OwnerID     *string `json:"ownerId"`
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	id, err := h.orgService.CreateOrganization(c.Request.Context(), services.CreateOrganizationInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		respondError(c, h.logger, "CreateOrganization", "", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"organizationId": id})
}

// GetOrganization returns one organization.
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	id := c.Param("id")

	org, err := h.orgService.GetOrganization(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetOrganization", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": dto.ToOrganizationDTO(*org)})
}

// UpdateOrganization sets the name and/or description. A null description
// clears it.
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	type UpdateOrganizationRequest struct {
		Name        *string                 `json:"name"`
		Description models.Optional[string] `json:"description"`
	}

	id := c.Param("id")

	var req UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.orgService.UpdateOrganization(c.Request.Context(), id, services.UpdateOrganizationInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, "UpdateOrganization", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizationId": id})
}

// DeleteOrganization archives or deletes the organization with its
// proposals and tasks, depending on the deployment's cascade mode.
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	id := c.Param("id")

	result, err := h.lifecycleService.CascadeOrganization(c.Request.Context(), id, middleware.GetActor(c))
	if err != nil {
		respondError(c, h.logger, "DeleteOrganization", id, err)
		return
	}

	if result.Mode == config.CascadeModeDelete {
		c.JSON(http.StatusOK, gin.H{
			"deleted":          true,
			"deletedTasks":     result.Tasks,
			"deletedProposals": result.Proposals,
			"cascadeId":        result.RunID,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted":           true,
		"archivedTasks":     result.Tasks,
		"archivedProposals": result.Proposals,
		"cascadeId":         result.RunID,
	})
}

// GetBoard returns the organization with its proposals, tasks and status counts.
func (h *OrganizationHandler) GetBoard(c *gin.Context) {
	id := c.Param("id")

	board, err := h.orgService.GetBoard(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetBoard", id, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(board))
}
