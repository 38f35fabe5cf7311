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

// ProposalHandler serves proposal endpoints.
type ProposalHandler struct {
	proposalService   *services.ProposalService
	lifecycleService  *services.LifecycleService
	suggestionService *services.SuggestionService
	logger            *slog.Logger
}

// NewProposalHandler creates a new ProposalHandler. suggestionService may be
// nil, in which case suggestions answer 503.
func NewProposalHandler(
	proposalService *services.ProposalService,
	lifecycleService *services.LifecycleService,
	suggestionService *services.SuggestionService,
	logger *slog.Logger,
) *ProposalHandler {
	return &ProposalHandler{
		proposalService:   proposalService,
		lifecycleService:  lifecycleService,
		suggestionService: suggestionService,
		logger:            defaultLogger(logger),
	}
}

// ListProposals returns proposals, optionally filtered by ?organizationId=.
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	orgID := c.Query("organizationId")

	proposals, err := h.proposalService.ListProposals(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, h.logger, "ListProposals", orgID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposals": dto.ToProposalDTOs(proposals),
		"count":     len(proposals),
	})
}

// GetProposal returns one proposal.
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id := c.Param("id")

	proposal, err := h.proposalService.GetProposal(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetProposal", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": dto.ToProposalDTO(*proposal)})
}

// CreateProposal creates a proposal attributed to the session's actor.
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	type CreateProposalRequest struct {
		OrganizationID string   `json:"organizationId"`
		Title          string   `json:"title"`
		Description    *string  `json:"description"`
		Budget         *float64 `json:"budget"`
		Deadline       *string  `json:"deadline"`
	}

	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	id, err := h.proposalService.CreateProposal(c.Request.Context(), services.CreateProposalInput{
		OrganizationID: req.OrganizationID,
		Title:          req.Title,
		Description:    req.Description,
		Budget:         req.Budget,
		Deadline:       req.Deadline,
		CreatedBy:      middleware.GetActor(c),
	})
	if err != nil {
		respondError(c, h.logger, "CreateProposal", req.OrganizationID, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"proposalId": id})
}

// UpdateProposal applies a partial update. Omitted fields are kept and
// null fields are cleared.
func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	type UpdateProposalRequest struct {
		Title       models.Optional[string]  `json:"title"`
		Description models.Optional[string]  `json:"description"`
		Budget      models.Optional[float64] `json:"budget"`
		Deadline    models.Optional[string]  `json:"deadline"`
	}

	id := c.Param("id")

	var req UpdateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.proposalService.UpdateProposal(c.Request.Context(), id, services.UpdateProposalInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondError(c, h.logger, "UpdateProposal", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposalId": id})
}

// UpdateProposalStatus moves the proposal to the next status.
func (h *ProposalHandler) UpdateProposalStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status string `json:"status"`
	}

	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	status, err := h.proposalService.TransitionStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.logger, "UpdateProposalStatus", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposalId": id,
		"status":     status,
	})
}

// DeleteProposal archives or deletes the proposal and its tasks.
func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	id := c.Param("id")

	result, err := h.lifecycleService.CascadeProposal(c.Request.Context(), id, middleware.GetActor(c))
	if err != nil {
		respondError(c, h.logger, "DeleteProposal", id, err)
		return
	}

	if result.Mode == config.CascadeModeDelete {
		c.JSON(http.StatusOK, gin.H{
			"deleted":      true,
			"deletedTasks": result.Tasks,
			"cascadeId":    result.RunID,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted":       true,
		"archivedTasks": result.Tasks,
		"cascadeId":     result.RunID,
	})
}

// SuggestTasks drafts tasks for the proposal. Nothing is created.
func (h *ProposalHandler) SuggestTasks(c *gin.Context) {
	id := c.Param("id")

	tasks, err := h.suggestionService.SuggestTasks(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "SuggestTasks", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}
