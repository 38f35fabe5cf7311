package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yukikurage/proposal-board-api/internal/constants"
	"github.com/yukikurage/proposal-board-api/internal/models"
	"github.com/yukikurage/proposal-board-api/internal/repository"
)

// ProposalService provides business logic for proposal operations.
type ProposalService struct {
	proposalRepo repository.ProposalRepository
	logger       *slog.Logger
	now          func() time.Time
}

// NewProposalService creates a new ProposalService.
func NewProposalService(proposalRepo repository.ProposalRepository, logger *slog.Logger) *ProposalService {
	return &ProposalService{
		proposalRepo: proposalRepo,
		logger:       defaultLogger(logger),
		now:          time.Now,
	}
}

// CreateProposalInput represents parameters to create a new proposal.
type CreateProposalInput struct {
	OrganizationID string
	Title          string
	Description    *string
	Budget         *float64
	Deadline       *string
	CreatedBy      string
}

// UpdateProposalInput is a partial update. Absent fields keep their current
// value and null clears them.
type UpdateProposalInput struct {
	Title       models.Optional[string]
	Description models.Optional[string]
	Budget      models.Optional[float64]
	Deadline    models.Optional[string]
}

// ListProposals returns all proposals, or only those of organizationID when it is set.
func (s *ProposalService) ListProposals(ctx context.Context, organizationID string) ([]models.Proposal, error) {
	proposals, err := s.proposalRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	if organizationID == "" {
		return proposals, nil
	}
	return proposalsOf(proposals, organizationID), nil
}

// GetProposal returns one proposal.
func (s *ProposalService) GetProposal(ctx context.Context, id string) (*models.Proposal, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find proposal: %w", err)
	}
	return proposal, nil
}

// CreateProposal creates the document shell and then sets its details.
// If setting details fails the shell is deleted again.
func (s *ProposalService) CreateProposal(ctx context.Context, input CreateProposalInput) (string, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return "", validationErrorf("Title is required")
	}
	if strings.TrimSpace(input.OrganizationID) == "" {
		return "", validationErrorf("Organization ID is required")
	}
	if input.Budget != nil && *input.Budget < 0 {
		return "", validationErrorf("Budget cannot be negative")
	}

	createdBy := input.CreatedBy
	if createdBy == "" {
		createdBy = constants.DefaultActor
	}

	id, err := s.proposalRepo.Create(ctx, title)
	if err != nil {
		return "", fmt.Errorf("failed to create proposal: %w", err)
	}

	details := repository.ProposalDetails{
		Title:          title,
		Description:    nonEmpty(input.Description),
		OrganizationID: input.OrganizationID,
		Budget:         input.Budget,
		Deadline:       nonEmpty(input.Deadline),
		CreatedBy:      &createdBy,
		CreatedAt:      timestamp(s.now()),
	}
	if err := s.proposalRepo.SetDetails(ctx, id, details); err != nil {
		compensate(ctx, s.logger, "proposal", id, s.proposalRepo.Delete)
		return "", fmt.Errorf("failed to set proposal details: %w", err)
	}

	return id, nil
}

// UpdateProposal merges input into the current record and writes the full
// detail set back, since the store replaces it wholesale.
func (s *ProposalService) UpdateProposal(ctx context.Context, id string, input UpdateProposalInput) error {
	if err := validateTitleUpdate(input.Title); err != nil {
		return err
	}
	if err := validateBudgetUpdate(input.Budget); err != nil {
		return err
	}

	current, err := s.proposalRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find proposal: %w", err)
	}

	details := repository.ProposalDetails{
		Title:          mergeTitle(input.Title, current.Title),
		Description:    input.Description.Merge(current.Description),
		OrganizationID: current.OrganizationID,
		Budget:         input.Budget.Merge(current.Budget),
		Deadline:       input.Deadline.Merge(current.Deadline),
		CreatedBy:      carriedCreatedBy(current.CreatedBy),
		CreatedAt:      s.carriedCreatedAt(current.CreatedAt),
	}
	if err := s.proposalRepo.SetDetails(ctx, id, details); err != nil {
		return fmt.Errorf("failed to update proposal: %w", err)
	}
	return nil
}

// TransitionStatus moves a proposal to raw, which must be the successor of
// its current status. Moving to CLOSED stamps closedAt.
func (s *ProposalService) TransitionStatus(ctx context.Context, id, raw string) (models.ProposalStatus, error) {
	if raw == "" {
		return "", validationErrorf("Status is required")
	}
	status := models.ProposalStatus(raw)
	if !status.IsValid() {
		return "", validationErrorf("Unknown proposal status %q", raw)
	}

	current, err := s.proposalRepo.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to find proposal: %w", err)
	}

	next, ok := models.NextProposalStatus(current.Status)
	if !ok || next != status {
		return "", validationErrorf("Cannot move proposal from %s to %s", current.Status, status)
	}

	var closedAt *string
	if status == models.ProposalStatusClosed {
		ts := timestamp(s.now())
		closedAt = &ts
	}

	if err := s.proposalRepo.UpdateStatus(ctx, id, status, closedAt); err != nil {
		return "", fmt.Errorf("failed to update proposal status: %w", err)
	}
	return status, nil
}

func (s *ProposalService) carriedCreatedAt(current string) string {
	if current == "" {
		return timestamp(s.now())
	}
	return current
}

func validateTitleUpdate(title models.Optional[string]) error {
	if title.Set && (title.Null || strings.TrimSpace(title.Value) == "") {
		return validationErrorf("Title cannot be empty")
	}
	return nil
}

func validateBudgetUpdate(budget models.Optional[float64]) error {
	if budget.Set && !budget.Null && budget.Value < 0 {
		return validationErrorf("Budget cannot be negative")
	}
	return nil
}

func mergeTitle(title models.Optional[string], current string) string {
	if title.Set && !title.Null {
		return strings.TrimSpace(title.Value)
	}
	return current
}

// carriedCreatedBy attributes records that have no creator to "system".
func carriedCreatedBy(current *string) *string {
	if current == nil {
		system := "system"
		return &system
	}
	return current
}

func nonEmpty(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}
