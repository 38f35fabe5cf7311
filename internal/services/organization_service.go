package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yukikurage/proposal-board-api/internal/models"
	"github.com/yukikurage/proposal-board-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgRepo      repository.OrganizationRepository
	proposalRepo repository.ProposalRepository
	taskRepo     repository.TaskRepository
	logger       *slog.Logger
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(
	orgRepo repository.OrganizationRepository,
	proposalRepo repository.ProposalRepository,
	taskRepo repository.TaskRepository,
	logger *slog.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:      orgRepo,
		proposalRepo: proposalRepo,
		taskRepo:     taskRepo,
		logger:       defaultLogger(logger),
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name        string
	Description *string
	OwnerID     *string
}

// UpdateOrganizationInput represents a partial organization update.
// A null description clears it.
type UpdateOrganizationInput struct {
	Name        *string
	Description models.Optional[string]
}

// Board is an organization with the proposals and tasks that belong to it.
type Board struct {
	Organization *models.Organization
	Proposals    []models.Proposal
	Tasks        []models.Task
	Summary      BoardSummary
}

// BoardSummary counts board items per status. Every known status has a key.
type BoardSummary struct {
	Proposals StatusCounts `json:"proposals"`
	Tasks     StatusCounts `json:"tasks"`
}

type StatusCounts struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

// ListOrganizations returns every organization in the drive.
func (s *OrganizationService) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	orgs, err := s.orgRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// GetOrganization returns one organization.
func (s *OrganizationService) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// CreateOrganization creates the document shell and then sets its state.
// If setting state fails the shell is deleted again.
func (s *OrganizationService) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", validationErrorf("Name is required")
	}

	id, err := s.orgRepo.Create(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to create organization: %w", err)
	}

	if err := s.setInitialState(ctx, id, name, input); err != nil {
		compensate(ctx, s.logger, "organization", id, s.orgRepo.Delete)
		return "", err
	}

	return id, nil
}

func (s *OrganizationService) setInitialState(ctx context.Context, id, name string, input CreateOrganizationInput) error {
	if err := s.orgRepo.SetName(ctx, id, name); err != nil {
		return fmt.Errorf("failed to set organization name: %w", err)
	}
	if input.Description != nil && *input.Description != "" {
		if err := s.orgRepo.SetDescription(ctx, id, input.Description); err != nil {
			return fmt.Errorf("failed to set organization description: %w", err)
		}
	}
	if input.OwnerID != nil && *input.OwnerID != "" {
		if err := s.orgRepo.SetOwner(ctx, id, input.OwnerID); err != nil {
			return fmt.Errorf("failed to set organization owner: %w", err)
		}
	}
	return nil
}

// UpdateOrganization sets the name and/or description.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, id string, input UpdateOrganizationInput) error {
	if input.Name == nil && !input.Description.Set {
		return validationErrorf("Name or description is required")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return validationErrorf("Name cannot be empty")
	}

	if input.Name != nil {
		if err := s.orgRepo.SetName(ctx, id, strings.TrimSpace(*input.Name)); err != nil {
			return fmt.Errorf("failed to update organization name: %w", err)
		}
	}
	if input.Description.Set {
		if err := s.orgRepo.SetDescription(ctx, id, input.Description.Merge(nil)); err != nil {
			return fmt.Errorf("failed to update organization description: %w", err)
		}
	}
	return nil
}

// GetBoard fetches the organization, proposals and tasks concurrently and
// keeps only the items belonging to the organization.
func (s *OrganizationService) GetBoard(ctx context.Context, id string) (*Board, error) {
	var (
		org       *models.Organization
		proposals []models.Proposal
		tasks     []models.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		org, err = s.orgRepo.FindByID(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to find organization: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		proposals, err = s.proposalRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list proposals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tasks, err = s.taskRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	board := &Board{
		Organization: org,
		Proposals:    proposalsOf(proposals, id),
		Tasks:        tasksOfOrganization(tasks, id),
	}
	board.Summary = summarize(board.Proposals, board.Tasks)
	return board, nil
}

func summarize(proposals []models.Proposal, tasks []models.Task) BoardSummary {
	summary := BoardSummary{
		Proposals: StatusCounts{Total: len(proposals), ByStatus: make(map[string]int)},
		Tasks:     StatusCounts{Total: len(tasks), ByStatus: make(map[string]int)},
	}
	for _, status := range models.ProposalStatuses {
		summary.Proposals.ByStatus[string(status)] = 0
	}
	for _, status := range models.TaskStatuses {
		summary.Tasks.ByStatus[string(status)] = 0
	}

	for _, p := range proposals {
		summary.Proposals.ByStatus[string(p.Status)]++
	}
	for _, t := range tasks {
		summary.Tasks.ByStatus[string(t.Status)]++
	}
	return summary
}

// Dependents are matched by exact id. An empty foreign key matches nothing.

func proposalsOf(all []models.Proposal, orgID string) []models.Proposal {
	matched := make([]models.Proposal, 0)
	for _, p := range all {
		if orgID != "" && p.OrganizationID == orgID {
			matched = append(matched, p)
		}
	}
	return matched
}

func tasksOfOrganization(all []models.Task, orgID string) []models.Task {
	matched := make([]models.Task, 0)
	for _, t := range all {
		if orgID != "" && t.OrganizationID == orgID {
			matched = append(matched, t)
		}
	}
	return matched
}

func tasksOfProposal(all []models.Task, proposalID string) []models.Task {
	matched := make([]models.Task, 0)
	for _, t := range all {
		if proposalID != "" && t.ProposalID == proposalID {
			matched = append(matched, t)
		}
	}
	return matched
}
