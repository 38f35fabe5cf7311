package repository

import (
	"context"

	"github.com/yukikurage/proposal-board-api/internal/models"
	"github.com/yukikurage/proposal-board-api/internal/utils"
)

// Gateway executes GraphQL operations against the document store.
// *graphql.Client satisfies it.
type Gateway interface {
	Do(ctx context.Context, endpoint, query string, variables map[string]any, out any) error
	DriveID() string
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// List returns every organization in the drive
	List(ctx context.Context) ([]models.Organization, error)

	// FindByID fetches one organization
	FindByID(ctx context.Context, id string) (*models.Organization, error)

	// Create creates an empty document shell and returns its id
	Create(ctx context.Context, name string) (string, error)

	// SetName renames an organization
	SetName(ctx context.Context, id, name string) error

	// SetDescription sets or clears the description
	SetDescription(ctx context.Context, id string, description *string) error

	// SetOwner sets or clears the owner
	SetOwner(ctx context.Context, id string, ownerID *string) error

	// Delete hard-deletes the document
	Delete(ctx context.Context, id string) error
}

// ProposalRepository defines the interface for proposal data access
type ProposalRepository interface {
	// List returns every proposal in the drive, across organizations
	List(ctx context.Context) ([]models.Proposal, error)

	// FindByID fetches one proposal
	FindByID(ctx context.Context, id string) (*models.Proposal, error)

	// Create creates an empty document shell and returns its id
	Create(ctx context.Context, title string) (string, error)

	// SetDetails replaces the full detail state of a proposal
	SetDetails(ctx context.Context, id string, details ProposalDetails) error

	// UpdateStatus sets the status; closedAt is only sent when non-nil
	UpdateStatus(ctx context.Context, id string, status models.ProposalStatus, closedAt *string) error

	// Delete hard-deletes the document
	Delete(ctx context.Context, id string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// List returns every task in the drive, across proposals
	List(ctx context.Context) ([]models.Task, error)

	// FindByID fetches one task
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// Create creates an empty document shell and returns its id
	Create(ctx context.Context, title string) (string, error)

	// SetDetails replaces the full detail state of a task
	SetDetails(ctx context.Context, id string, details TaskDetails) error

	// UpdateStatus sets the status and the modification stamp
	UpdateStatus(ctx context.Context, id string, status models.TaskStatus, updatedAt string) error

	// Assign sets or clears the assignee
	Assign(ctx context.Context, id string, assignee *string, updatedAt string) error

	// Delete hard-deletes the document
	Delete(ctx context.Context, id string) error
}

// ProposalDetails is the state written by SetDetails. The store replaces the
// whole detail set, so callers must supply every field they want to keep.
type ProposalDetails struct {
	Title          string   `json:"title"`
	Description    *string  `json:"description,omitempty"`
	OrganizationID string   `json:"daoId"`
	Budget         *float64 `json:"budget,omitempty"`
	Deadline       *string  `json:"deadline,omitempty"`
	CreatedBy      *string  `json:"createdBy,omitempty"`
	CreatedAt      string   `json:"createdAt"`
}

// TaskDetails is the state written by SetDetails, with the same replace semantics.
type TaskDetails struct {
	Title          string   `json:"title"`
	Description    *string  `json:"description,omitempty"`
	Assignee       *string  `json:"assignee,omitempty"`
	ProposalID     string   `json:"proposalId"`
	OrganizationID string   `json:"daoId"`
	Deadline       *string  `json:"deadline,omitempty"`
	Budget         *float64 `json:"budget,omitempty"`
	CreatedBy      *string  `json:"createdBy,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      *string  `json:"updatedAt,omitempty"`
}

// CascadeRunRepository defines the interface for the cascade journal
type CascadeRunRepository interface {
	// Create inserts a new run
	Create(run *models.CascadeRun) error

	// Update saves progress and the final status of a run
	Update(run *models.CascadeRun) error

	// FindByID finds a run by ID
	FindByID(id string) (*models.CascadeRun, error)

	// List retrieves runs newest first with filtering and pagination
	List(filter CascadeRunFilter) ([]models.CascadeRun, int64, error)
}

// CascadeRunFilter holds filtering options for listing cascade runs
type CascadeRunFilter struct {
	EntityType string
	EntityID   string
	Status     *models.CascadeRunStatus
	Pagination utils.PaginationParams
}
