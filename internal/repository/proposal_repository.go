package repository

import (
	"context"

	"github.com/yukikurage/proposal-board-api/internal/graphql"
	"github.com/yukikurage/proposal-board-api/internal/models"
)

// GatewayProposalRepository is a document store implementation of ProposalRepository
type GatewayProposalRepository struct {
	gw Gateway
}

// NewProposalRepository creates a new ProposalRepository
func NewProposalRepository(gw Gateway) ProposalRepository {
	return &GatewayProposalRepository{gw: gw}
}

// List returns every proposal in the drive, across organizations
func (r *GatewayProposalRepository) List(ctx context.Context) ([]models.Proposal, error) {
	var out struct {
		Proposal struct {
			GetDocuments []Document[ProposalState] `json:"getDocuments"`
		} `json:"Proposal"`
	}
	vars := map[string]any{"driveId": r.gw.DriveID()}
	if err := r.gw.Do(ctx, graphql.EndpointProposal, listProposalsQuery, vars, &out); err != nil {
		return nil, err
	}

	proposals := make([]models.Proposal, 0, len(out.Proposal.GetDocuments))
	for _, doc := range out.Proposal.GetDocuments {
		proposals = append(proposals, MapProposal(doc))
	}
	return proposals, nil
}

// FindByID fetches one proposal
func (r *GatewayProposalRepository) FindByID(ctx context.Context, id string) (*models.Proposal, error) {
	var out struct {
		Proposal struct {
			GetDocument *Document[ProposalState] `json:"getDocument"`
		} `json:"Proposal"`
	}
	if err := r.gw.Do(ctx, graphql.EndpointProposal, getProposalQuery, map[string]any{"docId": id}, &out); err != nil {
		return nil, err
	}
	if out.Proposal.GetDocument == nil {
		return nil, graphql.ErrNoData
	}

	proposal := MapProposal(*out.Proposal.GetDocument)
	return &proposal, nil
}

// Create creates an empty document shell and returns its id
func (r *GatewayProposalRepository) Create(ctx context.Context, title string) (string, error) {
	return createDocument(ctx, r.gw, graphql.EndpointProposal, createProposalMutation, "Proposal_createDocument", title)
}

// SetDetails replaces the full detail state of a proposal
func (r *GatewayProposalRepository) SetDetails(ctx context.Context, id string, details ProposalDetails) error {
	return mutate(ctx, r.gw, graphql.EndpointProposal, setProposalDetailsMutation, id, details)
}

// UpdateStatus sets the status; closedAt is only sent when non-nil
func (r *GatewayProposalRepository) UpdateStatus(ctx context.Context, id string, status models.ProposalStatus, closedAt *string) error {
	input := map[string]any{"status": string(status)}
	if closedAt != nil {
		input["closedAt"] = *closedAt
	}
	return mutate(ctx, r.gw, graphql.EndpointProposal, updateProposalStatusMutation, id, input)
}

// Delete hard-deletes the document
func (r *GatewayProposalRepository) Delete(ctx context.Context, id string) error {
	return deleteDocument(ctx, r.gw, id)
}
