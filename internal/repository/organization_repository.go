package repository

import (
	"context"

	"github.com/yukikurage/proposal-board-api/internal/graphql"
	"github.com/yukikurage/proposal-board-api/internal/models"
)

// GatewayOrganizationRepository is a document store implementation of OrganizationRepository
type GatewayOrganizationRepository struct {
	gw Gateway
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(gw Gateway) OrganizationRepository {
	return &GatewayOrganizationRepository{gw: gw}
}

// List returns every organization in the drive
func (r *GatewayOrganizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	var out struct {
		Dao struct {
			GetDocuments []Document[OrganizationState] `json:"getDocuments"`
		} `json:"Dao"`
	}
	vars := map[string]any{"driveId": r.gw.DriveID()}
	if err := r.gw.Do(ctx, graphql.EndpointOrganization, listOrganizationsQuery, vars, &out); err != nil {
		return nil, err
	}

	orgs := make([]models.Organization, 0, len(out.Dao.GetDocuments))
	for _, doc := range out.Dao.GetDocuments {
		orgs = append(orgs, MapOrganization(doc))
	}
	return orgs, nil
}

// FindByID fetches one organization
func (r *GatewayOrganizationRepository) FindByID(ctx context.Context, id string) (*models.Organization, error) {
	var out struct {
		Dao struct {
			GetDocument *Document[OrganizationState] `json:"getDocument"`
		} `json:"Dao"`
	}
	if err := r.gw.Do(ctx, graphql.EndpointOrganization, getOrganizationQuery, map[string]any{"docId": id}, &out); err != nil {
		return nil, err
	}
	if out.Dao.GetDocument == nil {
		return nil, graphql.ErrNoData
	}

	org := MapOrganization(*out.Dao.GetDocument)
	return &org, nil
}

// Create creates an empty document shell and returns its id
func (r *GatewayOrganizationRepository) Create(ctx context.Context, name string) (string, error) {
	return createDocument(ctx, r.gw, graphql.EndpointOrganization, createOrganizationMutation, "Dao_createDocument", name)
}

// SetName renames an organization
func (r *GatewayOrganizationRepository) SetName(ctx context.Context, id, name string) error {
	return mutate(ctx, r.gw, graphql.EndpointOrganization, setOrganizationNameMutation, id, map[string]any{"name": name})
}

// SetDescription sets or clears the description
func (r *GatewayOrganizationRepository) SetDescription(ctx context.Context, id string, description *string) error {
	return mutate(ctx, r.gw, graphql.EndpointOrganization, setOrganizationDescriptionMutation, id, map[string]any{"description": description})
}

// SetOwner sets or clears the owner
func (r *GatewayOrganizationRepository) SetOwner(ctx context.Context, id string, ownerID *string) error {
	return mutate(ctx, r.gw, graphql.EndpointOrganization, setOrganizationOwnerMutation, id, map[string]any{"ownerUserId": ownerID})
}

// Delete hard-deletes the document
func (r *GatewayOrganizationRepository) Delete(ctx context.Context, id string) error {
	return deleteDocument(ctx, r.gw, id)
}
