package repository

import (
	"github.com/yukikurage/proposal-board-api/internal/models"
)

// Document is the raw envelope returned by the store for every document type.
type Document[S any] struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	DocumentType         string `json:"documentType"`
	CreatedAtUtcIso      string `json:"createdAtUtcIso"`
	LastModifiedAtUtcIso string `json:"lastModifiedAtUtcIso"`
	Revision             int    `json:"revision"`
	State                S      `json:"state"`
}

// OrganizationState is the state blob of a "Dao" document. Every field may be null.
type OrganizationState struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	OwnerUserID *string         `json:"ownerUserId"`
	Members     []models.Member `json:"members"`
}

type ProposalState struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	CreatedBy   *string  `json:"createdBy"`
	CreatedAt   *string  `json:"createdAt"`
	DaoID       *string  `json:"daoId"`
	Budget      *float64 `json:"budget"`
	Deadline    *string  `json:"deadline"`
	ClosedAt    *string  `json:"closedAt"`
}

type TaskState struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Assignee    *string  `json:"assignee"`
	ProposalID  *string  `json:"proposalId"`
	DaoID       *string  `json:"daoId"`
	Deadline    *string  `json:"deadline"`
	Budget      *float64 `json:"budget"`
	CreatedBy   *string  `json:"createdBy"`
	CreatedAt   *string  `json:"createdAt"`
	UpdatedAt   *string  `json:"updatedAt"`
}

// MapOrganization converts a raw document into an Organization. It never fails.
func MapOrganization(doc Document[OrganizationState]) models.Organization {
	members := doc.State.Members
	if members == nil {
		members = []models.Member{}
	}

	return models.Organization{
		ID:          doc.ID,
		Name:        firstNonEmpty(doc.State.Name, &doc.Name),
		Description: optionalString(doc.State.Description),
		OwnerID:     optionalString(doc.State.OwnerUserID),
		Members:     members,
		CreatedAt:   doc.CreatedAtUtcIso,
	}
}

// MapProposal converts a raw document into a Proposal. A missing daoId maps
// to "", which matches no organization when filtering.
func MapProposal(doc Document[ProposalState]) models.Proposal {
	return models.Proposal{
		ID:             doc.ID,
		OrganizationID: firstNonEmpty(doc.State.DaoID),
		Title:          firstNonEmpty(doc.State.Title, &doc.Name),
		Description:    optionalString(doc.State.Description),
		Status:         models.ParseProposalStatus(firstNonEmpty(doc.State.Status)),
		Budget:         doc.State.Budget,
		Deadline:       optionalString(doc.State.Deadline),
		CreatedBy:      optionalString(doc.State.CreatedBy),
		CreatedAt:      firstNonEmpty(doc.State.CreatedAt, &doc.CreatedAtUtcIso),
		ClosedAt:       optionalString(doc.State.ClosedAt),
	}
}

// MapTask converts a raw document into a Task.
func MapTask(doc Document[TaskState]) models.Task {
	return models.Task{
		ID:             doc.ID,
		OrganizationID: firstNonEmpty(doc.State.DaoID),
		ProposalID:     firstNonEmpty(doc.State.ProposalID),
		Title:          firstNonEmpty(doc.State.Title, &doc.Name),
		Description:    optionalString(doc.State.Description),
		Status:         models.ParseTaskStatus(firstNonEmpty(doc.State.Status)),
		Budget:         doc.State.Budget,
		Deadline:       optionalString(doc.State.Deadline),
		Assignee:       optionalString(doc.State.Assignee),
		CreatedBy:      optionalString(doc.State.CreatedBy),
		CreatedAt:      firstNonEmpty(doc.State.CreatedAt, &doc.CreatedAtUtcIso),
		UpdatedAt:      optionalString(firstNonNil(doc.State.UpdatedAt, &doc.LastModifiedAtUtcIso)),
	}
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func firstNonNil(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}

func optionalString(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	s := *v
	return &s
}
