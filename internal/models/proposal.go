package models

// Proposal is a decision or work item scoped to one organization.
type Proposal struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organizationId"`
	Title          string         `json:"title"`
	Description    *string        `json:"description"`
	Status         ProposalStatus `json:"status"`
	Budget         *float64       `json:"budget"`
	Deadline       *string        `json:"deadline"`
	CreatedBy      *string        `json:"createdBy"`
	CreatedAt      string         `json:"createdAt"`
	ClosedAt       *string        `json:"closedAt"`
}
