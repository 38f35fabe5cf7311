package models

// Task is an actionable item scoped to one proposal. OrganizationID is
// denormalized from the proposal so tasks can be filtered without a join.
type Task struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	ProposalID     string     `json:"proposalId"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Status         TaskStatus `json:"status"`
	Budget         *float64   `json:"budget"`
	Deadline       *string    `json:"deadline"`
	Assignee       *string    `json:"assignee"`
	CreatedBy      *string    `json:"createdBy"`
	CreatedAt      string     `json:"createdAt"`
	UpdatedAt      *string    `json:"updatedAt"`
}
