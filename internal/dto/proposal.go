package dto

import (
	"github.com/yukikurage/proposal-board-api/internal/models"
)

// ProposalDTO represents a proposal in API responses
type ProposalDTO struct {
	models.Proposal
	StatusLabel string                 `json:"statusLabel"`
	NextStatus  *models.ProposalStatus `json:"nextStatus"`
	ActionLabel *string                `json:"actionLabel"`
}

// ToProposalDTO converts a Proposal model to ProposalDTO
func ToProposalDTO(proposal models.Proposal) ProposalDTO {
	dto := ProposalDTO{
		Proposal:    proposal,
		StatusLabel: models.StatusLabel(string(proposal.Status)),
	}
	if next, ok := models.NextProposalStatus(proposal.Status); ok {
		dto.NextStatus = &next
	}
	if label, ok := models.ActionLabel(string(proposal.Status)); ok {
		dto.ActionLabel = &label
	}
	return dto
}

// ToProposalDTOs converts proposals, returning an empty slice rather than nil
func ToProposalDTOs(proposals []models.Proposal) []ProposalDTO {
	dtos := make([]ProposalDTO, len(proposals))
	for i, proposal := range proposals {
		dtos[i] = ToProposalDTO(proposal)
	}
	return dtos
}
