package dto

import (
	"strings"

	"github.com/yukikurage/proposal-board-api/internal/constants"
	"github.com/yukikurage/proposal-board-api/internal/models"
	"github.com/yukikurage/proposal-board-api/internal/services"
)

// OrganizationDTO represents an organization in API responses. Archived is
// derived from the name prefix written by the archive cascade.
type OrganizationDTO struct {
	models.Organization
	Archived bool `json:"archived"`
}

// BoardDTO is an organization with its proposals, tasks and status counts
type BoardDTO struct {
	Organization OrganizationDTO       `json:"organization"`
	Proposals    []ProposalDTO         `json:"proposals"`
	Tasks        []TaskDTO             `json:"tasks"`
	Summary      services.BoardSummary `json:"summary"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		Organization: org,
		Archived:     strings.HasPrefix(org.Name, constants.ArchivedOrganizationPrefix),
	}
}

// ToOrganizationDTOs converts organizations, returning an empty slice rather than nil
func ToOrganizationDTOs(orgs []models.Organization) []OrganizationDTO {
	dtos := make([]OrganizationDTO, len(orgs))
	for i, org := range orgs {
		dtos[i] = ToOrganizationDTO(org)
	}
	return dtos
}

// ToBoardDTO converts a board view
func ToBoardDTO(board *services.Board) BoardDTO {
	return BoardDTO{
		Organization: ToOrganizationDTO(*board.Organization),
		Proposals:    ToProposalDTOs(board.Proposals),
		Tasks:        ToTaskDTOs(board.Tasks),
		Summary:      board.Summary,
	}
}
