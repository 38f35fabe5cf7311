package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/proposal-board-api/internal/models"
)

func TestToProposalDTO_Hints(t *testing.T) {
	tests := []struct {
		status     models.ProposalStatus
		next       *models.ProposalStatus
		action     *string
		statusText string
	}{
		{models.ProposalStatusDraft, ptr(models.ProposalStatusOpen), ptr("Open"), "Draft"},
		{models.ProposalStatusOpen, ptr(models.ProposalStatusClosed), ptr("Close"), "Open"},
		{models.ProposalStatusClosed, ptr(models.ProposalStatusArchived), ptr("Archive"), "Closed"},
		{models.ProposalStatusArchived, nil, nil, "Archived"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			dto := ToProposalDTO(models.Proposal{ID: "p", Status: tt.status})

			assert.Equal(t, tt.next, dto.NextStatus)
			assert.Equal(t, tt.action, dto.ActionLabel)
			assert.Equal(t, tt.statusText, dto.StatusLabel)
		})
	}
}

func TestToTaskDTO_JSONShape(t *testing.T) {
	dto := ToTaskDTO(models.Task{ID: "task-1", ProposalID: "p", Status: models.TaskStatusDone})

	raw, err := json.Marshal(dto)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "task-1", body["id"])
	assert.Equal(t, "p", body["proposalId"])
	assert.Equal(t, "Done", body["statusLabel"])
	assert.Contains(t, body, "nextStatus")
	assert.Nil(t, body["nextStatus"])
	assert.Nil(t, body["actionLabel"])
}

func TestToOrganizationDTO_Archived(t *testing.T) {
	assert.True(t, ToOrganizationDTO(models.Organization{Name: "[Archived] Acme"}).Archived)
	assert.False(t, ToOrganizationDTO(models.Organization{Name: "Acme"}).Archived)
}

func TestToDTOs_EmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, ToTaskDTOs(nil))
	assert.NotNil(t, ToProposalDTOs(nil))
	assert.NotNil(t, ToOrganizationDTOs(nil))
}

func ptr[T any](v T) *T { return &v }
