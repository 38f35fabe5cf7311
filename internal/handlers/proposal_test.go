package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/proposal-board-api/internal/config"
	"github.com/yukikurage/proposal-board-api/internal/graphql/graphqltest"
)

// ProposalHandlerTestSuite runs the proposal endpoints against a seeded store
// in delete mode.
type ProposalHandlerTestSuite struct {
	suite.Suite
	env *apiTestEnv
}

func (suite *ProposalHandlerTestSuite) SetupTest() {
	suite.env = setupAPITestEnv(suite.T(), config.CascadeModeDelete)
	suite.env.seedGraph()
}

func TestProposalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProposalHandlerTestSuite))
}

func (suite *ProposalHandlerTestSuite) TestCreateProposal() {
	w := suite.env.do(http.MethodPost, "/api/proposals", map[string]any{
		"organizationId": "dao-1",
		"title":          "Launch",
		"budget":         250,
	})

	suite.Require().Equal(http.StatusCreated, w.Code)
	id, _ := decode(suite.T(), w)["proposalId"].(string)
	suite.Require().NotEmpty(id)

	doc := suite.env.store.Document(id)
	suite.Require().NotNil(doc)
	suite.Equal("Launch", doc.State["title"])
	suite.Equal("dao-1", doc.State["daoId"])
	suite.EqualValues(250, doc.State["budget"])
	suite.Equal("anonymous", doc.State["createdBy"])
}

func (suite *ProposalHandlerTestSuite) TestCreateProposalWithoutTitleNeverReachesStore() {
	before := len(suite.env.store.Calls())

	w := suite.env.do(http.MethodPost, "/api/proposals", map[string]any{"organizationId": "dao-1"})

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Title is required", decode(suite.T(), w)["error"])
	suite.Len(suite.env.store.Calls(), before)
}

func (suite *ProposalHandlerTestSuite) TestCreateProposalWithoutOrganization() {
	w := suite.env.do(http.MethodPost, "/api/proposals", map[string]any{"title": "Launch"})

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Organization ID is required", decode(suite.T(), w)["error"])
	suite.Empty(suite.env.store.CallsTo("createDocument"))
}

func (suite *ProposalHandlerTestSuite) TestCreateProposalCompensatesFailedDetails() {
	suite.env.store.FailWith(func(call graphqltest.Call, _ int) string {
		if call.Operation == "setProposalDetails" {
			return "details rejected"
		}
		return ""
	})

	w := suite.env.do(http.MethodPost, "/api/proposals", map[string]any{
		"organizationId": "dao-1",
		"title":          "Launch",
	})

	suite.Require().Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(decode(suite.T(), w)["error"], "details rejected")

	created := suite.env.store.CallsTo("createDocument")
	deleted := suite.env.store.CallsTo("deleteDocument")
	suite.Require().Len(created, 1)
	suite.Require().Len(deleted, 1)

	suite.env.store.FailWith(nil)
	w = suite.env.do(http.MethodGet, "/api/proposals", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.EqualValues(3, decode(suite.T(), w)["count"])
}

func (suite *ProposalHandlerTestSuite) TestListProposals() {
	w := suite.env.do(http.MethodGet, "/api/proposals?organizationId=dao-1", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	body := decode(suite.T(), w)
	suite.EqualValues(2, body["count"])

	proposals := body["proposals"].([]any)
	first := proposals[0].(map[string]any)
	suite.Equal("proposal-1", first["id"])
	suite.Equal("CLOSED", first["nextStatus"])
	suite.Equal("Close", first["actionLabel"])
	suite.Equal("Open", first["statusLabel"])
}

func (suite *ProposalHandlerTestSuite) TestGetProposal() {
	w := suite.env.do(http.MethodGet, "/api/proposals/proposal-2", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	proposal := decode(suite.T(), w)["proposal"].(map[string]any)
	suite.Equal("Budget", proposal["title"])
	suite.Equal("DRAFT", proposal["status"])
}

func (suite *ProposalHandlerTestSuite) TestUpdateProposalKeepsOmittedFields() {
	suite.env.store.Seed("Proposal", "proposal-9", "A", map[string]any{
		"title":    "A",
		"daoId":    "dao-1",
		"budget":   100,
		"deadline": "2025-01-01T00:00:00Z",
		"status":   "DRAFT",
	})

	w := suite.env.do(http.MethodPatch, "/api/proposals/proposal-9", map[string]any{"budget": 200})

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("proposal-9", decode(suite.T(), w)["proposalId"])

	state := suite.env.store.Document("proposal-9").State
	suite.Equal("A", state["title"])
	suite.EqualValues(200, state["budget"])
	suite.Equal("2025-01-01T00:00:00Z", state["deadline"])
}

func (suite *ProposalHandlerTestSuite) TestUpdateProposalRejectsClearedTitle() {
	before := len(suite.env.store.Calls())

	w := suite.env.doRaw(http.MethodPatch, "/api/proposals/proposal-1", `{"title": null}`)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Len(suite.env.store.Calls(), before)
}

func (suite *ProposalHandlerTestSuite) TestUpdateProposalStatus() {
	w := suite.env.do(http.MethodPatch, "/api/proposals/proposal-1/status", map[string]any{"status": "CLOSED"})

	suite.Require().Equal(http.StatusOK, w.Code)
	body := decode(suite.T(), w)
	suite.Equal("proposal-1", body["proposalId"])
	suite.Equal("CLOSED", body["status"])

	state := suite.env.store.Document("proposal-1").State
	suite.Equal("CLOSED", state["status"])
	suite.NotEmpty(state["closedAt"])
}

func (suite *ProposalHandlerTestSuite) TestUpdateProposalStatusRejectsSkips() {
	cases := map[string]map[string]any{
		"missing":       {},
		"unknown":       {"status": "MERGED"},
		"not successor": {"status": "ARCHIVED"},
	}

	for name, payload := range cases {
		suite.Run(name, func() {
			w := suite.env.do(http.MethodPatch, "/api/proposals/proposal-1/status", payload)

			suite.Equal(http.StatusBadRequest, w.Code)
			suite.Equal("OPEN", suite.env.store.Document("proposal-1").State["status"])
		})
	}
	suite.Empty(suite.env.store.CallsTo("updateProposalStatus"))
}

func (suite *ProposalHandlerTestSuite) TestDeleteProposal() {
	w := suite.env.do(http.MethodDelete, "/api/proposals/proposal-1", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	body := decode(suite.T(), w)
	suite.Equal(true, body["deleted"])
	suite.EqualValues(3, body["deletedTasks"])
	suite.NotContains(body, "archivedTasks")

	suite.Nil(suite.env.store.Document("proposal-1"))
	suite.Nil(suite.env.store.Document("task-3"))
	suite.NotNil(suite.env.store.Document("task-4"))
}

func (suite *ProposalHandlerTestSuite) TestDeleteProposalStopsAtFirstFailure() {
	suite.env.store.FailWith(func(call graphqltest.Call, _ int) string {
		if call.Operation == "deleteDocument" && call.DocID() == "task-2" {
			return "store unavailable"
		}
		return ""
	})

	w := suite.env.do(http.MethodDelete, "/api/proposals/proposal-1", nil)

	suite.Require().Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(decode(suite.T(), w)["error"], "store unavailable")

	suite.Nil(suite.env.store.Document("task-1"))
	suite.NotNil(suite.env.store.Document("task-2"))
	suite.NotNil(suite.env.store.Document("task-3"))
	suite.NotNil(suite.env.store.Document("proposal-1"))
}

func (suite *ProposalHandlerTestSuite) TestSuggestTasksWithoutKey() {
	w := suite.env.do(http.MethodPost, "/api/proposals/proposal-1/tasks/suggest", nil)

	suite.Require().Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("SERVICE_UNAVAILABLE", decode(suite.T(), w)["code"])
}

func TestProposalHandler_DeleteProposal_ArchiveMode(t *testing.T) {
	env := setupAPITestEnv(t, config.CascadeModeArchive)
	env.seedGraph()

	w := env.do(http.MethodDelete, "/api/proposals/proposal-2", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["deleted"])
	assert.EqualValues(t, 2, body["archivedTasks"])
	assert.NotContains(t, body, "deletedTasks")
	assert.Equal(t, "ARCHIVED", env.store.Document("proposal-2").State["status"])
	assert.Equal(t, "ARCHIVED", env.store.Document("task-5").State["status"])
}
