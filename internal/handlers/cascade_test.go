package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/proposal-board-api/internal/config"
	"github.com/yukikurage/proposal-board-api/internal/graphql/graphqltest"
)

func TestCascadeHandler_JournalsDeletes(t *testing.T) {
	env := setupAPITestEnv(t, config.CascadeModeDelete)
	env.seedGraph()

	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/session", map[string]any{"name": "ops"}).Code)

	w := env.do(http.MethodDelete, "/api/proposals/proposal-3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	runID := decode(t, w)["cascadeId"].(string)

	w = env.do(http.MethodGet, "/api/cascades", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)

	cascades := body["cascades"].([]any)
	require.Len(t, cascades, 1)
	run := cascades[0].(map[string]any)
	assert.Equal(t, runID, run["id"])
	assert.Equal(t, "proposal", run["entityType"])
	assert.Equal(t, "proposal-3", run["entityId"])
	assert.Equal(t, "delete", run["mode"])
	assert.Equal(t, "completed", run["status"])
	assert.Equal(t, "ops", run["actor"])
	assert.EqualValues(t, 1, run["tasks"])

	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(t, 1, pagination["total"])
	assert.EqualValues(t, 1, pagination["page"])

	w = env.do(http.MethodGet, "/api/cascades/"+runID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, runID, decode(t, w)["cascade"].(map[string]any)["id"])
}

func TestCascadeHandler_RecordsFailedRun(t *testing.T) {
	env := setupAPITestEnv(t, config.CascadeModeDelete)
	env.seedGraph()
	env.store.FailWith(func(call graphqltest.Call, _ int) string {
		if call.Operation == "deleteDocument" && call.DocID() == "proposal-2" {
			return "locked"
		}
		return ""
	})

	w := env.do(http.MethodDelete, "/api/organizations/dao-1", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	w = env.do(http.MethodGet, "/api/cascades?status=failed&entityType=organization", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cascades := decode(t, w)["cascades"].([]any)
	require.Len(t, cascades, 1)
	run := cascades[0].(map[string]any)
	assert.Equal(t, "dao-1", run["entityId"])
	assert.EqualValues(t, 5, run["tasks"])
	assert.EqualValues(t, 1, run["proposals"])
	assert.Contains(t, run["error"], "locked")
	assert.NotNil(t, env.store.Document("dao-1"))
}

func TestCascadeHandler_Errors(t *testing.T) {
	env := setupAPITestEnv(t, config.CascadeModeArchive)

	w := env.do(http.MethodGet, "/api/cascades/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w)["code"])

	w = env.do(http.MethodGet, "/api/cascades?status=exploded", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
