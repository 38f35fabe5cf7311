package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/proposal-board-api/internal/config"
)

func TestSessionHandler_Lifecycle(t *testing.T) {
	env := setupAPITestEnv(t, config.CascadeModeArchive)

	w := env.do(http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", decode(t, w)["actor"])

	w = env.do(http.MethodPost, "/api/session", map[string]any{"name": "  alice "})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode(t, w)["actor"])

	w = env.do(http.MethodGet, "/api/session", nil)
	assert.Equal(t, "alice", decode(t, w)["actor"])

	w = env.do(http.MethodDelete, "/api/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/session", nil)
	assert.Equal(t, "anonymous", decode(t, w)["actor"])
}

func TestSessionHandler_CreateSessionRequiresName(t *testing.T) {
	env := setupAPITestEnv(t, config.CascadeModeArchive)

	for _, payload := range []map[string]any{{}, {"name": "   "}} {
		w := env.do(http.MethodPost, "/api/session", payload)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Name is required", decode(t, w)["error"])
	}
}

func TestSessionHandler_ActorStampsCreatedBy(t *testing.T) {
	env := setupAPITestEnv(t, config.CascadeModeArchive)
	env.seedGraph()

	w := env.do(http.MethodPost, "/api/session", map[string]any{"name": "alice"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/api/tasks", map[string]any{
		"organizationId": "dao-1",
		"proposalId":     "proposal-1",
		"title":          "Review",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	id := decode(t, w)["taskId"].(string)
	assert.Equal(t, "alice", env.store.Document(id).State["createdBy"])
}
