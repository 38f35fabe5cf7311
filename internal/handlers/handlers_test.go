package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/proposal-board-api/internal/constants"
	"github.com/yukikurage/proposal-board-api/internal/database"
	"github.com/yukikurage/proposal-board-api/internal/graphql"
	"github.com/yukikurage/proposal-board-api/internal/graphql/graphqltest"
	"github.com/yukikurage/proposal-board-api/internal/middleware"
	"github.com/yukikurage/proposal-board-api/internal/repository"
	"github.com/yukikurage/proposal-board-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiTestEnv struct {
	t       *testing.T
	store   *graphqltest.Server
	router  *gin.Engine
	cookies []*http.Cookie
}

func setupAPITestEnv(t *testing.T, mode string) *apiTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := graphqltest.NewServer()
	t.Cleanup(store.Close)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := graphql.NewClient(graphql.Config{BaseURL: store.URL, DriveID: "drive-test"})
	orgRepo := repository.NewOrganizationRepository(client)
	proposalRepo := repository.NewProposalRepository(client)
	taskRepo := repository.NewTaskRepository(client)
	runRepo := repository.NewCascadeRunRepository(db)

	lifecycle := services.NewLifecycleService(mode, orgRepo, proposalRepo, taskRepo, runRepo, nil, logger)
	h := Handlers{
		Organization: NewOrganizationHandler(services.NewOrganizationService(orgRepo, proposalRepo, taskRepo, logger), lifecycle, logger),
		Proposal: NewProposalHandler(
			services.NewProposalService(proposalRepo, logger),
			lifecycle,
			services.NewSuggestionService(nil, "", proposalRepo),
			logger,
		),
		Task:    NewTaskHandler(services.NewTaskService(taskRepo, logger), logger),
		Session: NewSessionHandler(),
		Cascade: NewCascadeHandler(lifecycle, logger),
	}

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionName, cookie.NewStore([]byte("test-secret"))))
	r.Use(middleware.LoadActor())
	RegisterRoutes(r.Group("/api"), h)

	return &apiTestEnv{t: t, store: store, router: r}
}

// seedGraph stores dao-1 with proposal-1 (tasks 1-3) and proposal-2
// (tasks 4-5), and dao-2 with proposal-3 (task-6).
func (e *apiTestEnv) seedGraph() {
	e.store.Seed("Dao", "dao-1", "Acme", map[string]any{"name": "Acme"})
	e.store.Seed("Dao", "dao-2", "Globex", map[string]any{"name": "Globex"})

	e.store.Seed("Proposal", "proposal-1", "Roadmap", map[string]any{"title": "Roadmap", "daoId": "dao-1", "status": "OPEN"})
	e.store.Seed("Proposal", "proposal-2", "Budget", map[string]any{"title": "Budget", "daoId": "dao-1", "status": "DRAFT"})
	e.store.Seed("Proposal", "proposal-3", "Other", map[string]any{"title": "Other", "daoId": "dao-2", "status": "OPEN"})

	seedTask := func(id, proposalID, orgID, status string) {
		e.store.Seed("Task", id, id, map[string]any{"title": id, "proposalId": proposalID, "daoId": orgID, "status": status})
	}
	seedTask("task-1", "proposal-1", "dao-1", "TODO")
	seedTask("task-2", "proposal-1", "dao-1", "IN_PROGRESS")
	seedTask("task-3", "proposal-1", "dao-1", "DONE")
	seedTask("task-4", "proposal-2", "dao-1", "TODO")
	seedTask("task-5", "proposal-2", "dao-1", "TODO")
	seedTask("task-6", "proposal-3", "dao-2", "TODO")
}

// do sends a request through the router, carrying session cookies between calls.
func (e *apiTestEnv) do(method, path string, payload any) *httptest.ResponseRecorder {
	e.t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(e.t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range e.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		e.cookies = set
	}
	return w
}

func (e *apiTestEnv) doRaw(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
