package services

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/yukikurage/proposal-board-api/internal/graphql"
	"github.com/yukikurage/proposal-board-api/internal/graphql/graphqltest"
	"github.com/yukikurage/proposal-board-api/internal/models"
	"github.com/yukikurage/proposal-board-api/internal/repository"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

type testEnv struct {
	store        *graphqltest.Server
	orgRepo      repository.OrganizationRepository
	proposalRepo repository.ProposalRepository
	taskRepo     repository.TaskRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := graphqltest.NewServer()
	t.Cleanup(store.Close)

	client := graphql.NewClient(graphql.Config{BaseURL: store.URL, DriveID: "drive-test"})
	return &testEnv{
		store:        store,
		orgRepo:      repository.NewOrganizationRepository(client),
		proposalRepo: repository.NewProposalRepository(client),
		taskRepo:     repository.NewTaskRepository(client),
	}
}

// seedGraph stores two organizations. dao-1 owns proposal-1 (tasks 1-3) and
// proposal-2 (tasks 4-5); dao-2 owns proposal-3 with tasks 6-7.
func (e *testEnv) seedGraph() {
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
	seedTask("task-7", "proposal-3", "dao-2", "DONE")
}

// writes returns the mutating calls in order, as "operation:docId".
func (e *testEnv) writes() []string {
	var out []string
	for _, c := range e.store.Calls() {
		switch c.Operation {
		case "getDocument", "getDocuments":
			continue
		}
		out = append(out, c.Operation+":"+c.DocID())
	}
	return out
}

type memoryRunRepo struct {
	mu        sync.Mutex
	runs      map[string]models.CascadeRun
	createErr error
}

func newMemoryRunRepo() *memoryRunRepo {
	return &memoryRunRepo{runs: make(map[string]models.CascadeRun)}
}

func (r *memoryRunRepo) Create(run *models.CascadeRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.runs[run.ID] = *run
	return nil
}

func (r *memoryRunRepo) Update(run *models.CascadeRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = *run
	return nil
}

func (r *memoryRunRepo) FindByID(id string) (*models.CascadeRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &run, nil
}

func (r *memoryRunRepo) List(filter repository.CascadeRunFilter) ([]models.CascadeRun, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	runs := make([]models.CascadeRun, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAt.After(runs[j].StartedAt) })
	return runs, int64(len(runs)), nil
}

var errJournalDown = errors.New("journal unavailable")
