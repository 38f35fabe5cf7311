package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/proposal-board-api/internal/config"
	"github.com/yukikurage/proposal-board-api/internal/constants"
	"github.com/yukikurage/proposal-board-api/internal/metrics"
	"github.com/yukikurage/proposal-board-api/internal/models"
	"github.com/yukikurage/proposal-board-api/internal/repository"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Cascade targets, as recorded in the journal and metrics.
const (
	CascadeEntityOrganization = "organization"
	CascadeEntityProposal     = "proposal"
)

// CascadeResult counts the dependents a cascade archived or deleted.
type CascadeResult struct {
	RunID     string
	Mode      string
	Tasks     int
	Proposals int
}

// CascadeError reports a cascade that stopped part way. Tasks and Proposals
// count the dependents already processed; nothing is rolled back.
type CascadeError struct {
	Entity    string
	ID        string
	Mode      string
	Tasks     int
	Proposals int
	Err       error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("%s of %s %s stopped after %d tasks and %d proposals: %v",
		e.Mode, e.Entity, e.ID, e.Tasks, e.Proposals, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

// LifecycleService archives or deletes an entity together with its
// dependents, children first. The mode is fixed for the deployment.
type LifecycleService struct {
	mode         string
	orgRepo      repository.OrganizationRepository
	proposalRepo repository.ProposalRepository
	taskRepo     repository.TaskRepository
	runRepo      repository.CascadeRunRepository
	metrics      *metrics.Metrics
	logger       *slog.Logger
	now          func() time.Time
}

// NewLifecycleService creates a new LifecycleService. runRepo and m may be nil.
func NewLifecycleService(
	mode string,
	orgRepo repository.OrganizationRepository,
	proposalRepo repository.ProposalRepository,
	taskRepo repository.TaskRepository,
	runRepo repository.CascadeRunRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
) *LifecycleService {
	return &LifecycleService{
		mode:         mode,
		orgRepo:      orgRepo,
		proposalRepo: proposalRepo,
		taskRepo:     taskRepo,
		runRepo:      runRepo,
		metrics:      m,
		logger:       defaultLogger(logger),
		now:          time.Now,
	}
}

// Mode returns the configured cascade mode.
func (s *LifecycleService) Mode() string {
	return s.mode
}

// CascadeProposal processes the proposal's tasks and then the proposal.
// The cascade is not cancelled when ctx is.
func (s *LifecycleService) CascadeProposal(ctx context.Context, proposalID, actor string) (*CascadeResult, error) {
	ctx = context.WithoutCancel(ctx)

	all, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	tasks := tasksOfProposal(all, proposalID)

	run := s.startRun(CascadeEntityProposal, proposalID, actor)
	result := &CascadeResult{RunID: run.ID, Mode: s.mode}

	err = s.processTasks(ctx, tasks, result)
	if err == nil {
		err = s.processProposal(ctx, proposalID)
	}

	return s.finishRun(run, result, err)
}

// CascadeOrganization processes the organization's tasks, then its
// proposals, then the organization itself. The three reads run concurrently.
func (s *LifecycleService) CascadeOrganization(ctx context.Context, orgID, actor string) (*CascadeResult, error) {
	ctx = context.WithoutCancel(ctx)

	var (
		org          *models.Organization
		allProposals []models.Proposal
		allTasks     []models.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		org, err = s.orgRepo.FindByID(gctx, orgID)
		if err != nil {
			return fmt.Errorf("failed to find organization: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		allProposals, err = s.proposalRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list proposals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		allTasks, err = s.taskRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tasks := tasksOfOrganization(allTasks, orgID)
	proposals := proposalsOf(allProposals, orgID)

	run := s.startRun(CascadeEntityOrganization, orgID, actor)
	result := &CascadeResult{RunID: run.ID, Mode: s.mode}

	err := s.processTasks(ctx, tasks, result)
	if err == nil {
		err = s.processProposals(ctx, proposals, result)
	}
	if err == nil {
		err = s.processOrganization(ctx, org)
	}

	return s.finishRun(run, result, err)
}

// processTasks stops at the first failure; result counts the tasks done before it.
func (s *LifecycleService) processTasks(ctx context.Context, tasks []models.Task, result *CascadeResult) error {
	for _, task := range tasks {
		var err error
		if s.mode == config.CascadeModeDelete {
			err = s.taskRepo.Delete(ctx, task.ID)
		} else {
			err = s.taskRepo.UpdateStatus(ctx, task.ID, models.TaskStatusArchived, timestamp(s.now()))
		}
		if err != nil {
			return fmt.Errorf("failed to %s task %s: %w", s.mode, task.ID, err)
		}
		result.Tasks++
	}
	return nil
}

func (s *LifecycleService) processProposals(ctx context.Context, proposals []models.Proposal, result *CascadeResult) error {
	for _, proposal := range proposals {
		if err := s.processProposal(ctx, proposal.ID); err != nil {
			return err
		}
		result.Proposals++
	}
	return nil
}

func (s *LifecycleService) processProposal(ctx context.Context, id string) error {
	var err error
	if s.mode == config.CascadeModeDelete {
		err = s.proposalRepo.Delete(ctx, id)
	} else {
		err = s.proposalRepo.UpdateStatus(ctx, id, models.ProposalStatusArchived, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to %s proposal %s: %w", s.mode, id, err)
	}
	return nil
}

// processOrganization deletes the organization, or archives it by prefixing
// its name. An already prefixed name is left alone.
func (s *LifecycleService) processOrganization(ctx context.Context, org *models.Organization) error {
	var err error
	if s.mode == config.CascadeModeDelete {
		err = s.orgRepo.Delete(ctx, org.ID)
	} else if !strings.HasPrefix(org.Name, constants.ArchivedOrganizationPrefix) {
		err = s.orgRepo.SetName(ctx, org.ID, constants.ArchivedOrganizationPrefix+org.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to %s organization %s: %w", s.mode, org.ID, err)
	}
	return nil
}

func (s *LifecycleService) startRun(entity, id, actor string) *models.CascadeRun {
	if actor == "" {
		actor = constants.DefaultActor
	}
	run := &models.CascadeRun{
		ID:         uuid.NewString(),
		EntityType: entity,
		EntityID:   id,
		Mode:       s.mode,
		Status:     models.CascadeRunRunning,
		Actor:      actor,
		StartedAt:  s.now().UTC(),
	}

	if s.runRepo != nil {
		if err := s.runRepo.Create(run); err != nil {
			s.logger.Warn("failed to journal cascade start", "run_id", run.ID, "entity", entity, "id", id, "error", err)
		}
	}
	return run
}

func (s *LifecycleService) finishRun(run *models.CascadeRun, result *CascadeResult, cascadeErr error) (*CascadeResult, error) {
	finishedAt := s.now().UTC()
	run.Tasks = result.Tasks
	run.Proposals = result.Proposals
	run.FinishedAt = &finishedAt
	run.Status = models.CascadeRunCompleted
	if cascadeErr != nil {
		run.Status = models.CascadeRunFailed
		run.Error = cascadeErr.Error()
	}

	if s.runRepo != nil {
		if err := s.runRepo.Update(run); err != nil {
			s.logger.Warn("failed to journal cascade result", "run_id", run.ID, "error", err)
		}
	}
	s.metrics.ObserveCascade(run.EntityType, run.Mode, string(run.Status), result.Tasks, result.Proposals)

	if cascadeErr != nil {
		s.logger.Error("cascade stopped",
			"run_id", run.ID,
			"entity", run.EntityType,
			"id", run.EntityID,
			"mode", run.Mode,
			"tasks", result.Tasks,
			"proposals", result.Proposals,
			"error", cascadeErr,
		)
		return nil, &CascadeError{
			Entity:    run.EntityType,
			ID:        run.EntityID,
			Mode:      run.Mode,
			Tasks:     result.Tasks,
			Proposals: result.Proposals,
			Err:       cascadeErr,
		}
	}

	s.logger.Info("cascade completed",
		"run_id", run.ID,
		"entity", run.EntityType,
		"id", run.EntityID,
		"mode", run.Mode,
		"tasks", result.Tasks,
		"proposals", result.Proposals,
	)
	return result, nil
}

// ListRuns returns journaled cascades, newest first.
func (s *LifecycleService) ListRuns(filter repository.CascadeRunFilter) ([]models.CascadeRun, int64, error) {
	if s.runRepo == nil {
		return []models.CascadeRun{}, 0, nil
	}
	runs, total, err := s.runRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cascade runs: %w", err)
	}
	return runs, total, nil
}

// GetRun returns one journaled cascade.
func (s *LifecycleService) GetRun(id string) (*models.CascadeRun, error) {
	if s.runRepo == nil {
		return nil, ErrCascadeRunNotFound
	}
	run, err := s.runRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCascadeRunNotFound
		}
		return nil, fmt.Errorf("failed to find cascade run: %w", err)
	}
	return run, nil
}
