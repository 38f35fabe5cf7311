package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yukikurage/proposal-board-api/internal/constants"
	"github.com/yukikurage/proposal-board-api/internal/models"
	"github.com/yukikurage/proposal-board-api/internal/repository"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, logger *slog.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   defaultLogger(logger),
		now:      time.Now,
	}
}

// ListTasksInput represents filters for listing tasks. Empty fields do not filter.
type ListTasksInput struct {
	OrganizationID string
	ProposalID     string
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	OrganizationID string
	ProposalID     string
	Title          string
	Description    *string
	Budget         *float64
	Deadline       *string
	Assignee       *string
	CreatedBy      string
}

// UpdateTaskInput is a partial update. Absent fields keep their current
// value and null clears them.
type UpdateTaskInput struct {
	Title       models.Optional[string]
	Description models.Optional[string]
	Budget      models.Optional[float64]
	Deadline    models.Optional[string]
	Assignee    models.Optional[string]
}

// ListTasks lists tasks matching the filter
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if input.OrganizationID != "" {
		tasks = tasksOfOrganization(tasks, input.OrganizationID)
	}
	if input.ProposalID != "" {
		tasks = tasksOfProposal(tasks, input.ProposalID)
	}
	return tasks, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates the document shell and then sets its details.
// If setting details fails the shell is deleted again.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (string, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return "", validationErrorf("Title is required")
	}
	if strings.TrimSpace(input.ProposalID) == "" {
		return "", validationErrorf("Proposal ID is required")
	}
	if strings.TrimSpace(input.OrganizationID) == "" {
		return "", validationErrorf("Organization ID is required")
	}
	if input.Budget != nil && *input.Budget < 0 {
		return "", validationErrorf("Budget cannot be negative")
	}

	createdBy := input.CreatedBy
	if createdBy == "" {
		createdBy = constants.DefaultActor
	}

	id, err := s.taskRepo.Create(ctx, title)
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}

	details := repository.TaskDetails{
		Title:          title,
		Description:    nonEmpty(input.Description),
		Assignee:       nonEmpty(input.Assignee),
		ProposalID:     input.ProposalID,
		OrganizationID: input.OrganizationID,
		Deadline:       nonEmpty(input.Deadline),
		Budget:         input.Budget,
		CreatedBy:      &createdBy,
		CreatedAt:      timestamp(s.now()),
	}
	if err := s.taskRepo.SetDetails(ctx, id, details); err != nil {
		compensate(ctx, s.logger, "task", id, s.taskRepo.Delete)
		return "", fmt.Errorf("failed to set task details: %w", err)
	}

	return id, nil
}

// UpdateTask merges input into the current record and writes the full detail
// set back. Status and the foreign keys are carried over unchanged.
func (s *TaskService) UpdateTask(ctx context.Context, id string, input UpdateTaskInput) error {
	if err := validateTitleUpdate(input.Title); err != nil {
		return err
	}
	if err := validateBudgetUpdate(input.Budget); err != nil {
		return err
	}

	current, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	updatedAt := timestamp(s.now())
	details := repository.TaskDetails{
		Title:          mergeTitle(input.Title, current.Title),
		Description:    input.Description.Merge(current.Description),
		Assignee:       input.Assignee.Merge(current.Assignee),
		ProposalID:     current.ProposalID,
		OrganizationID: current.OrganizationID,
		Deadline:       input.Deadline.Merge(current.Deadline),
		Budget:         input.Budget.Merge(current.Budget),
		CreatedBy:      carriedCreatedBy(current.CreatedBy),
		CreatedAt:      current.CreatedAt,
		UpdatedAt:      &updatedAt,
	}
	if details.CreatedAt == "" {
		details.CreatedAt = updatedAt
	}

	if err := s.taskRepo.SetDetails(ctx, id, details); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// TransitionStatus moves a task to raw, which must be the successor of its
// current status. ARCHIVED is never a successor; use ArchiveTask.
func (s *TaskService) TransitionStatus(ctx context.Context, id, raw string) (models.TaskStatus, error) {
	if raw == "" {
		return "", validationErrorf("Status is required")
	}
	status := models.TaskStatus(raw)
	if !status.IsValid() {
		return "", validationErrorf("Unknown task status %q", raw)
	}

	current, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to find task: %w", err)
	}

	next, ok := models.NextTaskStatus(current.Status)
	if !ok || next != status {
		return "", validationErrorf("Cannot move task from %s to %s", current.Status, status)
	}

	if err := s.taskRepo.UpdateStatus(ctx, id, status, timestamp(s.now())); err != nil {
		return "", fmt.Errorf("failed to update task status: %w", err)
	}
	return status, nil
}

// AssignTask sets the assignee. Clearing it goes through UpdateTask.
func (s *TaskService) AssignTask(ctx context.Context, id, assignee string) (string, error) {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return "", validationErrorf("Assignee is required")
	}

	if err := s.taskRepo.Assign(ctx, id, &assignee, timestamp(s.now())); err != nil {
		return "", fmt.Errorf("failed to assign task: %w", err)
	}
	return assignee, nil
}

// ArchiveTask soft-deletes a task by setting the ARCHIVED sentinel.
func (s *TaskService) ArchiveTask(ctx context.Context, id string) error {
	if err := s.taskRepo.UpdateStatus(ctx, id, models.TaskStatusArchived, timestamp(s.now())); err != nil {
		return fmt.Errorf("failed to archive task: %w", err)
	}
	return nil
}
