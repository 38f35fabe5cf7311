package repository

import (
	"context"

	"github.com/yukikurage/proposal-board-api/internal/graphql"
	"github.com/yukikurage/proposal-board-api/internal/models"
)

// GatewayTaskRepository is a document store implementation of TaskRepository
type GatewayTaskRepository struct {
	gw Gateway
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(gw Gateway) TaskRepository {
	return &GatewayTaskRepository{gw: gw}
}

// List returns every task in the drive, across proposals
func (r *GatewayTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	var out struct {
		Task struct {
			GetDocuments []Document[TaskState] `json:"getDocuments"`
		} `json:"Task"`
	}
	vars := map[string]any{"driveId": r.gw.DriveID()}
	if err := r.gw.Do(ctx, graphql.EndpointTask, listTasksQuery, vars, &out); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(out.Task.GetDocuments))
	for _, doc := range out.Task.GetDocuments {
		tasks = append(tasks, MapTask(doc))
	}
	return tasks, nil
}

// FindByID fetches one task
func (r *GatewayTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var out struct {
		Task struct {
			GetDocument *Document[TaskState] `json:"getDocument"`
		} `json:"Task"`
	}
	if err := r.gw.Do(ctx, graphql.EndpointTask, getTaskQuery, map[string]any{"docId": id}, &out); err != nil {
		return nil, err
	}
	if out.Task.GetDocument == nil {
		return nil, graphql.ErrNoData
	}

	task := MapTask(*out.Task.GetDocument)
	return &task, nil
}

// Create creates an empty document shell and returns its id
func (r *GatewayTaskRepository) Create(ctx context.Context, title string) (string, error) {
	return createDocument(ctx, r.gw, graphql.EndpointTask, createTaskMutation, "Task_createDocument", title)
}

// SetDetails replaces the full detail state of a task
func (r *GatewayTaskRepository) SetDetails(ctx context.Context, id string, details TaskDetails) error {
	return mutate(ctx, r.gw, graphql.EndpointTask, setTaskDetailsMutation, id, details)
}

// UpdateStatus sets the status and the modification stamp
func (r *GatewayTaskRepository) UpdateStatus(ctx context.Context, id string, status models.TaskStatus, updatedAt string) error {
	input := map[string]any{"status": string(status), "updatedAt": updatedAt}
	return mutate(ctx, r.gw, graphql.EndpointTask, updateTaskStatusMutation, id, input)
}

// Assign sets or clears the assignee
func (r *GatewayTaskRepository) Assign(ctx context.Context, id string, assignee *string, updatedAt string) error {
	input := map[string]any{"assignee": assignee, "updatedAt": updatedAt}
	return mutate(ctx, r.gw, graphql.EndpointTask, assignTaskMutation, id, input)
}

// Delete hard-deletes the document
func (r *GatewayTaskRepository) Delete(ctx context.Context, id string) error {
	return deleteDocument(ctx, r.gw, id)
}
