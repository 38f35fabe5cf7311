package dto

import (
	"github.com/yukikurage/proposal-board-api/internal/models"
)

// TaskDTO represents a task in API responses. NextStatus and ActionLabel are
// null when the task has no forward transition.
type TaskDTO struct {
	models.Task
	StatusLabel string             `json:"statusLabel"`
	NextStatus  *models.TaskStatus `json:"nextStatus"`
	ActionLabel *string            `json:"actionLabel"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		Task:        task,
		StatusLabel: models.StatusLabel(string(task.Status)),
	}
	if next, ok := models.NextTaskStatus(task.Status); ok {
		dto.NextStatus = &next
	}
	if label, ok := models.ActionLabel(string(task.Status)); ok {
		dto.ActionLabel = &label
	}
	return dto
}

// ToTaskDTOs converts tasks, returning an empty slice rather than nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
