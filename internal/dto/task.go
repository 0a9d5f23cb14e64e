package dto

import (
	"time"

	"github.com/yamori-dev/todo-progress-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64    `json:"id"`
	Content     string    `json:"content"`
	Completed   bool      `json:"completed"`
	UserID      uint64    `json:"user_id"`
	DateCreated time.Time `json:"date_created"`
}

// DayStat is one gap-filled entry of a user's daily completion series.
type DayStat struct {
	Date                 string  `json:"date"`
	TotalTasks           int     `json:"total_tasks"`
	CompletedTasks       int     `json:"completed_tasks"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// ProgressReport maps each user name to its complete daily series over the
// requested window, oldest date first.
type ProgressReport map[string][]DayStat

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Content:     task.Content,
		Completed:   task.Completed,
		UserID:      task.UserID,
		DateCreated: task.DateCreated,
	}
}

// ToTaskDTOs converts a slice of Task models to TaskDTOs
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
