package repository

import (
	"github.com/yamori-dev/todo-progress-api/internal/models"
)

// DateLayout is the calendar-date format used for window bounds and
// grouped-stat keys.
const DateLayout = "2006-01-02"

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves all tasks in insertion order
	List() ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task row
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// List retrieves all users
	List() ([]models.User, error)
}

// StatsRepository defines the grouped-aggregate queries behind the dashboard.
// Window bounds are inclusive calendar dates in DateLayout form.
type StatsRepository interface {
	// DailyCounts returns task totals grouped by user name and creation date.
	DailyCounts(startDate, endDate string) ([]models.DailyTaskStat, error)

	// TasksWithUsers returns every task created in the window joined with
	// its owner's name.
	TasksWithUsers(startDate, endDate string) ([]models.TaskExportRow, error)
}
