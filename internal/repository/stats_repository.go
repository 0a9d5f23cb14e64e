package repository

import (
	"github.com/yamori-dev/todo-progress-api/internal/models"
	"gorm.io/gorm"
)

// GormStatsRepository is a GORM implementation of StatsRepository
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &GormStatsRepository{db: db}
}

// DailyCounts returns task totals grouped by user name and creation date.
// DATE() truncation and the CASE-based conditional sum are portable across
// postgres, mysql and sqlite. Comparing DATE(date_created) against the
// DateLayout bounds keeps the window inclusive on both ends.
func (r *GormStatsRepository) DailyCounts(startDate, endDate string) ([]models.DailyTaskStat, error) {
	var stats []models.DailyTaskStat
	err := r.db.Model(&models.Task{}).
		Select("users.name AS user_name, " +
			"DATE(tasks.date_created) AS day, " +
			"COUNT(tasks.id) AS total_tasks, " +
			"SUM(CASE WHEN tasks.completed THEN 1 ELSE 0 END) AS completed_tasks").
		Joins("JOIN users ON users.id = tasks.user_id").
		Where("DATE(tasks.date_created) BETWEEN ? AND ?", startDate, endDate).
		Group("users.name, DATE(tasks.date_created)").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// TasksWithUsers returns every task created in the window joined with its
// owner's name, one row per task.
func (r *GormStatsRepository) TasksWithUsers(startDate, endDate string) ([]models.TaskExportRow, error) {
	var rows []models.TaskExportRow
	err := r.db.Model(&models.Task{}).
		Select("tasks.id, tasks.content, tasks.completed, tasks.user_id, " +
			"users.name AS user_name, tasks.date_created").
		Joins("JOIN users ON users.id = tasks.user_id").
		Where("DATE(tasks.date_created) BETWEEN ? AND ?", startDate, endDate).
		Order("tasks.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
