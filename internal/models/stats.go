package models

import "time"

// DailyTaskStat is one row of the grouped per-user, per-day aggregate query.
// Day is the truncated creation date as returned by the driver; postgres
// hands dates to database/sql as time.Time (stringified RFC3339), sqlite and
// mysql as plain YYYY-MM-DD, so consumers must normalize before comparing.
type DailyTaskStat struct {
	UserName       string
	Day            string
	TotalTasks     int
	CompletedTasks int
}

// TaskExportRow is a task joined with its owner's name, flattened for export.
type TaskExportRow struct {
	ID          uint64    `json:"id"`
	Content     string    `json:"content"`
	Completed   bool      `json:"completed"`
	UserID      uint64    `json:"user_id"`
	UserName    string    `json:"user_name"`
	DateCreated time.Time `json:"date_created"`
}
