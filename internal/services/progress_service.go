package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/yamori-dev/todo-progress-api/internal/cache"
	"github.com/yamori-dev/todo-progress-api/internal/dto"
	"github.com/yamori-dev/todo-progress-api/internal/models"
	"github.com/yamori-dev/todo-progress-api/internal/repository"
	"golang.org/x/sync/singleflight"
)

var ErrInvalidTimeframe = errors.New("timeframe must be a positive number of days")

// ProgressService computes per-user daily completion statistics over a
// trailing calendar window.
type ProgressService struct {
	statsRepo repository.StatsRepository
	userRepo  repository.UserRepository
	cache     *cache.DashboardCache
	sf        singleflight.Group
}

// NewProgressService creates a ProgressService. If c is nil, caching is
// disabled.
func NewProgressService(statsRepo repository.StatsRepository, userRepo repository.UserRepository, c *cache.DashboardCache) *ProgressService {
	return &ProgressService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
		cache:     c,
	}
}

// ComputeProgress returns, for every known user, a complete daily series over
// the timeframeDays-day window ending on the reference instant's UTC calendar
// date. Days without tasks are zero-filled so the series never has gaps; a
// user with no tasks at all still gets a full all-zero series.
func (s *ProgressService) ComputeProgress(ctx context.Context, timeframeDays int, reference time.Time) (dto.ProgressReport, error) {
	if timeframeDays <= 0 {
		return nil, ErrInvalidTimeframe
	}

	start, end := window(timeframeDays, reference)
	endDay := end.Format(repository.DateLayout)

	if s.cache != nil {
		report, err := s.cache.GetProgress(ctx, timeframeDays, endDay)
		if err != nil {
			log.Printf("failed to read cached progress report: %v", err)
		} else if report != nil {
			return report, nil
		}
	}

	// Requests straddling the UTC midnight rollover have different windows,
	// so the flight key carries the end date as well as the timeframe.
	v, err, _ := s.sf.Do("progress:"+strconv.Itoa(timeframeDays)+":"+endDay, func() (interface{}, error) {
		report, err := s.buildReport(timeframeDays, start, end)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.SetProgress(ctx, timeframeDays, endDay, report); err != nil {
				log.Printf("failed to cache progress report: %v", err)
			}
		}
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(dto.ProgressReport), nil
}

func (s *ProgressService) buildReport(timeframeDays int, start, end time.Time) (dto.ProgressReport, error) {
	rows, err := s.statsRepo.DailyCounts(start.Format(repository.DateLayout), end.Format(repository.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("query daily counts: %w", err)
	}

	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	// Single pass over the grouped rows; gap-filling below is then a pure
	// lookup per (user, date).
	type statKey struct {
		user string
		day  string
	}
	lookup := make(map[statKey]models.DailyTaskStat, len(rows))
	for _, row := range rows {
		day, err := normalizeDay(row.Day)
		if err != nil {
			return nil, err
		}
		lookup[statKey{user: row.UserName, day: day}] = row
	}

	report := make(dto.ProgressReport, len(users))
	for _, user := range users {
		series := make([]dto.DayStat, 0, timeframeDays)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			day := d.Format(repository.DateLayout)
			stat := lookup[statKey{user: user.Name, day: day}]
			series = append(series, dto.DayStat{
				Date:                 day,
				TotalTasks:           stat.TotalTasks,
				CompletedTasks:       stat.CompletedTasks,
				CompletionPercentage: completionPercentage(stat.CompletedTasks, stat.TotalTasks),
			})
		}
		report[user.Name] = series
	}

	return report, nil
}

// ExportData returns every task created in the same window, joined with its
// owner's name. One row per task, no gap-filling.
func (s *ProgressService) ExportData(ctx context.Context, timeframeDays int, reference time.Time) ([]models.TaskExportRow, error) {
	if timeframeDays <= 0 {
		return nil, ErrInvalidTimeframe
	}

	start, end := window(timeframeDays, reference)
	endDay := end.Format(repository.DateLayout)

	if s.cache != nil {
		rows, err := s.cache.GetExport(ctx, timeframeDays, endDay)
		if err != nil {
			log.Printf("failed to read cached export rows: %v", err)
		} else if rows != nil {
			return rows, nil
		}
	}

	v, err, _ := s.sf.Do("export:"+strconv.Itoa(timeframeDays)+":"+endDay, func() (interface{}, error) {
		rows, err := s.statsRepo.TasksWithUsers(start.Format(repository.DateLayout), end.Format(repository.DateLayout))
		if err != nil {
			return nil, fmt.Errorf("query export rows: %w", err)
		}
		if rows == nil {
			rows = []models.TaskExportRow{}
		}
		if s.cache != nil {
			if err := s.cache.SetExport(ctx, timeframeDays, endDay, rows); err != nil {
				log.Printf("failed to cache export rows: %v", err)
			}
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.TaskExportRow), nil
}

// window returns the inclusive [start, end] bounds of a timeframeDays-day
// window of UTC calendar days ending on the reference date.
func window(timeframeDays int, reference time.Time) (start, end time.Time) {
	y, m, d := reference.UTC().Date()
	end = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start = end.AddDate(0, 0, -(timeframeDays - 1))
	return start, end
}

// completionPercentage rounds half away from zero at two decimals. Zero when
// there are no tasks.
func completionPercentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*10000) / 100
}

// normalizeDay reduces a driver-formatted day value to DateLayout. Sqlite and
// mysql return plain dates; postgres dates arrive through database/sql as
// RFC3339 timestamps.
func normalizeDay(raw string) (string, error) {
	for _, layout := range []string{repository.DateLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(repository.DateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized day value %q", raw)
}
