package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yamori-dev/todo-progress-api/internal/dto"
	"github.com/yamori-dev/todo-progress-api/internal/models"
)

const (
	keyProgress = "dashboard:progress:"
	keyExport   = "dashboard:export:"
)

// DashboardCache caches computed progress and export payloads in Redis,
// keyed by timeframe and window end date. The end date keeps an entry from
// surviving the UTC day rollover; any task mutation invalidates everything.
type DashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDashboardCache returns a new DashboardCache.
func NewDashboardCache(rdb *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{rdb: rdb, ttl: ttl}
}

func windowKey(prefix string, timeframeDays int, endDay string) string {
	return prefix + strconv.Itoa(timeframeDays) + ":" + endDay
}

// GetProgress returns the cached report for the window, or nil on miss.
func (c *DashboardCache) GetProgress(ctx context.Context, timeframeDays int, endDay string) (dto.ProgressReport, error) {
	b, err := c.rdb.Get(ctx, windowKey(keyProgress, timeframeDays, endDay)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report dto.ProgressReport
	if err := json.Unmarshal(b, &report); err != nil {
		return nil, err
	}
	return report, nil
}

// SetProgress stores the report for the window.
func (c *DashboardCache) SetProgress(ctx context.Context, timeframeDays int, endDay string, report dto.ProgressReport) error {
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, windowKey(keyProgress, timeframeDays, endDay), b, c.ttl).Err()
}

// GetExport returns the cached export rows for the window, or nil on miss.
func (c *DashboardCache) GetExport(ctx context.Context, timeframeDays int, endDay string) ([]models.TaskExportRow, error) {
	b, err := c.rdb.Get(ctx, windowKey(keyExport, timeframeDays, endDay)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rows []models.TaskExportRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SetExport stores the export rows for the window.
func (c *DashboardCache) SetExport(ctx context.Context, timeframeDays int, endDay string, rows []models.TaskExportRow) error {
	b, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, windowKey(keyExport, timeframeDays, endDay), b, c.ttl).Err()
}

// InvalidateAll removes every cached window (cache invalidation on write).
func (c *DashboardCache) InvalidateAll(ctx context.Context) error {
	for _, prefix := range []string{keyProgress, keyExport} {
		iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}
