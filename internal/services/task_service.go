package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yamori-dev/todo-progress-api/internal/cache"
	"github.com/yamori-dev/todo-progress-api/internal/models"
	"github.com/yamori-dev/todo-progress-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrContentRequired = errors.New("content is required")
	ErrContentTooLong  = errors.New("content exceeds maximum length")
	ErrUserRequired    = errors.New("user_id is required")
	ErrUserNotFound    = errors.New("user does not exist")
	ErrTaskNotFound    = errors.New("task not found")
)

// TaskService handles task CRUD business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	cache    *cache.DashboardCache
}

// NewTaskService creates a TaskService. If c is nil, cache invalidation is
// disabled.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, c *cache.DashboardCache) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		cache:    c,
	}
}

// List returns every task in insertion order.
func (s *TaskService) List() ([]models.Task, error) {
	return s.taskRepo.List()
}

// Create validates and inserts a new task owned by the given user. New tasks
// are never completed and are stamped with the current UTC instant.
func (s *TaskService) Create(ctx context.Context, content string, userID uint64) (*models.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if len(content) > models.MaxContentLength {
		return nil, ErrContentTooLong
	}
	if userID == 0 {
		return nil, ErrUserRequired
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user %d: %w", userID, err)
	}

	task := &models.Task{
		Content:     content,
		Completed:   false,
		DateCreated: time.Now().UTC(),
		UserID:      userID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.invalidateCache(ctx)
	return task, nil
}

// SetCompleted toggles the completion flag of an existing task. No other
// field is mutable.
func (s *TaskService) SetCompleted(ctx context.Context, id uint64, completed bool) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("lookup task %d: %w", id, err)
	}

	task.Completed = completed
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}

	s.invalidateCache(ctx)
	return task, nil
}

// Delete removes a task by ID.
func (s *TaskService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("lookup task %d: %w", id, err)
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Printf("dashboard cache invalidation failed: %v", err)
	}
}
