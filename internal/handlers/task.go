package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yamori-dev/todo-progress-api/internal/dto"
	"github.com/yamori-dev/todo-progress-api/internal/services"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ListTasks returns every task in insertion order
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.List()
	if err != nil {
		log.Printf("Error listing tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task for a user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Content string `json:"content"`
		UserID  uint64 `json:"user_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), req.Content, req.UserID)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error creating task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask sets the completion flag of an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	// Pointer so an explicit false still binds.
	type UpdateTaskRequest struct {
		Completed *bool `json:"completed" binding:"required"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	task, err := h.tasks.SetCompleted(c.Request.Context(), id, *req.Completed)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		log.Printf("Error updating task %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task by ID
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		log.Printf("Error deleting task %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.Status(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, services.ErrContentRequired) ||
		errors.Is(err, services.ErrContentTooLong) ||
		errors.Is(err, services.ErrUserRequired) ||
		errors.Is(err, services.ErrUserNotFound)
}
