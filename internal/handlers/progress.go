package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yamori-dev/todo-progress-api/internal/services"
)

// DefaultTimeframeDays is the window used when the request omits ?timeframe.
const DefaultTimeframeDays = 30

type ProgressHandler struct {
	progress *services.ProgressService
}

func NewProgressHandler(progress *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// GetProgress returns each user's gap-filled daily completion series over the
// requested trailing window
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	timeframeDays, ok := h.timeframe(c)
	if !ok {
		return
	}

	report, err := h.progress.ComputeProgress(c.Request.Context(), timeframeDays, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimeframe) {
			log.Printf("Invalid timeframe %d in progress request", timeframeDays)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error computing progress: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while fetching progress data"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportData returns the denormalized task rows of the same window
func (h *ProgressHandler) ExportData(c *gin.Context) {
	timeframeDays, ok := h.timeframe(c)
	if !ok {
		return
	}

	rows, err := h.progress.ExportData(c.Request.Context(), timeframeDays, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimeframe) {
			log.Printf("Invalid timeframe %d in export request", timeframeDays)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error exporting data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while exporting data"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// timeframe parses ?timeframe, defaulting to DefaultTimeframeDays. A
// non-numeric value gets a 400 and ends the request.
func (h *ProgressHandler) timeframe(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("timeframe", strconv.Itoa(DefaultTimeframeDays))
	timeframeDays, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Non-numeric timeframe %q: %v", raw, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrInvalidTimeframe.Error()})
		return 0, false
	}
	return timeframeDays, true
}
