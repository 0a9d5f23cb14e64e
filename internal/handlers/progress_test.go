package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yamori-dev/todo-progress-api/internal/models"
	"github.com/yamori-dev/todo-progress-api/internal/repository"
	"github.com/yamori-dev/todo-progress-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProgressHandlerTestSuite defines the test suite for ProgressHandler
type ProgressHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	userG  *models.User
	userA  *models.User
}

// SetupTest runs before each test
func (suite *ProgressHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{})
	suite.Require().NoError(err)

	suite.userG = &models.User{Name: "G"}
	suite.userA = &models.User{Name: "A"}
	suite.Require().NoError(suite.db.Create(suite.userG).Error)
	suite.Require().NoError(suite.db.Create(suite.userA).Error)

	progressService := services.NewProgressService(
		repository.NewStatsRepository(suite.db),
		repository.NewUserRepository(suite.db),
		nil,
	)
	handler := NewProgressHandler(progressService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.GET("/progress", handler.GetProgress)
	suite.router.GET("/export", handler.ExportData)
}

// TearDownTest runs after each test
func (suite *ProgressHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProgressHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", url, nil)
	suite.router.ServeHTTP(w, req)
	return w
}

// Helper to create a task with a fixed creation time
func (suite *ProgressHandlerTestSuite) createTask(userID uint64, createdAt time.Time, completed bool) {
	task := &models.Task{
		Content:     "test task",
		Completed:   completed,
		DateCreated: createdAt,
		UserID:      userID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
}

// TestGetProgress_TodayScenario: 3 tasks for G today, 1 completed, timeframe 1.
func (suite *ProgressHandlerTestSuite) TestGetProgress_TodayScenario() {
	now := time.Now().UTC()
	suite.createTask(suite.userG.ID, now, true)
	suite.createTask(suite.userG.ID, now, false)
	suite.createTask(suite.userG.ID, now, false)

	w := suite.get("/progress?timeframe=1")
	suite.Require().Equal(http.StatusOK, w.Code)

	var report map[string][]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &report))
	suite.Require().Contains(report, "G")
	suite.Require().Contains(report, "A")

	today := now.Format("2006-01-02")

	gSeries := report["G"]
	suite.Require().Len(gSeries, 1)
	assert.Equal(suite.T(), today, gSeries[0]["date"])
	assert.Equal(suite.T(), float64(3), gSeries[0]["total_tasks"])
	assert.Equal(suite.T(), float64(1), gSeries[0]["completed_tasks"])
	assert.Equal(suite.T(), 33.33, gSeries[0]["completion_percentage"])

	// A has no tasks and still appears with an all-zero entry.
	aSeries := report["A"]
	suite.Require().Len(aSeries, 1)
	assert.Equal(suite.T(), today, aSeries[0]["date"])
	assert.Equal(suite.T(), float64(0), aSeries[0]["total_tasks"])
	assert.Equal(suite.T(), float64(0), aSeries[0]["completed_tasks"])
	assert.Equal(suite.T(), float64(0), aSeries[0]["completion_percentage"])
}

// TestGetProgress_DefaultTimeframe covers 30 consecutive days ending today.
func (suite *ProgressHandlerTestSuite) TestGetProgress_DefaultTimeframe() {
	w := suite.get("/progress")
	suite.Require().Equal(http.StatusOK, w.Code)

	var report map[string][]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &report))

	now := time.Now().UTC()
	for _, name := range []string{"G", "A"} {
		series := report[name]
		suite.Require().Len(series, DefaultTimeframeDays)
		for i, stat := range series {
			expected := now.AddDate(0, 0, -(DefaultTimeframeDays - 1 - i)).Format("2006-01-02")
			assert.Equal(suite.T(), expected, stat["date"])
		}
	}
}

// TestGetProgress_OldTasksOutsideWindow excludes tasks older than the window.
func (suite *ProgressHandlerTestSuite) TestGetProgress_OldTasksOutsideWindow() {
	suite.createTask(suite.userG.ID, time.Now().UTC().AddDate(0, 0, -10), true)

	w := suite.get("/progress?timeframe=3")
	suite.Require().Equal(http.StatusOK, w.Code)

	var report map[string][]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &report))

	for _, stat := range report["G"] {
		assert.Equal(suite.T(), float64(0), stat["total_tasks"])
	}
}

func (suite *ProgressHandlerTestSuite) TestGetProgress_NonNumericTimeframe() {
	w := suite.get("/progress?timeframe=abc")

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "error")
}

func (suite *ProgressHandlerTestSuite) TestGetProgress_NonPositiveTimeframe() {
	w := suite.get("/progress?timeframe=0")

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestExport_WindowFilter returns one row per task inside the window only.
func (suite *ProgressHandlerTestSuite) TestExport_WindowFilter() {
	now := time.Now().UTC()
	suite.createTask(suite.userG.ID, now, true)
	suite.createTask(suite.userA.ID, now.AddDate(0, 0, -40), false)

	w := suite.get("/export?timeframe=1")
	suite.Require().Equal(http.StatusOK, w.Code)

	var rows []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &rows))
	suite.Require().Len(rows, 1)
	assert.Equal(suite.T(), "G", rows[0]["user_name"])
	assert.Equal(suite.T(), true, rows[0]["completed"])
	assert.Equal(suite.T(), "test task", rows[0]["content"])
	assert.Equal(suite.T(), float64(suite.userG.ID), rows[0]["user_id"])
}

// TestExport_Empty returns an empty array, not null.
func (suite *ProgressHandlerTestSuite) TestExport_Empty() {
	w := suite.get("/export")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), "[]", w.Body.String())
}

func (suite *ProgressHandlerTestSuite) TestExport_NonNumericTimeframe() {
	w := suite.get("/export?timeframe=oops")

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestProgressHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProgressHandlerTestSuite))
}
