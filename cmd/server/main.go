package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yamori-dev/todo-progress-api/internal/cache"
	"github.com/yamori-dev/todo-progress-api/internal/config"
	"github.com/yamori-dev/todo-progress-api/internal/database"
	"github.com/yamori-dev/todo-progress-api/internal/handlers"
	"github.com/yamori-dev/todo-progress-api/internal/repository"
	"github.com/yamori-dev/todo-progress-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.App.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create the fixed user pair if absent
	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	// Optional dashboard cache
	var dashboardCache *cache.DashboardCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		dashboardCache = cache.NewDashboardCache(rdb, cfg.Redis.CacheTTL)
		log.Printf("Dashboard cache enabled (redis %s, ttl %s)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	}

	// Repositories
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	taskService := services.NewTaskService(taskRepo, userRepo, dashboardCache)
	progressService := services.NewProgressService(statsRepo, userRepo, dashboardCache)

	// Handlers
	taskHandler := handlers.NewTaskHandler(taskService)
	progressHandler := handlers.NewProgressHandler(progressService)

	// Initialize Gin router
	r := gin.Default()

	// The dashboard frontend is served separately
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Todo progress API is running",
		})
	})

	// Task CRUD
	r.GET("/tasks", taskHandler.ListTasks)
	r.POST("/tasks", taskHandler.CreateTask)
	r.PUT("/tasks/:id", taskHandler.UpdateTask)
	r.DELETE("/tasks/:id", taskHandler.DeleteTask)

	// Dashboard
	r.GET("/progress", progressHandler.GetProgress)
	r.GET("/export", progressHandler.ExportData)

	// Start server
	addr := ":" + cfg.App.Port
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
